package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"fleet-admin/internal/models"
	"fleet-admin/internal/repository"
	"fleet-admin/pkg/redis"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationChannel is the Redis pub/sub channel the UI collaborator
// subscribes to for live notification delivery.
const NotificationChannel = "fleet:notifications"

// NotificationService is the durable notification sink. The alert engine
// feeds it through Notify; the REST layer uses the CRUD methods. Nothing here
// deduplicates: duplicate suppression is the engine's cooldown job.
type NotificationService struct {
	repo      *repository.NotificationRepository
	publisher *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// SetPublisher allows setting the Redis client used for pub/sub fan-out
func (s *NotificationService) SetPublisher(publisher *redis.Client) {
	s.publisher = publisher
}

// Notify appends a notification to the durable list and fans it out over
// Redis pub/sub. Implements the alert engine's sink contract.
func (s *NotificationService) Notify(n models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.Read = false

	created, err := s.repo.Create(&n)
	if err != nil {
		return err
	}

	s.publish(created)
	return nil
}

func (s *NotificationService) publish(n *models.Notification) {
	if s.publisher == nil || !s.publisher.IsConnected() {
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("Failed to marshal notification %s: %v", n.ID.Hex(), err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.publisher.GetClient().Publish(ctx, NotificationChannel, payload).Err(); err != nil {
		log.Printf("Failed to publish notification %s: %v", n.ID.Hex(), err)
	}
}

type CreateNotificationRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1,max=500"`
	Type    string `json:"type" validate:"required,oneof=info warning error success"`
	URL     string `json:"url,omitempty"`
}

// CreateNotification records a notification raised directly by a user action.
func (s *NotificationService) CreateNotification(req *CreateNotificationRequest) (*models.Notification, error) {
	n := models.Notification{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		URL:       req.URL,
		CreatedAt: time.Now(),
	}
	if err := s.Notify(n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) GetAllNotifications() ([]*models.Notification, error) {
	return s.repo.FindAll()
}

func (s *NotificationService) GetUnreadCount() (int64, error) {
	return s.repo.CountUnread()
}

func (s *NotificationService) MarkRead(id string) error {
	return s.repo.MarkRead(id)
}

func (s *NotificationService) MarkAllRead() error {
	return s.repo.MarkAllRead()
}

func (s *NotificationService) DeleteNotification(id string) error {
	return s.repo.Delete(id)
}

// PruneRead deletes read notifications older than the given number of days.
func (s *NotificationService) PruneRead(daysOld int) (int64, error) {
	if daysOld <= 0 {
		return 0, errors.New("daysOld must be positive")
	}
	cutoff := time.Now().AddDate(0, 0, -daysOld)
	return s.repo.DeleteReadBefore(cutoff)
}
