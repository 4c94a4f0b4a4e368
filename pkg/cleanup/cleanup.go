package cleanup

import (
	"log"
	"time"

	"fleet-admin/internal/services"
)

type CleanupService struct {
	notificationService *services.NotificationService
	interval            time.Duration
	retentionDays       int
	stopChan            chan bool
}

func NewCleanupService(notificationService *services.NotificationService, interval time.Duration, retentionDays int) *CleanupService {
	return &CleanupService{
		notificationService: notificationService,
		interval:            interval,
		retentionDays:       retentionDays,
		stopChan:            make(chan bool),
	}
}

// Start begins the cleanup service
func (s *CleanupService) Start() {
	log.Printf("Starting notification cleanup service (interval: %v, retention: %d days)", s.interval, s.retentionDays)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run cleanup immediately on start
	s.pruneReadNotifications()

	for {
		select {
		case <-ticker.C:
			s.pruneReadNotifications()
		case <-s.stopChan:
			log.Println("Stopping notification cleanup service")
			return
		}
	}
}

// Stop stops the cleanup service
func (s *CleanupService) Stop() {
	s.stopChan <- true
}

// pruneReadNotifications removes read notifications older than the retention window
func (s *CleanupService) pruneReadNotifications() {
	count, err := s.notificationService.PruneRead(s.retentionDays)
	if err != nil {
		log.Printf("Error pruning read notifications: %v", err)
		return
	}

	if count > 0 {
		log.Printf("Pruned %d read notifications", count)
	}
}
