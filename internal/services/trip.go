package services

import (
	"errors"
	"time"

	"fleet-admin/internal/models"
	"fleet-admin/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripService struct {
	store *store.Store
}

func NewTripService(st *store.Store) *TripService {
	return &TripService{store: st}
}

type CreateTripRequest struct {
	TruckID     string     `json:"truckId" validate:"required"`
	DriverID    string     `json:"driverId" validate:"required"`
	Origin      string     `json:"origin,omitempty"`
	Destination string     `json:"destination,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=pending scheduled intransit completed cancelled"`
	Notes       string     `json:"notes,omitempty"`
}

type UpdateTripRequest struct {
	Origin      string     `json:"origin,omitempty"`
	Destination string     `json:"destination,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=pending scheduled intransit completed cancelled"`
	Notes       string     `json:"notes,omitempty"`
}

func (s *TripService) GetAllTrips() []models.Trip {
	return s.store.Trips()
}

func (s *TripService) GetTripByID(id string) (*models.Trip, error) {
	t, ok := s.store.Trip(id)
	if !ok {
		return nil, errors.New("trip not found")
	}
	return &t, nil
}

func (s *TripService) CreateTrip(req *CreateTripRequest) (*models.Trip, error) {
	if _, ok := s.store.Truck(req.TruckID); !ok {
		return nil, errors.New("truck not found")
	}
	if _, ok := s.store.Driver(req.DriverID); !ok {
		return nil, errors.New("driver not found")
	}

	trip := models.Trip{
		ID:          primitive.NewObjectID(),
		TruckID:     req.TruckID,
		DriverID:    req.DriverID,
		Origin:      req.Origin,
		Destination: req.Destination,
		StartTime:   req.StartTime,
		Status:      req.Status,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if trip.Status == "" {
		trip.Status = models.TripStatusPending
	}

	s.store.PutTrip(trip)
	return &trip, nil
}

func (s *TripService) UpdateTrip(id string, req *UpdateTripRequest) (*models.Trip, error) {
	trip, ok := s.store.Trip(id)
	if !ok {
		return nil, errors.New("trip not found")
	}

	if req.Origin != "" {
		trip.Origin = req.Origin
	}
	if req.Destination != "" {
		trip.Destination = req.Destination
	}
	if req.StartTime != nil {
		trip.StartTime = req.StartTime
	}
	if req.Status != "" {
		trip.Status = req.Status
	}
	if req.Notes != "" {
		trip.Notes = req.Notes
	}
	trip.UpdatedAt = time.Now()

	s.store.PutTrip(trip)
	return &trip, nil
}

func (s *TripService) DeleteTrip(id string) error {
	if !s.store.RemoveTrip(id) {
		return errors.New("trip not found")
	}
	return nil
}
