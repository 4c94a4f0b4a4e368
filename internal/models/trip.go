package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TripStatusPending   = "pending"
	TripStatusScheduled = "scheduled"
	TripStatusInTransit = "intransit"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// TripStatusTerminal reports whether a trip status no longer counts as an
// active reference to its truck or driver.
func TripStatusTerminal(status string) bool {
	return status == TripStatusCompleted || status == TripStatusCancelled
}

type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TruckID     string             `bson:"truck_id" json:"truckId" validate:"required"`
	DriverID    string             `bson:"driver_id" json:"driverId" validate:"required"`
	Origin      string             `bson:"origin" json:"origin"`
	Destination string             `bson:"destination" json:"destination"`
	StartTime   *time.Time         `bson:"start_time,omitempty" json:"startTime,omitempty"`
	Status      string             `bson:"status" json:"status" validate:"omitempty,oneof=pending scheduled intransit completed cancelled"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
