package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Truck status values. "assigned" with no resolvable driver is displayed as
// "available" by the consistency evaluator; the stored status is never rewritten.
const (
	TruckStatusAvailable   = "available"
	TruckStatusAssigned    = "assigned"
	TruckStatusInTransit   = "intransit"
	TruckStatusPending     = "pending"
	TruckStatusMaintenance = "maintenance"
)

// DriverUnassigned is the sentinel stored in Truck.Driver when no driver
// is attached to the truck.
const DriverUnassigned = "Unassigned"

type Truck struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	PlateNumber  string             `bson:"plate_number" json:"plateNumber" validate:"required"`
	Model        string             `bson:"model" json:"model"`
	Driver       string             `bson:"driver" json:"driver"`
	FuelLevel    int                `bson:"fuel_level" json:"fuelLevel" validate:"gte=0,lte=100"`
	LoadCapacity string             `bson:"load_capacity,omitempty" json:"loadCapacity,omitempty"`
	FuelType     string             `bson:"fuel_type,omitempty" json:"fuelType,omitempty"`
	Status       string             `bson:"status" json:"status" validate:"omitempty,oneof=available assigned intransit pending maintenance"`
	// LastMaintenance is kept as a date string ("2006-01-02" or RFC3339); an
	// absent or unparsable value means the maintenance-overdue rule never fires.
	LastMaintenance string    `bson:"last_maintenance,omitempty" json:"lastMaintenance,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
