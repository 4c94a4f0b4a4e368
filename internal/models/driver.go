package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DriverStatusAvailable = "available"
	DriverStatusDriving   = "driving"
	DriverStatusAssigned  = "assigned"
	DriverStatusOffDuty   = "off-duty"
	DriverStatusInactive  = "inactive"
)

type Driver struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name" validate:"required"`
	Email         string             `bson:"email" json:"email" validate:"omitempty,email"`
	Phone         string             `bson:"phone" json:"phone"`
	LicenseNumber string             `bson:"license_number" json:"licenseNumber"`
	// AssignedVehicle holds a truck id. The reference is soft: a dangling id is
	// tolerated everywhere and falls back to raw-id display.
	AssignedVehicle string    `bson:"assigned_vehicle,omitempty" json:"assignedVehicle,omitempty"`
	Status          string    `bson:"status" json:"status" validate:"omitempty,oneof=available driving assigned off-duty inactive"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
