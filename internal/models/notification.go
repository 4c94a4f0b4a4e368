package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"
	NotificationTypeSuccess = "success"
)

// Notification is an entry in the user-visible notification list. Entries are
// stored in insertion order and listed newest first. The alert engine is the
// only automated producer; nothing here deduplicates (that is the engine's
// cooldown responsibility).
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title" validate:"required"`
	Message   string             `bson:"message" json:"message" validate:"required"`
	Type      string             `bson:"type" json:"type" validate:"required,oneof=info warning error success"`
	URL       string             `bson:"url,omitempty" json:"url,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
