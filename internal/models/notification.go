package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType is the closed set of notification kinds the dashboard shows.
type NotificationType string

const (
	NotificationServiceReminder NotificationType = "service_reminder"
	NotificationAchievement     NotificationType = "achievement"
	NotificationMessage         NotificationType = "message"
	NotificationUpdate          NotificationType = "update"
)

type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Type      NotificationType    `bson:"type" json:"type"`
	Message   string              `bson:"message" json:"message"`
	Read      bool                `bson:"read" json:"read"` // true once the user viewed it
	TargetID  *primitive.ObjectID `bson:"target_id,omitempty" json:"target_id,omitempty"` // optional reference to event/achievement
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time           `bson:"expires_at" json:"expires_at"` // for auto-deletion after 7 days
}
