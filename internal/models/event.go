package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceEvent is a scheduled temple service (aarti, kirtan, prasadam seva).
// Events are created by the scheduling side; the dashboard only reads them
// and derives countdown/urgency.
type ServiceEvent struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	ScheduledAt      time.Time            `bson:"scheduled_at" json:"scheduled_at"`
	RSVPRequired     bool                 `bson:"rsvp_required" json:"rsvp_required"`
	ParticipantCount int                  `bson:"participant_count" json:"participant_count"`
	Participants     []primitive.ObjectID `bson:"participants,omitempty" json:"-"`
	CreatedAt        time.Time            `bson:"created_at" json:"created_at"`
}
