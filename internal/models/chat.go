package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	Text       string             `bson:"text" json:"text"`
	Seen       bool               `bson:"seen" json:"seen"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// ChatStatus is the counsellor-chat summary shown on the dashboard: who the
// devotee's counsellor is and whether anything is waiting for them.
type ChatStatus struct {
	CounsellorID   primitive.ObjectID `json:"counsellor_id,omitempty"`
	CounsellorName string             `json:"counsellor_name,omitempty"`
	UnseenMessages int                `json:"unseen_messages"`
	LastMessageAt  time.Time          `json:"last_message_at,omitempty"`
}
