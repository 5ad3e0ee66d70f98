package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles. Navigation dispatches on it
// through a lookup table, never through conditionals.
type Role string

const (
	RoleDevotee    Role = "devotee"
	RoleCounsellor Role = "counsellor"
	RoleAdmin      Role = "admin"
)

// User represents a devotee account in the sadhana dashboard.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           Role               `bson:"role" json:"role"`
	CounsellorID   primitive.ObjectID `bson:"counsellor_id,omitempty" json:"counsellor_id,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
	LastActiveAt   time.Time          `bson:"last_active_at" json:"last_active_at"`
}

type PublicUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}
