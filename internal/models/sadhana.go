package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRecord is one devotee's sadhana log for a single calendar day.
// A record is created once per day per user and becomes immutable after
// the day closes.
type ActivityRecord struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               primitive.ObjectID `bson:"user_id" json:"user_id"`
	Date                 time.Time          `bson:"date" json:"date"` // midnight, UTC
	JapaRounds           int                `bson:"japa_rounds" json:"japa_rounds"`
	TargetRounds         int                `bson:"target_rounds" json:"target_rounds"`
	AartiAttended        bool               `bson:"aarti_attended" json:"aarti_attended"`
	ReadingMinutes       int                `bson:"reading_minutes" json:"reading_minutes"`
	TargetReadingMinutes int                `bson:"target_reading_minutes" json:"target_reading_minutes"`
	SevaHours            float64            `bson:"seva_hours" json:"seva_hours"`
	TargetSevaHours      float64            `bson:"target_seva_hours" json:"target_seva_hours"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// WeeklyAggregate is derived from the last seven ActivityRecords, never
// stored on its own. Each field is a percentage in [0,100].
type WeeklyAggregate struct {
	JapaCompletion    float64 `bson:"-" json:"japa_completion"`
	AartiAttendance   float64 `bson:"-" json:"aarti_attendance"`
	ReadingGoal       float64 `bson:"-" json:"reading_goal"`
	SevaParticipation float64 `bson:"-" json:"seva_participation"`
}
