package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activity_records"),
	}
}

// UpsertRecord writes the record for its (user, date) pair, creating it on
// the first write of the day and replacing the counters on later writes.
func (r *ActivityRepository) UpsertRecord(ctx context.Context, rec *models.ActivityRecord) error {
	filter := bson.M{"user_id": rec.UserID, "date": rec.Date}
	update := bson.M{
		"$set": bson.M{
			"japa_rounds":            rec.JapaRounds,
			"target_rounds":          rec.TargetRounds,
			"aarti_attended":         rec.AartiAttended,
			"reading_minutes":        rec.ReadingMinutes,
			"target_reading_minutes": rec.TargetReadingMinutes,
			"seva_hours":             rec.SevaHours,
			"target_seva_hours":      rec.TargetSevaHours,
			"updated_at":             time.Now(),
		},
		"$setOnInsert": bson.M{
			"user_id":    rec.UserID,
			"date":       rec.Date,
			"created_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		logrus.WithError(err).Error("Failed to upsert activity record")
		return fmt.Errorf("failed to upsert activity record: %v", err)
	}
	return nil
}

// GetRecentByUser fetches the user's most recent records, newest first.
func (r *ActivityRepository) GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.ActivityRecord, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity records: %v", err)
	}
	defer cursor.Close(ctx)

	var records []models.ActivityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode activity records: %v", err)
	}
	return records, nil
}

// GetByUserAndDate returns the single record for one calendar day, or
// mongo.ErrNoDocuments when nothing was logged.
func (r *ActivityRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*models.ActivityRecord, error) {
	filter := bson.M{"user_id": userID, "date": date}

	var rec models.ActivityRecord
	if err := r.collection.FindOne(ctx, filter).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
