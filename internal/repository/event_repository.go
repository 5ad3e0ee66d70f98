package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

type EventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection("service_events"),
	}
}

// GetUpcoming returns events scheduled at or after the given time, soonest
// first.
func (r *EventRepository) GetUpcoming(ctx context.Context, from time.Time, limit int64) ([]models.ServiceEvent, error) {
	filter := bson.M{"scheduled_at": bson.M{"$gte": from}}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []models.ServiceEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %v", err)
	}
	return events, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceEvent, error) {
	var event models.ServiceEvent
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to get event: %v", err)
	}
	return &event, nil
}

// AddParticipant records an RSVP. The $addToSet keeps the operation
// idempotent per user; the counter only moves when the set actually grew.
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$addToSet": bson.M{"participants": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add participant: %v", err)
	}
	if res.ModifiedCount == 0 {
		return nil // already on the list, or no such event
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": eventID},
		bson.M{"$inc": bson.M{"participant_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to bump participant count: %v", err)
	}
	return nil
}
