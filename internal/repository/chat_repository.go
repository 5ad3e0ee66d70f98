package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

type ChatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		collection: db.Collection("messages"),
	}
}

// CountUnseen counts messages sent to the user that they have not seen yet.
func (r *ChatRepository) CountUnseen(ctx context.Context, userID primitive.ObjectID) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"receiver_id": userID, "seen": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen messages: %v", err)
	}
	return int(count), nil
}

// GetLatestMessage returns the newest message in either direction between
// the user and their counsellor, or mongo.ErrNoDocuments.
func (r *ChatRepository) GetLatestMessage(ctx context.Context, userID, counsellorID primitive.ObjectID) (*models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender_id": userID, "receiver_id": counsellorID},
		{"sender_id": counsellorID, "receiver_id": userID},
	}}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var msg models.Message
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
