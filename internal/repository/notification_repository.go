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

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.CreatedAt = time.Now()
	notif.ExpiresAt = notif.CreatedAt.Add(7 * 24 * time.Hour)

	res, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		notif.ID = oid
	}
	return nil
}

// GetUserNotifications returns all live notifications for a user, newest first
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{
		"user_id":    userID,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

// MarkAsRead sets notification's Read to true. The filter is scoped to the
// owning user, so unknown ids and other users' notifications match nothing
// and are not an error.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// DeleteAllForUser removes every notification of one user, read or not.
func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to clear notifications: %v", err)
	}
	return nil
}

// GetLatestByTypeAndTarget finds the newest notification of one kind for one
// target, used to avoid sending duplicate reminders.
func (r *NotificationRepository) GetLatestByTypeAndTarget(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, targetID primitive.ObjectID) (*models.Notification, error) {
	filter := bson.M{
		"user_id":   userID,
		"type":      notifType,
		"target_id": targetID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var notif models.Notification
	err := r.collection.FindOne(ctx, filter, opts).Decode(&notif)
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

// ExistsByTypeAndMessage reports whether the user already has a live
// notification with this exact kind and text. Used to dedupe unlock
// announcements.
func (r *NotificationRepository) ExistsByTypeAndMessage(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, message string) (bool, error) {
	filter := bson.M{
		"user_id": userID,
		"type":    notifType,
		"message": message,
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check notification: %v", err)
	}
	return count > 0, nil
}

// DeleteExpiredNotifications removes notifications past their expiry
func (r *NotificationRepository) DeleteExpiredNotifications(ctx context.Context) error {
	filter := bson.M{"expires_at": bson.M{"$lte": time.Now()}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete expired notifications: %v", err)
	}
	logrus.Infof("Deleted %d expired notifications", result.DeletedCount)
	return nil
}
