package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/engine"
	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"github.com/vaishnava-tech/sadhana-dashboard/pkg/logger"
)

// notificationStore is the slice of the notification repository this service
// consumes. *repository.NotificationRepository satisfies it.
type notificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error
	GetLatestByTypeAndTarget(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, targetID primitive.ObjectID) (*models.Notification, error)
	ExistsByTypeAndMessage(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, message string) (bool, error)
	DeleteExpiredNotifications(ctx context.Context) error
}

type userLister interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type eventLister interface {
	GetUpcoming(ctx context.Context, from time.Time, limit int64) ([]models.ServiceEvent, error)
}

// NotificationService owns one engine.Inbox per user and keeps it in step
// with the notifications collection. Mutations write through to Mongo first,
// then to the inbox, so a rebuild never observes a half-applied change.
type NotificationService struct {
	repo      notificationStore
	userRepo  userLister
	eventRepo eventLister

	mu      sync.Mutex
	inboxes map[primitive.ObjectID]*engine.Inbox
}

func NewNotificationService(repo notificationStore, userRepo userLister, eventRepo eventLister) *NotificationService {
	return &NotificationService{
		repo:      repo,
		userRepo:  userRepo,
		eventRepo: eventRepo,
		inboxes:   make(map[primitive.ObjectID]*engine.Inbox),
	}
}

// InboxFor returns the user's inbox, hydrating it from the repository on
// first access.
func (s *NotificationService) InboxFor(ctx context.Context, userID primitive.ObjectID) (*engine.Inbox, error) {
	s.mu.Lock()
	if inb, ok := s.inboxes[userID]; ok {
		s.mu.Unlock()
		return inb, nil
	}
	s.mu.Unlock()

	items, err := s.repo.GetUserNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate inbox: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if inb, ok := s.inboxes[userID]; ok {
		return inb, nil // lost the race, keep the first hydration
	}
	inb := engine.NewInbox(items)
	s.inboxes[userID] = inb
	return inb, nil
}

// Notify creates a notification and delivers it to the in-memory inbox.
// The inbox is hydrated before the insert: a cold inbox hydrating after the
// insert would pick the new row up from the collection and then receive it
// again via Add.
func (s *NotificationService) Notify(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, message string, targetID *primitive.ObjectID) error {
	inb, err := s.InboxFor(ctx, userID)
	if err != nil {
		return err
	}

	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return err
	}

	inb.Add(*notif)
	return nil
}

// NotifyOnce sends a notification unless an identical live one already
// exists, so repeated scans stay quiet.
func (s *NotificationService) NotifyOnce(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, message string, targetID *primitive.ObjectID) error {
	exists, err := s.repo.ExistsByTypeAndMessage(ctx, userID, notifType, message)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.Notify(ctx, userID, notifType, message, targetID)
}

// MarkNotificationRead flips one notification to read. Unknown ids, and ids
// belonging to someone else, are a silent no-op, which keeps the operation
// idempotent for the caller.
func (s *NotificationService) MarkNotificationRead(ctx context.Context, userID, notifID primitive.ObjectID) error {
	if err := s.repo.MarkAsRead(ctx, userID, notifID); err != nil {
		logger.Log.WithField("notification_id", notifID.Hex()).WithError(err).Error("Failed to mark notification as read")
		return fmt.Errorf("failed to mark notification as read: %v", err)
	}

	inb, err := s.InboxFor(ctx, userID)
	if err != nil {
		return err
	}
	inb.MarkRead(notifID)
	return nil
}

// ClearAllNotifications empties the user's notifications in storage and in
// memory. Irreversible.
func (s *NotificationService) ClearAllNotifications(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		logger.Log.WithField("user_id", userID.Hex()).WithError(err).Error("Failed to clear notifications")
		return err
	}

	inb, err := s.InboxFor(ctx, userID)
	if err != nil {
		return err
	}
	inb.ClearAll()
	return nil
}

// CheckServiceReminders scans upcoming events and sends a service_reminder
// to every devotee for each event inside the urgency window, deduped per
// (user, event). Called by cron every minute.
func (s *NotificationService) CheckServiceReminders(ctx context.Context, window time.Duration) error {
	now := time.Now()
	events, err := s.eventRepo.GetUpcoming(ctx, now, 50)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %v", err)
	}

	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %v", err)
	}

	for _, event := range events {
		cd := engine.CountdownWithin(event.ScheduledAt, now, window)
		if !cd.Urgent {
			continue
		}

		for _, user := range users {
			existing, err := s.repo.GetLatestByTypeAndTarget(ctx, user.ID, models.NotificationServiceReminder, event.ID)
			if err != nil && err != mongo.ErrNoDocuments {
				// A failed lookup is not "never reminded"; skip rather than spam.
				logrus.WithError(err).Warnf("Failed to check prior reminder for user %s", user.ID.Hex())
				continue
			}
			if existing != nil {
				continue // already reminded about this event
			}

			message := fmt.Sprintf("\"%s\" starts at %s. Hare Krishna!", event.Name, event.ScheduledAt.Format("15:04"))
			eventID := event.ID
			if err := s.Notify(ctx, user.ID, models.NotificationServiceReminder, message, &eventID); err != nil {
				logrus.WithError(err).Warnf("Failed to send service reminder to user %s", user.ID.Hex())
			}
		}
	}

	return nil
}

// DeleteExpiredNotifications drops expired rows and forces the affected
// inboxes to rehydrate on next access.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	if err := s.repo.DeleteExpiredNotifications(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.inboxes = make(map[primitive.ObjectID]*engine.Inbox)
	s.mu.Unlock()
	return nil
}
