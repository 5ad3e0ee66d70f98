package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

// fakeNotificationStore is an in-memory notificationStore.
type fakeNotificationStore struct {
	items     []models.Notification
	lookupErr error // injected into GetLatestByTypeAndTarget
}

func (f *fakeNotificationStore) CreateNotification(_ context.Context, notif *models.Notification) error {
	notif.ID = primitive.NewObjectID()
	notif.CreatedAt = time.Now()
	notif.ExpiresAt = notif.CreatedAt.Add(7 * 24 * time.Hour)
	f.items = append(f.items, *notif)
	return nil
}

func (f *fakeNotificationStore) GetUserNotifications(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAsRead(_ context.Context, userID, id primitive.ObjectID) error {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) DeleteAllForUser(_ context.Context, userID primitive.ObjectID) error {
	var kept []models.Notification
	for _, n := range f.items {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeNotificationStore) GetLatestByTypeAndTarget(_ context.Context, userID primitive.ObjectID, notifType models.NotificationType, targetID primitive.ObjectID) (*models.Notification, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for i := len(f.items) - 1; i >= 0; i-- {
		n := f.items[i]
		if n.UserID == userID && n.Type == notifType && n.TargetID != nil && *n.TargetID == targetID {
			return &n, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeNotificationStore) ExistsByTypeAndMessage(_ context.Context, userID primitive.ObjectID, notifType models.NotificationType, message string) (bool, error) {
	for _, n := range f.items {
		if n.UserID == userID && n.Type == notifType && n.Message == message {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) DeleteExpiredNotifications(_ context.Context) error {
	now := time.Now()
	var kept []models.Notification
	for _, n := range f.items {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	f.items = kept
	return nil
}

type fakeUserLister struct{ users []models.User }

func (f *fakeUserLister) GetAllUsers(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

type fakeEventLister struct{ events []models.ServiceEvent }

func (f *fakeEventLister) GetUpcoming(_ context.Context, _ time.Time, _ int64) ([]models.ServiceEvent, error) {
	return f.events, nil
}

func seededStore(userID primitive.ObjectID) *fakeNotificationStore {
	return &fakeNotificationStore{items: []models.Notification{{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      models.NotificationUpdate,
		Message:   "Temple cleaning moved to Saturday",
		Read:      false,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}}}
}

func TestNotifyColdInboxNoDuplicate(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	store := seededStore(userID)

	// Fresh service: the user's inbox is not in memory yet, so Notify must
	// hydrate before inserting or the new row arrives twice.
	svc := NewNotificationService(store, &fakeUserLister{}, &fakeEventLister{})
	err := svc.Notify(ctx, userID, models.NotificationMessage, "New message from your counsellor", nil)
	require.NoError(t, err)

	inb, err := svc.InboxFor(ctx, userID)
	require.NoError(t, err)

	got := inb.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, 2, inb.UnreadCount())
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Len(t, store.items, 2) // inbox and collection agree
}

func TestNotifyAfterExpirySweepNoDuplicate(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeUserLister{}, &fakeEventLister{})

	require.NoError(t, svc.Notify(ctx, userID, models.NotificationUpdate, "first", nil))

	// The sweep resets every in-memory inbox; the next Notify rehydrates.
	require.NoError(t, svc.DeleteExpiredNotifications(ctx))
	require.NoError(t, svc.Notify(ctx, userID, models.NotificationUpdate, "second", nil))

	inb, err := svc.InboxFor(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, inb.Notifications(), 2)
	assert.Equal(t, 2, inb.UnreadCount())
	assert.Len(t, store.items, 2)
}

func TestMarkNotificationReadScopedToOwner(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	store := seededStore(owner)
	notifID := store.items[0].ID

	svc := NewNotificationService(store, &fakeUserLister{}, &fakeEventLister{})

	// Someone else marking the owner's notification is a silent no-op.
	require.NoError(t, svc.MarkNotificationRead(ctx, intruder, notifID))
	assert.False(t, store.items[0].Read)

	ownerInbox, err := svc.InboxFor(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, ownerInbox.UnreadCount())

	// The owner can.
	require.NoError(t, svc.MarkNotificationRead(ctx, owner, notifID))
	assert.True(t, store.items[0].Read)
	assert.Equal(t, 0, ownerInbox.UnreadCount())
}

func TestCheckServiceRemindersLookupFailureDoesNotSpam(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	store := &fakeNotificationStore{lookupErr: errors.New("connection reset")}
	users := &fakeUserLister{users: []models.User{{ID: userID, Role: models.RoleDevotee}}}
	events := &fakeEventLister{events: []models.ServiceEvent{{
		ID:          primitive.NewObjectID(),
		Name:        "Sandhya Aarti",
		ScheduledAt: time.Now().Add(30 * time.Minute),
	}}}

	svc := NewNotificationService(store, users, events)

	// A failed dedupe lookup must skip the user, not re-send.
	require.NoError(t, svc.CheckServiceReminders(ctx, 2*time.Hour))
	assert.Empty(t, store.items)

	// Lookup healthy again: exactly one reminder goes out.
	store.lookupErr = nil
	require.NoError(t, svc.CheckServiceReminders(ctx, 2*time.Hour))
	require.Len(t, store.items, 1)
	assert.Equal(t, models.NotificationServiceReminder, store.items[0].Type)

	// Second tick is deduped by the prior reminder.
	require.NoError(t, svc.CheckServiceReminders(ctx, 2*time.Hour))
	assert.Len(t, store.items, 1)
}
