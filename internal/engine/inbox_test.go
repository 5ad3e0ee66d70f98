package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

func notif(id primitive.ObjectID, read bool, at time.Time) models.Notification {
	return models.Notification{ID: id, Type: models.NotificationUpdate, Read: read, CreatedAt: at}
}

func TestInboxUnreadCount(t *testing.T) {
	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	first, second := primitive.NewObjectID(), primitive.NewObjectID()

	inb := NewInbox([]models.Notification{
		notif(first, false, base),
		notif(second, true, base.Add(time.Minute)),
	})

	assert.Equal(t, 1, inb.UnreadCount())

	inb.MarkRead(first)
	assert.Equal(t, 0, inb.UnreadCount())
}

func TestInboxMarkReadIdempotent(t *testing.T) {
	id := primitive.NewObjectID()
	inb := NewInbox([]models.Notification{notif(id, false, time.Now())})

	assert.True(t, inb.MarkRead(id))
	v := inb.Version()

	// Second call is a no-op: no transition, no version bump.
	assert.False(t, inb.MarkRead(id))
	assert.Equal(t, v, inb.Version())
	assert.Equal(t, 0, inb.UnreadCount())

	// Unknown id is also a silent no-op.
	assert.False(t, inb.MarkRead(primitive.NewObjectID()))
}

func TestInboxClearAll(t *testing.T) {
	inb := NewInbox([]models.Notification{
		notif(primitive.NewObjectID(), false, time.Now()),
		notif(primitive.NewObjectID(), true, time.Now()),
	})

	inb.ClearAll()
	assert.Equal(t, 0, inb.UnreadCount())
	assert.Empty(t, inb.Notifications())
}

func TestInboxOrderingNewestFirstStableTies(t *testing.T) {
	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	older := notif(primitive.NewObjectID(), false, base.Add(-time.Hour))
	tieA := notif(primitive.NewObjectID(), false, base)
	tieB := notif(primitive.NewObjectID(), false, base)

	inb := NewInbox([]models.Notification{older, tieA})
	inb.Add(tieB)

	got := inb.Notifications()
	require.Len(t, got, 3)
	assert.Equal(t, tieA.ID, got[0].ID) // inserted before tieB, same timestamp
	assert.Equal(t, tieB.ID, got[1].ID)
	assert.Equal(t, older.ID, got[2].ID)
}

func TestInboxNotificationsReturnsCopy(t *testing.T) {
	id := primitive.NewObjectID()
	inb := NewInbox([]models.Notification{notif(id, false, time.Now())})

	got := inb.Notifications()
	got[0].Read = true

	assert.Equal(t, 1, inb.UnreadCount())
}
