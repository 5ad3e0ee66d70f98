package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

func testSnapshot() RawSnapshot {
	today := day(0)
	return RawSnapshot{
		User:    &models.User{ID: primitive.NewObjectID(), Name: "Radha", Role: models.RoleDevotee},
		Today:   &today,
		History: []models.ActivityRecord{day(0), day(1), day(2)},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(nil, nil, 0)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	raw := testSnapshot()
	raw.Events = []models.ServiceEvent{
		{ID: primitive.NewObjectID(), Name: "Mangala Aarti", ScheduledAt: now.Add(90 * time.Minute)},
	}

	first := b.Build(raw, now)
	second := b.Build(raw, now)
	assert.Equal(t, first, second)
}

func TestBuildDegradesOnPartialData(t *testing.T) {
	b := NewBuilder(nil, nil, 0)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	// Completely empty snapshot must still produce a renderable view model.
	vm := b.Build(RawSnapshot{}, now)
	assert.Equal(t, 0, vm.Streak)
	assert.Equal(t, 0, vm.UnreadNotifications)
	assert.Zero(t, vm.Today.Japa.Percentage)
	assert.False(t, vm.Today.Japa.Completed)
	assert.Zero(t, vm.Weekly)

	// Degenerate target inside an otherwise present record.
	broken := models.ActivityRecord{JapaRounds: 12, TargetRounds: 0}
	vm = b.Build(RawSnapshot{Today: &broken}, now)
	assert.Zero(t, vm.Today.Japa.Percentage)
	assert.False(t, vm.Today.Japa.Completed)
}

func TestBuildEventOrdering(t *testing.T) {
	b := NewBuilder(nil, nil, 0)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	late := models.ServiceEvent{ID: primitive.NewObjectID(), Name: "Gita Class", ScheduledAt: now.Add(5 * time.Hour)}
	soon := models.ServiceEvent{ID: primitive.NewObjectID(), Name: "Sandhya Aarti", ScheduledAt: now.Add(time.Hour)}
	past := models.ServiceEvent{ID: primitive.NewObjectID(), Name: "Mangala Aarti", ScheduledAt: now.Add(-2 * time.Hour)}

	vm := b.Build(RawSnapshot{Events: []models.ServiceEvent{late, soon, past}}, now)
	require.Len(t, vm.Events, 3)

	// Past event has zero remaining, so it sorts first and is not urgent.
	assert.Equal(t, past.ID, vm.Events[0].Event.ID)
	assert.False(t, vm.Events[0].Urgent)
	assert.Equal(t, soon.ID, vm.Events[1].Event.ID)
	assert.True(t, vm.Events[1].Urgent)
	assert.Equal(t, late.ID, vm.Events[2].Event.ID)
	assert.False(t, vm.Events[2].Urgent)
}

func TestBuildEventTiesBrokenByID(t *testing.T) {
	b := NewBuilder(nil, nil, 0)
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	at := now.Add(time.Hour)

	a := models.ServiceEvent{ID: primitive.NewObjectID(), ScheduledAt: at}
	z := models.ServiceEvent{ID: primitive.NewObjectID(), ScheduledAt: at}
	lo, hi := a, z
	if z.ID.Hex() < a.ID.Hex() {
		lo, hi = z, a
	}

	vm := b.Build(RawSnapshot{Events: []models.ServiceEvent{hi, lo}}, now)
	require.Len(t, vm.Events, 2)
	assert.Equal(t, lo.ID, vm.Events[0].Event.ID)
	assert.Equal(t, hi.ID, vm.Events[1].Event.ID)
}

func TestBuildUnreadCountMatchesNotifications(t *testing.T) {
	b := NewBuilder(nil, nil, 0)
	now := time.Now()

	raw := testSnapshot()
	raw.Notifications = []models.Notification{
		{ID: primitive.NewObjectID(), Read: false, CreatedAt: now},
		{ID: primitive.NewObjectID(), Read: true, CreatedAt: now},
	}

	vm := b.Build(raw, now)
	assert.Equal(t, 1, vm.UnreadNotifications)
}

func TestBuildWeeklyAggregateWindow(t *testing.T) {
	b := NewBuilder(nil, nil, 0)
	now := time.Now()

	// Ten days of history: only the most recent seven count.
	var history []models.ActivityRecord
	for i := 0; i < 10; i++ {
		rec := day(i)
		if i >= 7 {
			rec.JapaRounds = 0 // outside the window, must not drag the mean down
		}
		history = append(history, rec)
	}

	vm := b.Build(RawSnapshot{History: history}, now)
	assert.InDelta(t, 100, vm.Weekly.JapaCompletion, 1e-9)
	assert.InDelta(t, 100, vm.Weekly.AartiAttendance, 1e-9)

	// Half-attended week.
	history = []models.ActivityRecord{day(0), day(1)}
	history[1].AartiAttended = false
	vm = b.Build(RawSnapshot{History: history}, now)
	assert.InDelta(t, 50, vm.Weekly.AartiAttendance, 1e-9)
}
