package engine

import (
	"sort"
	"sync"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inbox owns a devotee's in-memory notification state. Mutations are atomic
// with respect to snapshot rebuilds: a rebuild reads either the pre- or
// post-mutation state, never a partial one. The read flag only ever moves
// unread → read; there is no way back.
type Inbox struct {
	mu      sync.RWMutex
	items   []models.Notification // insertion order
	version uint64
}

// NewInbox seeds an inbox, typically from the notification repository.
func NewInbox(items []models.Notification) *Inbox {
	inb := &Inbox{items: make([]models.Notification, len(items))}
	copy(inb.items, items)
	return inb
}

// Add appends a freshly created notification.
func (inb *Inbox) Add(n models.Notification) {
	inb.mu.Lock()
	defer inb.mu.Unlock()
	inb.items = append(inb.items, n)
	inb.version++
}

// MarkRead flips one notification to read. Unknown ids and already-read
// notifications are silent no-ops, so the operation is idempotent. Returns
// whether a transition actually happened.
func (inb *Inbox) MarkRead(id primitive.ObjectID) bool {
	inb.mu.Lock()
	defer inb.mu.Unlock()
	for i := range inb.items {
		if inb.items[i].ID == id && !inb.items[i].Read {
			inb.items[i].Read = true
			inb.version++
			return true
		}
	}
	return false
}

// ClearAll drops every notification, read or not. Irreversible.
func (inb *Inbox) ClearAll() {
	inb.mu.Lock()
	defer inb.mu.Unlock()
	inb.items = nil
	inb.version++
}

// UnreadCount is recomputed from the items on every call; there is no
// separately tracked counter to drift out of sync.
func (inb *Inbox) UnreadCount() int {
	inb.mu.RLock()
	defer inb.mu.RUnlock()
	count := 0
	for _, n := range inb.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// Notifications returns a copy ordered newest-first by timestamp. The sort
// is stable, so notifications sharing a timestamp keep insertion order.
func (inb *Inbox) Notifications() []models.Notification {
	inb.mu.RLock()
	defer inb.mu.RUnlock()

	out := make([]models.Notification, len(inb.items))
	copy(out, inb.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Version increments on every mutation; rebuild loops use it to detect a
// stale read cheaply.
func (inb *Inbox) Version() uint64 {
	inb.mu.RLock()
	defer inb.mu.RUnlock()
	return inb.version
}
