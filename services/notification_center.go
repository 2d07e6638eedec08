package services

import (
	"sync"

	"pingly_server/models"
)

// NotificationCenter keeps per-mode header notifications, newest first.
type NotificationCenter struct {
	mu    sync.Mutex
	items []models.Notification
	rt    Runtime
}

// NewNotificationCenter creates a center seeded with notifications.
func NewNotificationCenter(seed []models.Notification, rt Runtime) *NotificationCenter {
	items := make([]models.Notification, len(seed))
	copy(items, seed)
	return &NotificationCenter{items: items, rt: rt.withDefaults()}
}

// Push records a new unread notification.
func (n *NotificationCenter) Push(mode models.Mode, kind, message string) models.Notification {
	item := models.Notification{
		ID:        n.rt.NewID(),
		Mode:      mode,
		Type:      kind,
		Message:   message,
		CreatedAt: n.rt.Now(),
	}
	n.mu.Lock()
	next := make([]models.Notification, 0, len(n.items)+1)
	next = append(next, item)
	n.items = append(next, n.items...)
	n.mu.Unlock()
	return item
}

// List returns the notifications for mode.
func (n *NotificationCenter) List(mode models.Mode) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Notification
	for _, item := range n.items {
		if item.Mode == mode {
			out = append(out, item)
		}
	}
	return out
}

// UnreadCount returns how many notifications for mode are unread.
func (n *NotificationCenter) UnreadCount(mode models.Mode) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, item := range n.items {
		if item.Mode == mode && !item.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read. Unknown ids are ignored.
func (n *NotificationCenter) MarkRead(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			if item.Read {
				return false
			}
			next := make([]models.Notification, len(n.items))
			copy(next, n.items)
			next[i].Read = true
			n.items = next
			return true
		}
	}
	return false
}

// MarkAllRead marks every notification of mode read and returns the count changed.
func (n *NotificationCenter) MarkAllRead(mode models.Mode) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	next := make([]models.Notification, len(n.items))
	copy(next, n.items)
	changed := 0
	for i := range next {
		if next[i].Mode == mode && !next[i].Read {
			next[i].Read = true
			changed++
		}
	}
	n.items = next
	return changed
}
