package cartevents

import (
	"context"
	"sync"
)

const defaultInboxSize = 20

// Inbox keeps the most recent notifications per user until the presentation layer picks them up.
type Inbox struct {
	mu    sync.Mutex
	size  int
	items map[string][]Notification
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	return &Inbox{
		size:  size,
		items: map[string][]Notification{},
	}
}

func (i *Inbox) Notify(c context.Context, n Notification) {
	key := n.GetAggregateName()

	i.mu.Lock()
	defer i.mu.Unlock()

	queue := append(i.items[key], n)
	if len(queue) > i.size {
		// oldest toasts are dropped first
		queue = queue[len(queue)-i.size:]
	}
	i.items[key] = queue
}

// Drain returns and forgets the pending notifications of a user, oldest first.
func (i *Inbox) Drain(userID string) []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	queue := i.items[userID]
	delete(i.items, userID)
	if queue == nil {
		return []Notification{}
	}
	return queue
}
