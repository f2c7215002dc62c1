package notify

import (
	"sync"
	"time"
)

// TTL is how long a notification stays visible before expiring on its own.
const TTL = 5 * time.Second

// Kind classifies a notification for rendering.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one ephemeral status message.
type Notification struct {
	Text      string
	Kind      Kind
	ExpiresAt time.Time
}

// Channel holds at most one visible notification. A new Show replaces the
// current message and restarts its expiry; there is no queue.
type Channel struct {
	mu      sync.Mutex
	current *Notification
	now     func() time.Time
}

// NewChannel creates a channel using the wall clock.
func NewChannel() *Channel {
	return &Channel{now: time.Now}
}

// newChannelWithClock is for tests.
func newChannelWithClock(now func() time.Time) *Channel {
	return &Channel{now: now}
}

// Show displays a message that self-expires after TTL.
func (c *Channel) Show(text string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &Notification{
		Text:      text,
		Kind:      kind,
		ExpiresAt: c.now().Add(TTL),
	}
}

// Current returns the visible notification, if one has not expired.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Notification{}, false
	}
	if !c.now().Before(c.current.ExpiresAt) {
		c.current = nil
		return Notification{}, false
	}
	return *c.current, true
}

// Clear dismisses the current notification, if any.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
