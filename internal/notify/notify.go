// Package notify holds the single-slot transient notification state.
//
// At most one notification is live at a time. A new Notify supersedes the
// current one; the superseded notification's expiry becomes a no-op because
// expiry is guarded by identity. The UI schedules the actual timer and
// calls Expire when it fires.
package notify

import "time"

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Kind classifies a notification for styling.
type Kind int

const (
	Success Kind = iota
	Error
	Warning
	Info
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	}
	return "info"
}

// Notification is one transient message.
type Notification struct {
	ID        uint64
	Message   string
	Kind      Kind
	ExpiresAt time.Time
}

// Center coordinates the single live notification.
type Center struct {
	current *Notification
	nextID  uint64
	ttl     time.Duration
	now     func() time.Time
}

// NewCenter builds a Center with the given display duration. A zero ttl
// falls back to DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// TTL returns the configured display duration.
func (c *Center) TTL() time.Duration { return c.ttl }

// Notify replaces the live notification and returns the new one. The
// caller schedules a timer for TTL and calls Expire with the returned ID.
func (c *Center) Notify(message string, kind Kind) Notification {
	c.nextID++
	n := Notification{
		ID:        c.nextID,
		Message:   message,
		Kind:      kind,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.current = &n
	return n
}

// Expire clears the live notification only when it still carries id,
// so a stale timer cannot erase a newer message. Reports whether anything
// was cleared.
func (c *Center) Expire(id uint64) bool {
	if c.current == nil || c.current.ID != id {
		return false
	}
	c.current = nil
	return true
}

// Dismiss clears unconditionally.
func (c *Center) Dismiss() {
	c.current = nil
}

// Current returns the live notification, if any.
func (c *Center) Current() (Notification, bool) {
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}
