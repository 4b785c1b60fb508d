// Package notify is the in-memory notification center: an ordered queue
// of operator-facing alerts with a display/expiry policy. UI layers
// subscribe for render-time display only; the queue is mutated solely
// through Post and Acknowledge.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Category classifies a notification's severity and expiry behaviour.
type Category string

const (
	Critical Category = "critical"
	Warning  Category = "warning"
	Success  Category = "success"
	Info     Category = "info"
)

// DefaultTTL is how long non-critical notifications stay on screen.
const DefaultTTL = 5 * time.Second

// Notification is a single queued alert.
type Notification struct {
	ID        string
	Category  Category
	Title     string
	Body      string
	CreatedAt time.Time
}

// Center holds the notification queue. Display order equals insertion
// order; removal never reorders the remaining entries.
type Center struct {
	lock  sync.Mutex
	queue []Notification

	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	subscriberLock sync.Mutex
	subscribers    []func()
}

type CenterOption func(*Center)

// WithTTL overrides the auto-expiry window (primarily for testing).
func WithTTL(ttl time.Duration) CenterOption {
	return func(c *Center) {
		c.ttl = ttl
	}
}

// WithNowFunc sets the time source (primarily for testing).
func WithNowFunc(now func() time.Time) CenterOption {
	return func(c *Center) {
		c.now = now
	}
}

// WithLogger sets the logger notifications are mirrored to.
func WithLogger(logger zerolog.Logger) CenterOption {
	return func(c *Center) {
		c.logger = logger
	}
}

func NewCenter(options ...CenterOption) *Center {
	c := &Center{
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Subscribe registers a change listener, called after every queue
// mutation. Listeners must read state via List, never reach into the
// queue.
func (c *Center) Subscribe(fn func()) {
	c.subscriberLock.Lock()
	defer c.subscriberLock.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *Center) notifySubscribers() {
	c.subscriberLock.Lock()
	subscribers := make([]func(), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.subscriberLock.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// Post appends a notification and returns its id. Non-critical
// categories self-expire exactly ttl after Post, regardless of any
// interaction in between; critical notifications stay until explicitly
// acknowledged.
func (c *Center) Post(category Category, title, body string) string {
	n := Notification{
		ID:        uuid.New().String(),
		Category:  category,
		Title:     title,
		Body:      body,
		CreatedAt: c.now(),
	}

	c.lock.Lock()
	c.queue = append(c.queue, n)
	c.lock.Unlock()

	c.logger.Info().
		Str("category", string(category)).
		Str("title", title).
		Str("body", body).
		Msg("notification posted")

	if category != Critical {
		time.AfterFunc(c.ttl, func() {
			c.Acknowledge(n.ID)
		})
	}

	c.notifySubscribers()
	return n.ID
}

// Acknowledge removes the notification with the given id immediately,
// regardless of category. Acknowledging an unknown or already-removed
// id is a no-op.
func (c *Center) Acknowledge(id string) {
	c.lock.Lock()
	removed := false
	for i, n := range c.queue {
		if n.ID == id {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			removed = true
			break
		}
	}
	c.lock.Unlock()

	if removed {
		c.notifySubscribers()
	}
}

// List returns a snapshot of the queue in display order.
func (c *Center) List() []Notification {
	c.lock.Lock()
	defer c.lock.Unlock()
	snapshot := make([]Notification, len(c.queue))
	copy(snapshot, c.queue)
	return snapshot
}

// Len returns the number of queued notifications.
func (c *Center) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.queue)
}
