// Package notify owns the toast container: transient, auto-dismissing status
// messages that never block input.
//
// The manager holds only semantic state. Renderers read Snapshot and listen on
// Subscribe to know when to redraw.
package notify

import (
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/riordanpawley/autowriter/internal/clock"
	"github.com/riordanpawley/autowriter/internal/types"
)

const (
	// DefaultDuration is how long a toast stays when no duration is given.
	DefaultDuration = 5 * time.Second
	// EnterDelay is the pause between attaching a toast and marking it shown.
	EnterDelay = 100 * time.Millisecond
	// GracePeriod is the exit transition length before a toast is detached.
	GracePeriod = 300 * time.Millisecond

	subscriberBuffer = 64
)

// Manager is the single notification container.
type Manager struct {
	mu              sync.Mutex
	clock           clock.Clock
	logger          *slog.Logger
	defaultDuration time.Duration
	items           []*entry
	subscribers     []chan Event
}

type entry struct {
	n       Notification
	enter   clock.Timer
	dismiss clock.Timer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDefaultDuration overrides DefaultDuration for the convenience helpers.
// Zero makes their toasts persistent.
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.defaultDuration = d
		}
	}
}

// New creates the notification container.
func New(clk clock.Clock, opts ...Option) *Manager {
	if clk == nil {
		clk = clock.Real()
	}

	m := &Manager{
		clock:           clk,
		logger:          slog.Default(),
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultDuration returns the duration used by Success, Error, Warning and Info.
func (m *Manager) DefaultDuration() time.Duration {
	return m.defaultDuration
}

// Show attaches a notification and starts its timers. A duration of zero
// keeps it until Remove is called.
func (m *Manager) Show(message string, level types.Level, title string, duration time.Duration) Handle {
	if duration < 0 {
		duration = 0
	}

	now := m.clock.Now()
	n := Notification{
		ID:        newID(now),
		Message:   message,
		Level:     level,
		Title:     title,
		Duration:  duration,
		CreatedAt: now,
		Status:    StatusEntering,
	}
	if duration > 0 {
		n.ExpiresAt = now.Add(duration)
	}

	e := &entry{n: n}
	h := Handle{ID: n.ID}

	m.mu.Lock()
	m.items = append(m.items, e)
	e.enter = m.clock.AfterFunc(EnterDelay, func() { m.markShown(h) })
	if duration > 0 {
		e.dismiss = m.clock.AfterFunc(duration, func() { m.Remove(h) })
	}
	m.publishLocked(Event{Type: EventAdded, ID: n.ID})
	m.mu.Unlock()

	m.logger.Debug("notification shown",
		"id", n.ID,
		"level", level.String(),
		"duration_ms", duration.Milliseconds(),
	)

	return h
}

// Success shows a success toast. An empty title uses "Success".
func (m *Manager) Success(message, title string) Handle {
	return m.showDefault(message, types.LevelSuccess, title)
}

// Error shows an error toast. An empty title uses "Error".
func (m *Manager) Error(message, title string) Handle {
	return m.showDefault(message, types.LevelError, title)
}

// Warning shows a warning toast. An empty title uses "Warning".
func (m *Manager) Warning(message, title string) Handle {
	return m.showDefault(message, types.LevelWarning, title)
}

// Info shows an info toast. An empty title uses "Info".
func (m *Manager) Info(message, title string) Handle {
	return m.showDefault(message, types.LevelInfo, title)
}

func (m *Manager) showDefault(message string, level types.Level, title string) Handle {
	if title == "" {
		title = level.DefaultTitle()
	}
	return m.Show(message, level, title, m.defaultDuration)
}

// Remove starts the exit transition and detaches the notification once the
// grace period has elapsed. Unknown or already leaving handles are ignored.
func (m *Manager) Remove(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(h.ID)
	if e == nil || e.n.Status >= StatusLeaving {
		return
	}

	e.n.Status = StatusLeaving
	if e.enter != nil {
		e.enter.Stop()
	}
	if e.dismiss != nil {
		e.dismiss.Stop()
	}
	m.clock.AfterFunc(GracePeriod, func() { m.detach(h) })
	m.publishLocked(Event{Type: EventLeaving, ID: h.ID})
}

// Close is the close-control action: it removes the notification right away,
// bypassing its timer.
func (m *Manager) Close(id string) {
	m.Remove(Handle{ID: id})
}

// Snapshot returns the attached notifications in insertion order.
func (m *Manager) Snapshot() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e.n)
	}
	return out
}

// Get returns the notification with the given ID if it is still attached.
func (m *Manager) Get(id string) (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e := m.findLocked(id); e != nil {
		return e.n, true
	}
	return Notification{}, false
}

// Len returns the number of attached notifications.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Subscribe returns a channel of container changes. Events are dropped for a
// subscriber that falls behind; Snapshot is always authoritative.
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

func (m *Manager) markShown(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.findLocked(h.ID)
	if e == nil || e.n.Status != StatusEntering {
		return
	}
	e.n.Status = StatusShown
	m.publishLocked(Event{Type: EventShown, ID: h.ID})
}

func (m *Manager) detach(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.items {
		if e.n.ID != h.ID {
			continue
		}
		e.n.Status = StatusRemoved
		m.items = append(m.items[:i], m.items[i+1:]...)
		m.publishLocked(Event{Type: EventRemoved, ID: h.ID})
		m.logger.Debug("notification removed", "id", h.ID)
		return
	}
}

func (m *Manager) findLocked(id string) *entry {
	for _, e := range m.items {
		if e.n.ID == id {
			return e
		}
	}
	return nil
}

func (m *Manager) publishLocked(ev Event) {
	for _, ch := range m.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func newID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		// crypto/rand does not fail on supported platforms
		return ulid.Make().String()
	}
	return id.String()
}
