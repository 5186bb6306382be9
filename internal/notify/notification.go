package notify

import (
	"time"

	"github.com/riordanpawley/autowriter/internal/types"
)

// Status represents where a notification is in its display lifecycle.
type Status int

const (
	// StatusEntering means the notification is attached but not yet shown.
	StatusEntering Status = iota
	// StatusShown means the notification is fully visible.
	StatusShown
	// StatusLeaving means the exit transition is playing.
	StatusLeaving
	// StatusRemoved means the notification has been detached.
	StatusRemoved
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusEntering:
		return "entering"
	case StatusShown:
		return "shown"
	case StatusLeaving:
		return "leaving"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Notification is one toast as seen by a renderer.
type Notification struct {
	ID        string
	Message   string
	Level     types.Level
	Title     string
	Duration  time.Duration // 0 = stays until closed
	CreatedAt time.Time
	ExpiresAt time.Time // zero when Duration is 0
	Status    Status
}

// Persistent reports whether the notification waits for a manual close.
func (n Notification) Persistent() bool {
	return n.Duration <= 0
}

// Handle identifies a notification returned by Show.
type Handle struct {
	ID string
}

// EventType identifies a container change.
type EventType int

const (
	EventAdded EventType = iota
	EventShown
	EventLeaving
	EventRemoved
)

// String returns the string representation of EventType.
func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventShown:
		return "shown"
	case EventLeaving:
		return "leaving"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports a change to a single notification.
type Event struct {
	Type EventType
	ID   string
}
