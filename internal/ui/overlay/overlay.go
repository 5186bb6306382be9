package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay has finished its exit
// transition and should be dropped.
type CloseOverlayMsg struct {
	ID uint64
}

// enteredMsg ends the open transition of dialog ID.
type enteredMsg struct{ id uint64 }

// focusMsg moves focus into the input of dialog ID.
type focusMsg struct{ id uint64 }

// exitedMsg ends the exit transition of dialog ID.
type exitedMsg struct{ id uint64 }

var _ Overlay = (*DialogView)(nil)
