// Package types contains shared types used across the application.
package types

// Mode represents what currently owns keyboard input
type Mode int

const (
	ModeNormal Mode = iota
	ModeDialog
	ModeInput
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeDialog:
		return "DIALOG"
	case ModeInput:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}
