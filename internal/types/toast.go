package types

import "strings"

// Level indicates the category of a toast or alert
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// ParseLevel maps a category name to a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return LevelSuccess
	case "warning", "warn":
		return LevelWarning
	case "error", "danger":
		return LevelError
	default:
		return LevelInfo
	}
}

// String returns the category name
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Icon returns the glyph drawn next to a toast of this level
func (l Level) Icon() string {
	switch l {
	case LevelSuccess:
		return "✓"
	case LevelWarning:
		return "⚠"
	case LevelError:
		return "✗"
	default:
		return "ℹ"
	}
}

// DefaultTitle is the title used by the level's convenience constructor
func (l Level) DefaultTitle() string {
	switch l {
	case LevelSuccess:
		return "Success"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	default:
		return "Info"
	}
}
