package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/autowriter/internal/types"
	"github.com/riordanpawley/autowriter/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	info   string
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo returns a copy that shows info right-aligned.
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)

	var content string
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	} else {
		content = modeBadge
	}

	if sb.info != "" {
		info := sb.styles.StatusInfo.Render(sb.info)
		// Drop the info segment rather than wrap on narrow terminals
		if gap := sb.width - lipgloss.Width(content) - lipgloss.Width(info); gap > 0 {
			content += lipgloss.NewStyle().Width(gap).Render("") + info
		}
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
