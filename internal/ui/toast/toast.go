package toast

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/riordanpawley/autowriter/internal/notify"
	"github.com/riordanpawley/autowriter/internal/ui/styles"
)

const maxToastWidth = 44

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles     *styles.Styles
	maxVisible int
}

// New creates a new ToastRenderer with the given styles. maxVisible caps how
// many toasts are drawn at once; 0 draws all of them.
func New(styles *styles.Styles, maxVisible int) *ToastRenderer {
	if maxVisible < 0 {
		maxVisible = 0
	}
	return &ToastRenderer{
		styles:     styles,
		maxVisible: maxVisible,
	}
}

// Visible returns the toasts that fit, newest last. Older toasts beyond the
// cap are dropped from the front and reported as hidden.
func (r *ToastRenderer) Visible(toasts []notify.Notification) (visible []notify.Notification, hidden int) {
	if r.maxVisible == 0 || len(toasts) <= r.maxVisible {
		return toasts, 0
	}
	hidden = len(toasts) - r.maxVisible
	return toasts[hidden:], hidden
}

// Render renders a stack of toasts, right aligned, oldest on top.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []notify.Notification, now time.Time, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	toastWidth := width / 3
	if toastWidth > maxToastWidth {
		toastWidth = maxToastWidth // Cap maximum toast width
	}
	if toastWidth < 20 {
		toastWidth = min(20, width)
	}

	visible, hidden := r.Visible(toasts)

	var rendered []string
	if hidden > 0 {
		rendered = append(rendered, r.styles.ToastMeta.Render(fmt.Sprintf("+%d more", hidden)))
	}
	for _, n := range visible {
		rendered = append(rendered, r.renderOne(n, now, toastWidth))
	}

	// Stack toasts vertically, aligned to the right
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (r *ToastRenderer) renderOne(n notify.Notification, now time.Time, width int) string {
	style := r.styles.Toast(n.Level)
	if n.Status != notify.StatusShown {
		style = r.styles.ToastLeaving
	}

	title := n.Title
	if title == "" {
		title = n.Level.DefaultTitle()
	}
	header := r.styles.ToastTitle.Render(n.Level.Icon() + " " + title)
	closeHint := r.styles.ToastMeta.Render("×")
	gap := width - lipgloss.Width(header) - lipgloss.Width(closeHint) - style.GetHorizontalFrameSize()
	if gap < 1 {
		gap = 1
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, header, lipgloss.NewStyle().Width(gap).Render(""), closeHint)

	body := top + "\n" + n.Message
	if meta := Expiry(n, now); meta != "" {
		body += "\n" + r.styles.ToastMeta.Render(meta)
	}
	return style.Width(width).Render(body)
}

// Expiry describes when a toast goes away, or "" for persistent toasts.
func Expiry(n notify.Notification, now time.Time) string {
	if n.Persistent() {
		return ""
	}
	if n.Status == notify.StatusLeaving {
		return "closing"
	}
	return "closes " + humanize.RelTime(now, n.ExpiresAt, "from now", "ago")
}
