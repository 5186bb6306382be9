// Package modal owns the single dialog slot: confirm, alert and prompt
// dialogs whose outcome the caller awaits.
//
// Opening a dialog while another is active tears the old one down and rejects
// it with ErrSuperseded, so callers can tell "declined" from "replaced".
// Dismissal paths are intents on an explicit state machine (see state.go).
package modal

import (
	"log/slog"
	"sync"
	"time"

	"github.com/riordanpawley/autowriter/internal/domain"
	"github.com/riordanpawley/autowriter/internal/types"
)

const (
	// EnterDelay is the pause before the open transition starts.
	EnterDelay = 100 * time.Millisecond
	// FocusDelay is when the prompt input receives focus after opening.
	FocusDelay = 400 * time.Millisecond
	// GracePeriod is the exit transition length before a dialog is detached.
	GracePeriod = 300 * time.Millisecond
)

// ErrSuperseded is returned by Await when a newer dialog replaced this one.
var ErrSuperseded = domain.ErrSuperseded

// Manager holds the one active dialog.
type Manager struct {
	mu        sync.Mutex
	current   *Request
	seq       uint64
	translate func(string) string
	logger    *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTranslator supplies the localization lookup for default labels and
// the validation message. Without one, English literals are used.
func WithTranslator(translate func(key string) string) ManagerOption {
	return func(m *Manager) {
		if translate != nil {
			m.translate = translate
		}
	}
}

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates the dialog manager.
func New(opts ...ManagerOption) *Manager {
	m := &Manager{
		translate: func(key string) string { return key },
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Show opens a dialog, superseding any active one.
func (m *Manager) Show(opts Options) *Request {
	opts = opts.normalized()

	m.mu.Lock()
	m.seq++
	r := newRequest(m, m.seq, opts)
	prev := m.current
	m.current = r
	m.mu.Unlock()

	if prev != nil && prev.supersede() {
		m.logger.Debug("modal superseded", "id", prev.id, "by", r.id)
	}
	r.open()

	m.logger.Debug("modal shown", "id", r.id, "kind", opts.Kind().String())
	return r
}

// Confirm opens a yes/cancel dialog.
func (m *Manager) Confirm(message, title string, opts ...Option) *Request {
	if title == "" {
		title = "Confirm"
	}
	o := Options{
		Title:       title,
		Message:     message,
		Icon:        IconQuestion,
		ConfirmText: m.translate("Yes"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return m.Show(o)
}

// Alert opens an acknowledgement dialog with no cancel control.
func (m *Manager) Alert(message, title string, level types.Level) *Request {
	if title == "" {
		title = "Alert"
	}
	return m.Show(Options{
		Title:       title,
		Message:     message,
		Icon:        IconForLevel(level),
		HideCancel:  true,
		ConfirmText: m.translate("OK"),
	})
}

// Prompt opens a dialog with a text input pre-filled with defaultValue.
func (m *Manager) Prompt(message, title, defaultValue, placeholder string, opts ...Option) *Request {
	if title == "" {
		title = "Input"
	}
	o := Options{
		Title:        title,
		Message:      message,
		Icon:         IconQuestion,
		Input:        true,
		DefaultValue: defaultValue,
		Placeholder:  placeholder,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return m.Show(o)
}

// Close tears down the active dialog, rejecting it with ErrSuperseded.
func (m *Manager) Close() {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.mu.Unlock()

	if prev != nil && prev.supersede() {
		m.logger.Debug("modal closed", "id", prev.id)
	}
}

// Current returns the active dialog, or nil.
func (m *Manager) Current() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Translate exposes the configured lookup to renderers.
func (m *Manager) Translate(key string) string {
	return m.translate(key)
}

func (m *Manager) release(r *Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == r {
		m.current = nil
	}
}
