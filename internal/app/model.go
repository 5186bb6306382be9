// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/riordanpawley/autowriter/internal/clock"
	"github.com/riordanpawley/autowriter/internal/config"
	"github.com/riordanpawley/autowriter/internal/domain"
	"github.com/riordanpawley/autowriter/internal/flash"
	"github.com/riordanpawley/autowriter/internal/i18n"
	"github.com/riordanpawley/autowriter/internal/modal"
	"github.com/riordanpawley/autowriter/internal/notify"
	"github.com/riordanpawley/autowriter/internal/types"
	"github.com/riordanpawley/autowriter/internal/ui/overlay"
	"github.com/riordanpawley/autowriter/internal/ui/statusbar"
	"github.com/riordanpawley/autowriter/internal/ui/styles"
	"github.com/riordanpawley/autowriter/internal/ui/toast"
)

const tickInterval = time.Second

// Model is the root TEA model. It owns the content list and wires the
// notification and modal managers into the UI.
type Model struct {
	// Core data
	content domain.Library
	cursor  int

	// Interaction managers
	notifier   *notify.Manager
	events     <-chan notify.Event
	modals     *modal.Manager
	translator *i18n.Translator

	// Open dialog and what its answer is for
	dialog *overlay.DialogView
	action action

	// Rendering
	toasts *toast.ToastRenderer
	styles *styles.Styles
	keys   KeyMap
	help   help.Model

	// Startup flash messages
	flash []flash.Message

	// Index into the test toast cycle
	demo int

	width  int
	height int

	clock  clock.Clock
	config *config.Config
	logger *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock driving toast timers.
func WithClock(clk clock.Clock) Option {
	return func(m *Model) {
		m.clock = clk
	}
}

// WithLogger sets the logger handed to the managers.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithTranslator sets the translator. Without it the built-in catalog is used.
func WithTranslator(t *i18n.Translator) Option {
	return func(m *Model) {
		m.translator = t
	}
}

// WithFlash queues messages to be shown as toasts on startup.
func WithFlash(msgs []flash.Message) Option {
	return func(m *Model) {
		m.flash = msgs
	}
}

// WithLibrary replaces the sample content.
func WithLibrary(lib domain.Library) Option {
	return func(m *Model) {
		m.content = lib
	}
}

// New creates a new application model with the given config
func New(cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := Model{
		config: cfg,
		clock:  clock.Real(),
		logger: slog.Default(),
		styles: styles.New(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.translator == nil {
		m.translator = i18n.NewTranslator(nil, cfg.Language, i18n.WithLogger(m.logger))
	}
	if m.content == nil {
		m.content = domain.SampleLibrary(m.clock.Now())
	}

	m.notifier = notify.New(m.clock,
		notify.WithLogger(m.logger),
		notify.WithDefaultDuration(cfg.DefaultDuration()),
	)
	m.events = m.notifier.Subscribe()
	m.modals = modal.New(
		modal.WithTranslator(m.translator.Func()),
		modal.WithLogger(m.logger),
	)
	m.toasts = toast.New(m.styles, cfg.Notifications.MaxVisible)

	return m
}

// Notifier returns the toast container.
func (m Model) Notifier() *notify.Manager {
	return m.notifier
}

// Modals returns the dialog manager.
func (m Model) Modals() *modal.Manager {
	return m.modals
}

// Translator returns the active translator.
func (m Model) Translator() *i18n.Translator {
	return m.translator
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listen(m.events),
		tickEvery(tickInterval),
	}
	if len(m.flash) > 0 {
		cmds = append(cmds, m.deliverFlashCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.dialog != nil {
			m.dialog.SetScreenSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialogActive() {
			return m.updateDialog(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.dialogActive() {
			return m.updateDialog(msg)
		}
		return m, nil

	case overlay.CloseOverlayMsg:
		if m.dialog != nil && m.dialog.Request().ID() == msg.ID {
			m.dialog = nil
		}
		return m, nil

	case dialogResultMsg:
		return m.handleDialogResult(msg)

	case notifyMsg:
		m.logger.Debug("notification event", "type", msg.Type.String(), "id", msg.ID)
		return m, listen(m.events)

	case tickMsg:
		// Repaint so expiry hints stay current
		return m, tickEvery(tickInterval)
	}

	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.dialog.Update(msg)
	return m, cmd
}

// dialogActive reports whether a dialog is open and still taking input. A
// dialog playing its exit transition no longer blocks the main screen.
func (m Model) dialogActive() bool {
	return m.dialog != nil && !m.dialog.Leaving()
}

// Mode reports what currently owns keyboard input.
func (m Model) Mode() types.Mode {
	switch {
	case !m.dialogActive():
		return types.ModeNormal
	case m.dialog.InputFocused():
		return types.ModeInput
	default:
		return types.ModeDialog
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.content)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()

	case key.Matches(msg, m.keys.Rename):
		return m.promptRename()

	case key.Matches(msg, m.keys.About):
		req := m.modals.Alert(m.t("Keyboard shortcuts are shown at the bottom of the screen."), m.t("Shortcuts"), types.LevelInfo)
		return m.openDialog(req, action{kind: actionAbout})

	case key.Matches(msg, m.keys.Language):
		lang := m.translator.Next()
		m.logger.Info("language changed", "lang", lang)
		m.notifier.Info(m.t("Language changed")+": "+lang, m.t("Information"))
		return m, nil

	case key.Matches(msg, m.keys.Toasts):
		m.showTestToast()
		return m, nil

	case key.Matches(msg, m.keys.CloseToast):
		m.closeNewestToast()
		return m, nil
	}

	return m, nil
}

func (m Model) selected() (domain.Content, bool) {
	if m.cursor < 0 || m.cursor >= len(m.content) {
		return domain.Content{}, false
	}
	return m.content[m.cursor], true
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		m.notifier.Warning(m.t("No content selected"), m.t("Warning"))
		return m, nil
	}

	req := m.modals.Confirm(
		m.t("Are you sure you want to delete this content? This action cannot be undone."),
		m.t("Delete Content"),
		modal.WithDanger(),
		modal.WithConfirmText(m.t("Delete")),
	)
	return m.openDialog(req, action{kind: actionDelete, contentID: c.ID})
}

func (m Model) promptRename() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		m.notifier.Warning(m.t("No content selected"), m.t("Warning"))
		return m, nil
	}

	req := m.modals.Prompt(
		m.t("New title for this content"),
		m.t("Rename Content"),
		c.Title,
		m.t("Enter content title"),
		modal.WithRequired(),
		modal.WithConfirmText(m.t("Rename")),
	)
	return m.openDialog(req, action{kind: actionRename, contentID: c.ID})
}

// openDialog shows req and waits for its answer in the background.
func (m Model) openDialog(req *modal.Request, a action) (tea.Model, tea.Cmd) {
	view := overlay.NewDialogView(req, m.styles)
	view.SetScreenSize(m.width, m.height)

	m.dialog = view
	m.action = a
	return m, tea.Batch(view.Init(), awaitCmd(req, a))
}

func (m Model) handleDialogResult(msg dialogResultMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, modal.ErrSuperseded) {
		m.logger.Debug("dialog replaced", "action", msg.action.kind.String())
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("dialog wait failed", "action", msg.action.kind.String(), "error", msg.err)
		return m, nil
	}

	switch msg.action.kind {
	case actionDelete:
		if !msg.result.Confirmed {
			m.notifier.Info(m.t("Deletion cancelled"), m.t("Information"))
			return m, nil
		}
		m.content = m.content.Remove(msg.action.contentID)
		m.cursor = min(m.cursor, max(len(m.content)-1, 0))
		m.notifier.Success(m.t("Content deleted successfully!"), m.t("Success"))
		m.logger.Info("content deleted", "id", msg.action.contentID)

	case actionRename:
		if !msg.result.Confirmed {
			return m, nil
		}
		i := m.content.Index(msg.action.contentID)
		if i < 0 {
			return m, nil
		}
		renamed, err := m.content[i].Rename(msg.result.Value, m.clock.Now())
		if err != nil {
			m.notifier.Error(err.Error(), m.t("Error"))
			return m, nil
		}
		m.content = m.content.Replace(renamed)
		m.notifier.Success(m.t("Content updated successfully!"), m.t("Success"))
		m.logger.Info("content renamed", "id", renamed.ID, "title", renamed.Title)
	}

	return m, nil
}

type testToast struct {
	level types.Level
	key   string
}

var testToasts = []testToast{
	{types.LevelSuccess, "Content saved successfully!"},
	{types.LevelInfo, "Keyboard shortcuts are shown at the bottom of the screen."},
	{types.LevelWarning, "Deletion cancelled"},
	{types.LevelError, "No content selected"},
}

// showTestToast cycles through one toast per level.
func (m *Model) showTestToast() {
	tt := testToasts[m.demo%len(testToasts)]
	m.demo++

	msg := m.t(tt.key)
	switch tt.level {
	case types.LevelSuccess:
		m.notifier.Success(msg, m.t("Success"))
	case types.LevelWarning:
		m.notifier.Warning(msg, m.t("Warning"))
	case types.LevelError:
		m.notifier.Error(msg, m.t("Error"))
	default:
		m.notifier.Info(msg, m.t("Information"))
	}
}

// closeNewestToast starts the exit of the most recent toast that is not
// already leaving.
func (m *Model) closeNewestToast() {
	toasts := m.notifier.Snapshot()
	for i := len(toasts) - 1; i >= 0; i-- {
		if toasts[i].Status == notify.StatusLeaving {
			continue
		}
		m.notifier.Close(toasts[i].ID)
		return
	}
}

func (m Model) t(key string) string {
	return m.translator.T(key)
}

// View renders the model
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	now := m.clock.Now()

	m.help.Width = m.width
	footer := lipgloss.JoinVertical(lipgloss.Left,
		m.help.View(m.keys),
		m.statusBar().Render(),
	)
	remaining := m.height - lipgloss.Height(footer)

	var toastView string
	if rendered := m.toasts.Render(m.notifier.Snapshot(), now, m.width); rendered != "" {
		toastView = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, rendered)
		remaining -= lipgloss.Height(toastView)
	}

	var sections []string
	if remaining > 0 {
		sections = append(sections, m.renderContent(remaining, now))
	}
	if toastView != "" {
		sections = append(sections, toastView)
	}
	sections = append(sections, footer)

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.dialog != nil {
		view = overlayLines(view, m.dialog.View(), m.height)
	}
	return view
}

func (m Model) statusBar() statusbar.StatusBar {
	info := fmt.Sprintf("%s · %d", m.translator.Language(), m.notifier.Len())
	return statusbar.New(m.Mode(), m.width, m.styles).WithInfo(info)
}

// renderContent renders the header and content list into exactly height lines.
func (m Model) renderContent(height int, now time.Time) string {
	lines := []string{m.styles.Header.Render("autowriter")}

	if len(m.content) == 0 {
		lines = append(lines, m.styles.Empty.Render(m.t("No content selected")))
	}
	for i, c := range m.content {
		style := m.styles.Item
		marker := "  "
		if i == m.cursor {
			style = m.styles.ItemSelected
			marker = "▸ "
		}
		meta := fmt.Sprintf("%s · %s words · updated %s",
			c.Status,
			humanize.Comma(int64(c.Words)),
			humanize.RelTime(c.UpdatedAt, now, "ago", "from now"),
		)
		line := style.Render(marker+"["+c.Kind.Short()+"] "+c.Title) + "  " + m.styles.ItemMeta.Render(meta)
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// overlayLines draws the non-blank rows of top over base. Both are laid out
// from the top-left of the screen so dialog hit testing stays aligned.
func overlayLines(base, top string, height int) string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range strings.Split(top, "\n") {
		if i >= len(lines) {
			break
		}
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

// Message types

type actionKind int

const (
	actionAbout actionKind = iota
	actionDelete
	actionRename
)

func (k actionKind) String() string {
	switch k {
	case actionDelete:
		return "delete"
	case actionRename:
		return "rename"
	default:
		return "about"
	}
}

// action is what an open dialog's answer will be applied to.
type action struct {
	kind      actionKind
	contentID string
}

type dialogResultMsg struct {
	action action
	result modal.Result
	err    error
}

type notifyMsg notify.Event

type tickMsg time.Time

// Commands

// awaitCmd blocks until req settles.
func awaitCmd(req *modal.Request, a action) tea.Cmd {
	return func() tea.Msg {
		res, err := req.Await(context.Background())
		return dialogResultMsg{action: a, result: res, err: err}
	}
}

// listen blocks for the next container change so the view repaints.
func listen(events <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return notifyMsg(ev)
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) deliverFlashCmd() tea.Cmd {
	notifier, clk, msgs := m.notifier, m.clock, m.flash
	logger := m.logger
	return func() tea.Msg {
		flash.Deliver(notifier, clk, msgs)
		logger.Debug("flash messages delivered", "count", len(msgs))
		return nil
	}
}
