package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/autowriter/internal/clock"
	"github.com/riordanpawley/autowriter/internal/config"
	"github.com/riordanpawley/autowriter/internal/domain"
	"github.com/riordanpawley/autowriter/internal/flash"
	"github.com/riordanpawley/autowriter/internal/modal"
	"github.com/riordanpawley/autowriter/internal/notify"
	"github.com/riordanpawley/autowriter/internal/types"
	"github.com/riordanpawley/autowriter/internal/ui/overlay"
)

var start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Helper to create a test model on a fake clock with the sample library
func newTestModel(t *testing.T, opts ...Option) (Model, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(start)
	opts = append([]Option{
		WithClock(clk),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)

	m := New(config.DefaultConfig(), opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), clk
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	ctrlU    = tea.KeyMsg{Type: tea.KeyCtrlU}
)

// resolve feeds the settled answer of the open dialog back into the model,
// the way awaitCmd would.
func resolve(t *testing.T, m Model) Model {
	t.Helper()
	require.NotNil(t, m.dialog)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	res, err := m.dialog.Request().Await(ctx)
	require.NoError(t, err)

	updated, _ := m.Update(dialogResultMsg{action: m.action, result: res})
	return updated.(Model)
}

func newest(t *testing.T, m Model) notify.Notification {
	t.Helper()
	snap := m.notifier.Snapshot()
	require.NotEmpty(t, snap)
	return snap[len(snap)-1]
}

func TestNew_Defaults(t *testing.T) {
	m := New(nil)

	assert.Len(t, m.content, 4)
	assert.Equal(t, "en", m.translator.Language())
	assert.Equal(t, notify.DefaultDuration, m.notifier.DefaultDuration())
	assert.Equal(t, types.ModeNormal, m.Mode())
	assert.NotNil(t, m.Init())
}

func TestNew_ConfigDuration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.DefaultDurationMs = 0

	m := New(cfg, WithClock(clock.NewFake(start)))
	assert.Zero(t, m.Notifier().DefaultDuration())

	h := m.Notifier().Success("kept", "")
	n, ok := m.Notifier().Get(h.ID)
	require.True(t, ok)
	assert.True(t, n.Persistent())
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor, "clamped at top")

	m = press(t, m, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 3, m.cursor)

	m = press(t, m, runes("j"))
	assert.Equal(t, 3, m.cursor, "clamped at bottom")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.cursor)
}

func TestDeleteFlow_Confirmed(t *testing.T) {
	m, clk := newTestModel(t)
	m = press(t, m, runes("j"))
	target := m.content[1].ID

	m = press(t, m, runes("d"))
	require.NotNil(t, m.dialog)
	assert.Equal(t, types.ModeDialog, m.Mode())

	req := m.dialog.Request()
	assert.Equal(t, "Delete Content", req.Options().Title)
	assert.True(t, req.Options().Danger)
	assert.Equal(t, "Delete", req.ConfirmLabel())
	assert.Same(t, req, m.modals.Current())

	m = press(t, m, enter)
	assert.Equal(t, types.ModeNormal, m.Mode(), "leaving dialog no longer owns input")
	m = resolve(t, m)

	assert.Len(t, m.content, 3)
	assert.Equal(t, -1, m.content.Index(target))

	toast := newest(t, m)
	assert.Equal(t, "Content deleted successfully!", toast.Message)
	assert.Equal(t, types.LevelSuccess, toast.Level)

	// Exit transition finishes, then the toast auto-dismisses
	updated, _ := m.Update(overlay.CloseOverlayMsg{ID: req.ID()})
	m = updated.(Model)
	assert.Nil(t, m.dialog)

	clk.Advance(notify.DefaultDuration + notify.GracePeriod)
	assert.Zero(t, m.notifier.Len())
}

func TestDeleteFlow_Declined(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"escape", esc},
		{"no key", runes("n")},
		{"click outside", tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m = press(t, m, runes("d"))

			updated, _ := m.Update(tt.msg)
			m = resolve(t, updated.(Model))

			assert.Len(t, m.content, 4)
			assert.Equal(t, "Deletion cancelled", newest(t, m).Message)
		})
	}
}

func TestDeleteFlow_LastItemMovesCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("j"), runes("j"), runes("j"))

	m = press(t, m, runes("d"), runes("y"))
	m = resolve(t, m)

	assert.Len(t, m.content, 3)
	assert.Equal(t, 2, m.cursor)
}

func TestDeleteFlow_EmptyLibrary(t *testing.T) {
	m, _ := newTestModel(t, WithLibrary(domain.Library{}))

	m = press(t, m, runes("d"))
	assert.Nil(t, m.dialog)
	assert.Equal(t, types.LevelWarning, newest(t, m).Level)
	assert.Equal(t, "No content selected", newest(t, m).Message)

	m = press(t, m, runes("r"))
	assert.Nil(t, m.dialog)
}

func TestRenameFlow_RequiredTitle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("r"))
	require.NotNil(t, m.dialog)
	req := m.dialog.Request()
	assert.Equal(t, "Monsoon Markets of Yangon", req.Input(), "prefilled with the current title")
	assert.True(t, req.Options().Required)

	// Move focus away and back to land in the input
	m = press(t, m, tab, shiftTab)
	assert.Equal(t, types.ModeInput, m.Mode())

	// Clear and submit: the dialog stays open with an inline error
	m = press(t, m, ctrlU, enter)
	assert.Equal(t, modal.StateShown, req.State())
	assert.Equal(t, "Please enter content title", req.ErrorText())

	m = press(t, m, runes("Night Markets"), enter)
	m = resolve(t, m)

	assert.Equal(t, "Night Markets", m.content[0].Title)
	assert.Equal(t, start, m.content[0].UpdatedAt)
	assert.Equal(t, "Content updated successfully!", newest(t, m).Message)
}

func TestRenameFlow_Cancelled(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("r"), esc)
	m = resolve(t, m)

	assert.Equal(t, "Monsoon Markets of Yangon", m.content[0].Title)
	assert.Zero(t, m.notifier.Len())
}

func TestAboutAlert(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("?"))
	require.NotNil(t, m.dialog)
	req := m.dialog.Request()
	assert.Equal(t, modal.KindAlert, req.Kind())
	assert.False(t, req.Options().ShowCancel())

	m = press(t, m, enter)
	m = resolve(t, m)
	assert.Zero(t, m.notifier.Len())
}

func TestLanguageToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("l"))
	assert.Equal(t, "my", m.translator.Language())
	assert.Contains(t, newest(t, m).Message, ": my")

	m = press(t, m, runes("d"))
	req := m.dialog.Request()
	assert.Equal(t, m.translator.T("Cancel"), req.CancelLabel())
	assert.NotEqual(t, "Cancel", req.CancelLabel())
	assert.NotEqual(t, "Delete Content", req.Options().Title)

	m = press(t, m, esc)
	m = press(t, m, runes("l"))
	assert.Equal(t, "en", m.translator.Language())
}

func TestTestToastsCycleLevels(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("t"), runes("t"), runes("t"), runes("t"), runes("t"))

	var levels []types.Level
	for _, n := range m.notifier.Snapshot() {
		levels = append(levels, n.Level)
	}
	assert.Equal(t, []types.Level{
		types.LevelSuccess,
		types.LevelInfo,
		types.LevelWarning,
		types.LevelError,
		types.LevelSuccess,
	}, levels)
}

func TestCloseNewestToast(t *testing.T) {
	m, clk := newTestModel(t)
	m = press(t, m, runes("t"), runes("t"))
	first := m.notifier.Snapshot()[0].ID

	m = press(t, m, runes("c"))
	assert.Equal(t, notify.StatusLeaving, newest(t, m).Status)

	// A second close skips the toast that is already leaving
	m = press(t, m, runes("c"))
	n, ok := m.notifier.Get(first)
	require.True(t, ok)
	assert.Equal(t, notify.StatusLeaving, n.Status)

	clk.Advance(notify.GracePeriod)
	assert.Zero(t, m.notifier.Len())
}

func TestCloseOverlayMsg_StaleIDIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("d"))
	id := m.dialog.Request().ID()

	updated, _ := m.Update(overlay.CloseOverlayMsg{ID: id + 1})
	assert.NotNil(t, updated.(Model).dialog)
}

func TestDialogResult_SupersededIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(dialogResultMsg{
		action: action{kind: actionDelete, contentID: "c-1"},
		err:    modal.ErrSuperseded,
	})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Len(t, m.content, 4)
	assert.Zero(t, m.notifier.Len())
}

func TestDialogResult_SupersessionEndToEnd(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("d"))
	first := m.dialog.Request()

	// A second dialog opened programmatically replaces the first
	m.modals.Alert("replaced", "", types.LevelInfo)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := first.Await(ctx)
	require.ErrorIs(t, err, modal.ErrSuperseded)
	require.ErrorIs(t, err, domain.ErrSuperseded)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// ctrl+c quits even with a dialog open
	m = press(t, m, runes("d"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQWhileTypingDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("r"), tab, shiftTab)

	m = press(t, m, runes("q"))
	assert.NotNil(t, m.dialog)
	assert.Equal(t, "Monsoon Markets of Yangonq", m.dialog.Request().Input())
}

func TestFlashDeliveredOnStartup(t *testing.T) {
	msgs := []flash.Message{
		{Category: "success", Text: "Content saved successfully!"},
		{Category: "error", Text: "Invalid password"},
	}
	m, clk := newTestModel(t, WithFlash(msgs))

	m.deliverFlashCmd()()
	assert.Equal(t, 1, m.notifier.Len())

	clk.Advance(flash.Stagger)
	require.Equal(t, 2, m.notifier.Len())
	assert.Equal(t, types.LevelError, newest(t, m).Level)
}

func TestNotifyMsgRelistens(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(notifyMsg{Type: notify.EventAdded, ID: "x"})
	assert.NotNil(t, cmd)
}

func TestListen(t *testing.T) {
	events := make(chan notify.Event, 1)
	events <- notify.Event{Type: notify.EventShown, ID: "a"}

	assert.Equal(t, notifyMsg{Type: notify.EventShown, ID: "a"}, listen(events)())

	close(events)
	assert.Nil(t, listen(events)())
}

func TestWindowResizeReachesDialog(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("d"))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = updated.(Model)
	assert.Equal(t, overlay.RegionOutside, m.dialog.HitTest(0, 0))
	assert.Equal(t, 60, m.width)
}
