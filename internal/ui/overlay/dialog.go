package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/autowriter/internal/modal"
	"github.com/riordanpawley/autowriter/internal/ui/styles"
)

const (
	maxDialogWidth = 56
	minDialogWidth = 24
)

// Region is the part of the screen a mouse event landed on.
type Region int

const (
	RegionOutside Region = iota
	RegionBody
	RegionClose
	RegionConfirm
	RegionCancel
	RegionInput
)

// String returns the string representation of Region.
func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionClose:
		return "close"
	case RegionConfirm:
		return "confirm"
	case RegionCancel:
		return "cancel"
	case RegionInput:
		return "input"
	default:
		return "outside"
	}
}

type phase int

const (
	phaseEntering phase = iota
	phaseOpen
	phaseLeaving
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusConfirm
	focusCancel
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// DialogView renders a modal.Request and turns keys and clicks into its
// intents. It plays the enter and exit transitions with tea.Tick and emits
// CloseOverlayMsg once the exit has finished.
type DialogView struct {
	req    *modal.Request
	styles *styles.Styles
	keys   KeyMap
	input  textinput.Model
	focus  focusTarget
	phase  phase

	screenW, screenH int
}

// NewDialogView creates the view for req.
func NewDialogView(req *modal.Request, s *styles.Styles) *DialogView {
	opts := req.Options()

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 200
	ti.Width = maxDialogWidth - 4
	ti.SetValue(req.Input())

	d := &DialogView{
		req:    req,
		styles: s,
		keys:   DefaultKeyMap(),
		input:  ti,
		focus:  focusConfirm,
	}
	if opts.Input {
		d.focus = focusInput
	}
	return d
}

// Request returns the dialog being rendered.
func (d *DialogView) Request() *modal.Request {
	return d.req
}

// Leaving reports whether the exit transition is playing.
func (d *DialogView) Leaving() bool {
	return d.phase == phaseLeaving
}

// Entering reports whether the open transition is still playing.
func (d *DialogView) Entering() bool {
	return d.phase == phaseEntering
}

// InputFocused reports whether keystrokes are going to the text input.
func (d *DialogView) InputFocused() bool {
	return d.input.Focused()
}

// SetScreenSize records the terminal size used for layout and hit testing.
func (d *DialogView) SetScreenSize(width, height int) {
	d.screenW = width
	d.screenH = height
	d.input.Width = d.contentWidth() - 4
}

// Init starts the open transition and, for prompts, the delayed focus.
func (d *DialogView) Init() tea.Cmd {
	id := d.req.ID()
	cmds := []tea.Cmd{
		tea.Tick(modal.EnterDelay, func(time.Time) tea.Msg { return enteredMsg{id: id} }),
	}
	if d.req.Options().Input {
		cmds = append(cmds, tea.Tick(modal.FocusDelay, func(time.Time) tea.Msg { return focusMsg{id: id} }))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (d *DialogView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetScreenSize(msg.Width, msg.Height)
		return d, nil

	case enteredMsg:
		if msg.id == d.req.ID() && d.phase == phaseEntering {
			d.phase = phaseOpen
		}
		return d, nil

	case focusMsg:
		if msg.id != d.req.ID() || d.phase == phaseLeaving {
			return d, nil
		}
		return d, d.focusInput()

	case exitedMsg:
		if msg.id != d.req.ID() {
			return d, nil
		}
		id := d.req.ID()
		return d, func() tea.Msg { return CloseOverlayMsg{ID: id} }

	case tea.KeyMsg:
		if d.phase == phaseLeaving {
			return d, nil
		}
		return d.handleKey(msg)

	case tea.MouseMsg:
		if d.phase == phaseLeaving {
			return d, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return d, nil
		}
		return d.handleClick(d.HitTest(msg.X, msg.Y))
	}

	return d, nil
}

func (d *DialogView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := d.req.Options()

	switch {
	case key.Matches(msg, d.keys.Close):
		return d, d.settle(d.req.CloseIcon())

	case key.Matches(msg, d.keys.Submit):
		if d.focus == focusCancel {
			return d, d.settle(d.req.Cancel())
		}
		return d, d.confirm()

	case key.Matches(msg, d.keys.Next):
		return d, d.cycle(1)

	case key.Matches(msg, d.keys.Prev):
		return d, d.cycle(-1)
	}

	if d.focus != focusInput {
		switch {
		case msg.Type == tea.KeyRight:
			return d, d.cycle(1)
		case msg.Type == tea.KeyLeft:
			return d, d.cycle(-1)
		case key.Matches(msg, d.keys.Yes):
			return d, d.confirm()
		case key.Matches(msg, d.keys.No) && opts.ShowCancel():
			return d, d.settle(d.req.Cancel())
		}
		return d, nil
	}

	if !opts.Input || !d.input.Focused() {
		return d, nil
	}

	prev := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if v := d.input.Value(); v != prev {
		d.req.SetInput(v)
	}
	return d, cmd
}

func (d *DialogView) handleClick(region Region) (tea.Model, tea.Cmd) {
	switch region {
	case RegionOutside:
		return d, d.settle(d.req.ClickOutside())
	case RegionClose:
		return d, d.settle(d.req.CloseIcon())
	case RegionConfirm:
		return d, d.confirm()
	case RegionCancel:
		return d, d.settle(d.req.Cancel())
	case RegionInput:
		return d, d.focusInput()
	}
	return d, nil
}

// confirm submits the dialog. A rejected required prompt moves focus back
// to the input so the user can correct it.
func (d *DialogView) confirm() tea.Cmd {
	if d.req.Confirm() {
		return d.Leave()
	}
	if d.req.Options().Input {
		return d.focusInput()
	}
	return nil
}

func (d *DialogView) settle(resolved bool) tea.Cmd {
	if !resolved {
		return nil
	}
	return d.Leave()
}

// Leave starts the exit transition. It is safe to call more than once.
func (d *DialogView) Leave() tea.Cmd {
	if d.phase == phaseLeaving {
		return nil
	}
	d.phase = phaseLeaving
	d.input.Blur()

	id := d.req.ID()
	return tea.Tick(modal.GracePeriod, func(time.Time) tea.Msg { return exitedMsg{id: id} })
}

func (d *DialogView) focusInput() tea.Cmd {
	if !d.req.Options().Input {
		return nil
	}
	d.req.Focus()
	d.focus = focusInput
	return d.input.Focus()
}

// cycle moves focus through input, confirm and cancel.
func (d *DialogView) cycle(delta int) tea.Cmd {
	opts := d.req.Options()

	targets := make([]focusTarget, 0, 3)
	if opts.Input {
		targets = append(targets, focusInput)
	}
	targets = append(targets, focusConfirm)
	if opts.ShowCancel() {
		targets = append(targets, focusCancel)
	}

	idx := 0
	for i, t := range targets {
		if t == d.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(targets)) % len(targets)
	d.focus = targets[idx]

	if d.focus == focusInput {
		return d.focusInput()
	}
	d.input.Blur()
	return nil
}

// Title returns the dialog title
func (d *DialogView) Title() string {
	return d.req.Options().Title
}

// Size returns the outer dialog dimensions
func (d *DialogView) Size() (width, height int) {
	box := d.renderBox()
	return lipgloss.Width(box.view), lipgloss.Height(box.view)
}

// View renders the dialog centered on the screen. Before the screen size is
// known it renders the bare box.
func (d *DialogView) View() string {
	box := d.renderBox()
	if d.screenW == 0 || d.screenH == 0 {
		return box.view
	}

	x, y := d.origin(box)
	return strings.Repeat("\n", y) + lipgloss.NewStyle().MarginLeft(x).Render(box.view)
}

// HitTest maps a screen cell to the dialog region under it.
func (d *DialogView) HitTest(x, y int) Region {
	box := d.renderBox()
	ox, oy := d.origin(box)

	outer := rect{ox, oy, lipgloss.Width(box.view), lipgloss.Height(box.view)}
	if !outer.contains(x, y) {
		return RegionOutside
	}

	// Translate to content coordinates
	cx := x - ox - d.styles.Dialog.GetBorderLeftSize() - d.styles.Dialog.GetPaddingLeft()
	cy := y - oy - d.styles.Dialog.GetBorderTopSize() - d.styles.Dialog.GetPaddingTop()

	for _, hit := range []struct {
		r      rect
		region Region
	}{
		{box.close, RegionClose},
		{box.confirm, RegionConfirm},
		{box.cancel, RegionCancel},
		{box.input, RegionInput},
	} {
		if hit.r.contains(cx, cy) {
			return hit.region
		}
	}
	return RegionBody
}

func (d *DialogView) origin(box renderedBox) (x, y int) {
	x = (d.screenW - lipgloss.Width(box.view)) / 2
	y = (d.screenH - lipgloss.Height(box.view)) / 2
	return max(x, 0), max(y, 0)
}

func (d *DialogView) contentWidth() int {
	if d.screenW == 0 {
		return maxDialogWidth
	}
	w := d.screenW - 8
	return min(max(w, minDialogWidth), maxDialogWidth)
}

// renderedBox is the dialog plus the content-relative rectangles of its
// clickable parts.
type renderedBox struct {
	view    string
	close   rect
	confirm rect
	cancel  rect
	input   rect
}

func (d *DialogView) renderBox() renderedBox {
	opts := d.req.Options()
	s := d.styles
	width := d.contentWidth()

	var out renderedBox
	var sections []string
	row := 0

	// Header: icon, title and the close control on the right
	title := s.DialogTitle.Render(opts.Title)
	if glyph := iconGlyph(opts.Icon); glyph != "" {
		title = s.Icon(opts.Icon.String()).Render(glyph) + " " + title
	}
	closeMark := s.DialogClose.Render("×")
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(closeMark), 1)
	header := title + strings.Repeat(" ", gap) + closeMark
	out.close = rect{lipgloss.Width(header) - 2, row, 2, 1}
	sections = append(sections, header)
	row += lipgloss.Height(header)

	if opts.Message != "" {
		msg := s.DialogMessage.Width(width).Render(opts.Message)
		sections = append(sections, msg)
		row += lipgloss.Height(msg)
	}

	if opts.Input {
		inputStyle := s.Input
		switch {
		case d.req.Invalid():
			inputStyle = s.InputInvalid
		case d.input.Focused():
			inputStyle = s.InputFocused
		}
		// Spacer line above the input
		sections = append(sections, "")
		row++

		field := inputStyle.Width(width - inputStyle.GetHorizontalBorderSize()).Render(d.input.View())
		out.input = rect{0, row, lipgloss.Width(field), lipgloss.Height(field)}
		sections = append(sections, field)
		row += lipgloss.Height(field)

		if errText := d.req.ErrorText(); errText != "" {
			line := s.ErrorText.Width(width).Render(errText)
			sections = append(sections, line)
			row += lipgloss.Height(line)
		}
	}

	// Buttons
	sections = append(sections, "")
	row++

	confirmStyle := s.ButtonPrimary
	if opts.Danger {
		confirmStyle = s.ButtonDanger
	}
	if d.focus == focusConfirm {
		confirmStyle = confirmStyle.Underline(true)
	}
	confirmBtn := confirmStyle.Render(d.req.ConfirmLabel())
	out.confirm = rect{0, row, lipgloss.Width(confirmBtn), 1}
	buttons := confirmBtn

	if opts.ShowCancel() {
		cancelStyle := s.Button
		if d.focus == focusCancel {
			cancelStyle = cancelStyle.Underline(true)
		}
		cancelBtn := cancelStyle.Render(d.req.CancelLabel())
		out.cancel = rect{lipgloss.Width(confirmBtn), row, lipgloss.Width(cancelBtn), 1}
		buttons = lipgloss.JoinHorizontal(lipgloss.Top, confirmBtn, cancelBtn)
	}
	sections = append(sections, buttons)

	boxStyle := s.Dialog
	if d.phase != phaseOpen {
		boxStyle = boxStyle.Inherit(s.Leaving)
	}
	out.view = boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return out
}

func iconGlyph(icon modal.Icon) string {
	switch icon {
	case modal.IconSuccess:
		return "✓"
	case modal.IconError:
		return "✗"
	case modal.IconWarning:
		return "⚠"
	case modal.IconQuestion:
		return "?"
	default:
		return ""
	}
}
