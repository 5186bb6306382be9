package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/autowriter/internal/types"
)

// Styles holds all the UI styles
type Styles struct {
	// Content list
	App          lipgloss.Style
	Header       lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemMeta     lipgloss.Style
	Empty        lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Dialogs
	Dialog        lipgloss.Style
	DialogTitle   lipgloss.Style
	DialogMessage lipgloss.Style
	DialogClose   lipgloss.Style
	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style
	ButtonDanger  lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	InputInvalid  lipgloss.Style
	ErrorText     lipgloss.Style
	Leaving       lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
	ToastTitle   lipgloss.Style
	ToastMeta    lipgloss.Style
	ToastLeaving lipgloss.Style

	// Icon returns the style for a dialog icon name
	Icon func(name string) lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}
	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1)

	return &Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			MarginBottom(1),

		Item: lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2),

		ItemSelected: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true).
			PaddingLeft(2),

		ItemMeta: lipgloss.NewStyle().
			Foreground(Overlay1),

		Empty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true).
			PaddingLeft(2),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		DialogMessage: lipgloss.NewStyle().
			Foreground(Subtext1).
			MarginTop(1),

		DialogClose: lipgloss.NewStyle().
			Foreground(Overlay1),

		Button: button.
			Foreground(Text).
			Background(Surface1),

		ButtonPrimary: button.
			Foreground(Base).
			Background(Blue).
			Bold(true),

		ButtonDanger: button.
			Foreground(Base).
			Background(Red).
			Bold(true),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Surface2).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		InputInvalid: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Red).
			Padding(0, 1),

		ErrorText: lipgloss.NewStyle().
			Foreground(Red),

		Leaving: lipgloss.NewStyle().
			Faint(true),

		ToastInfo:    toast(Blue),
		ToastSuccess: toast(Green),
		ToastWarning: toast(Yellow),
		ToastError:   toast(Red),

		ToastTitle: lipgloss.NewStyle().
			Bold(true),

		ToastMeta: lipgloss.NewStyle().
			Foreground(Overlay0),

		ToastLeaving: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Foreground(Overlay0).
			Faint(true).
			Padding(0, 1),

		Icon: func(name string) lipgloss.Style {
			color, ok := IconColors[name]
			if !ok {
				color = Text
			}
			return lipgloss.NewStyle().
				Foreground(color).
				Bold(true)
		},
	}
}

// Toast returns the style for a notification level. Unknown levels render
// as info.
func (s *Styles) Toast(level types.Level) lipgloss.Style {
	switch level {
	case types.LevelSuccess:
		return s.ToastSuccess
	case types.LevelWarning:
		return s.ToastWarning
	case types.LevelError:
		return s.ToastError
	default:
		return s.ToastInfo
	}
}

// LevelColor returns the accent color for a notification level.
func (s *Styles) LevelColor(level types.Level) lipgloss.Color {
	if level < 0 || int(level) >= len(LevelColors) {
		return LevelColors[types.LevelInfo]
	}
	return LevelColors[level]
}
