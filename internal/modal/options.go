package modal

import "github.com/riordanpawley/autowriter/internal/types"

// Icon is the glyph shown beside a dialog title.
type Icon int

const (
	IconNone Icon = iota
	IconSuccess
	IconError
	IconWarning
	IconQuestion
)

// String returns the string representation of Icon.
func (i Icon) String() string {
	switch i {
	case IconSuccess:
		return "success"
	case IconError:
		return "error"
	case IconWarning:
		return "warning"
	case IconQuestion:
		return "question"
	default:
		return "none"
	}
}

// IconForLevel maps an alert level to its icon. Info alerts carry no icon.
func IconForLevel(level types.Level) Icon {
	switch level {
	case types.LevelSuccess:
		return IconSuccess
	case types.LevelError:
		return IconError
	case types.LevelWarning:
		return IconWarning
	default:
		return IconNone
	}
}

// Kind is the dialog flavour derived from its options.
type Kind int

const (
	KindConfirm Kind = iota
	KindAlert
	KindPrompt
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindAlert:
		return "alert"
	case KindPrompt:
		return "prompt"
	default:
		return "confirm"
	}
}

// Options describes a dialog. The zero value is a confirm dialog with both
// buttons and default labels.
type Options struct {
	Title       string
	Message     string
	Icon        Icon
	Danger      bool // confirm button uses the danger style
	HideCancel  bool
	ConfirmText string // empty = translated "OK"
	CancelText  string // empty = translated "Cancel"

	Input        bool
	DefaultValue string
	Placeholder  string
	Required     bool
}

// Kind reports which flavour of dialog the options describe.
func (o Options) Kind() Kind {
	switch {
	case o.Input:
		return KindPrompt
	case o.HideCancel:
		return KindAlert
	default:
		return KindConfirm
	}
}

// ShowCancel reports whether a cancel control is rendered.
func (o Options) ShowCancel() bool {
	return !o.HideCancel
}

func (o Options) normalized() Options {
	if o.Title == "" {
		o.Title = "Confirm"
	}
	if !o.Input {
		o.Required = false
	}
	return o
}

// Option adjusts the options built by Confirm and Prompt.
type Option func(*Options)

// WithDanger renders the confirm button with the danger style.
func WithDanger() Option {
	return func(o *Options) {
		o.Danger = true
	}
}

// WithConfirmText overrides the confirm button label.
func WithConfirmText(text string) Option {
	return func(o *Options) {
		o.ConfirmText = text
	}
}

// WithCancelText overrides the cancel button label.
func WithCancelText(text string) Option {
	return func(o *Options) {
		o.CancelText = text
	}
}

// WithIcon overrides the title icon.
func WithIcon(icon Icon) Option {
	return func(o *Options) {
		o.Icon = icon
	}
}

// WithoutCancel hides the cancel control.
func WithoutCancel() Option {
	return func(o *Options) {
		o.HideCancel = true
	}
}

// WithRequired rejects blank prompt input with an inline error.
func WithRequired() Option {
	return func(o *Options) {
		o.Required = true
	}
}
