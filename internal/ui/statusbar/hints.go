package statusbar

import "github.com/riordanpawley/autowriter/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "j/k: move  d: delete  r: rename  t: toasts  l: language  ?: help  q: quit"
	case types.ModeDialog:
		return "Enter: confirm  Tab: next  y/n: yes/no  Esc: close"
	case types.ModeInput:
		return "Type to edit  Enter: submit  Tab: buttons  Esc: cancel"
	default:
		return ""
	}
}
