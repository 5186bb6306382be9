package modal

import "fmt"

// State is a dialog's lifecycle state.
type State int

const (
	StateConstructing State = iota
	StateShown
	StateResolving
	StateClosed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateShown:
		return "shown"
	case StateResolving:
		return "resolving"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Intent is a named trigger that moves a dialog between states.
type Intent int

const (
	IntentOpen Intent = iota
	IntentConfirm
	IntentCancel
	IntentClose
	IntentOutsideClick
	IntentSubmitWithError
	IntentSubmitValid
	IntentSupersede
	IntentDetach
)

// String returns the string representation of Intent.
func (i Intent) String() string {
	switch i {
	case IntentOpen:
		return "open"
	case IntentConfirm:
		return "confirm"
	case IntentCancel:
		return "cancel"
	case IntentClose:
		return "close"
	case IntentOutsideClick:
		return "outside-click"
	case IntentSubmitWithError:
		return "submit-with-error"
	case IntentSubmitValid:
		return "submit-valid"
	case IntentSupersede:
		return "supersede"
	case IntentDetach:
		return "detach"
	default:
		return "unknown"
	}
}

// InvalidTransitionError reports an intent the current state does not accept.
type InvalidTransitionError struct {
	From   State
	Intent Intent
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("modal: %s not allowed from %s", e.Intent, e.From)
}

type transitionKey struct {
	from   State
	intent Intent
}

// transitions is the complete dialog lifecycle. Every dismissal path goes
// through shown -> resolving, so a dialog resolves at most once.
var transitions = map[transitionKey]State{
	{StateConstructing, IntentOpen}:      StateShown,
	{StateConstructing, IntentSupersede}: StateClosed,

	{StateShown, IntentConfirm}:         StateResolving,
	{StateShown, IntentSubmitValid}:     StateResolving,
	{StateShown, IntentCancel}:          StateResolving,
	{StateShown, IntentClose}:           StateResolving,
	{StateShown, IntentOutsideClick}:    StateResolving,
	{StateShown, IntentSubmitWithError}: StateShown,
	{StateShown, IntentSupersede}:       StateClosed,

	{StateResolving, IntentDetach}: StateClosed,
}

// next returns the state reached by applying intent in from.
func next(from State, intent Intent) (State, error) {
	to, ok := transitions[transitionKey{from, intent}]
	if !ok {
		return from, &InvalidTransitionError{From: from, Intent: intent}
	}
	return to, nil
}

// outcome maps a resolving intent to the confirmed flag it produces.
func outcome(intent Intent) bool {
	return intent == IntentConfirm || intent == IntentSubmitValid
}
