package modal

import (
	"context"
	"strings"
	"sync"
)

// requiredMessage is the catalog key for the blank required-input error.
const requiredMessage = "Please enter content title"

// Result is what a resolved dialog hands back to its caller. A declined
// dialog is Confirmed=false with a nil error, never an error value.
type Result struct {
	Confirmed bool
	Value     string // prompt input, set only when Confirmed
}

// Request is one dialog instance. It resolves exactly once, or is rejected
// with ErrSuperseded when another dialog replaces it.
type Request struct {
	mgr  *Manager
	id   uint64
	opts Options

	mu      sync.Mutex
	state   State
	input   string
	errText string
	invalid bool
	focused bool
	result  Result
	err     error
	done    chan struct{}
}

func newRequest(mgr *Manager, id uint64, opts Options) *Request {
	return &Request{
		mgr:   mgr,
		id:    id,
		opts:  opts,
		state: StateConstructing,
		input: opts.DefaultValue,
		done:  make(chan struct{}),
	}
}

// ID returns the manager-assigned sequence number.
func (r *Request) ID() uint64 {
	return r.id
}

// Options returns the normalized dialog options.
func (r *Request) Options() Options {
	return r.opts
}

// Kind returns the dialog flavour.
func (r *Request) Kind() Kind {
	return r.opts.Kind()
}

// State returns the current lifecycle state.
func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// ConfirmLabel returns the confirm button text.
func (r *Request) ConfirmLabel() string {
	if r.opts.ConfirmText != "" {
		return r.opts.ConfirmText
	}
	return r.mgr.translate("OK")
}

// CancelLabel returns the cancel button text.
func (r *Request) CancelLabel() string {
	if r.opts.CancelText != "" {
		return r.opts.CancelText
	}
	return r.mgr.translate("Cancel")
}

// Input returns the current prompt input.
func (r *Request) Input() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.input
}

// SetInput records an edit to the prompt input and clears any inline error.
func (r *Request) SetInput(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateShown {
		return
	}
	r.input = value
	r.errText = ""
	r.invalid = false
}

// ErrorText returns the localized inline validation message, if any.
func (r *Request) ErrorText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errText
}

// Invalid reports whether the input should be highlighted as an error.
func (r *Request) Invalid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalid
}

// Focus gives the input focus once the open transition has completed.
func (r *Request) Focus() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateShown && r.opts.Input {
		r.focused = true
	}
}

// Focused reports whether the input has focus.
func (r *Request) Focused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focused
}

// Confirm handles a confirm button click. Prompts are validated first: a
// required prompt with blank input stays open with an inline error. It
// reports whether the dialog resolved.
func (r *Request) Confirm() bool {
	r.mu.Lock()
	if r.state != StateShown {
		r.mu.Unlock()
		return false
	}

	if r.opts.Input && r.opts.Required && strings.TrimSpace(r.input) == "" {
		r.state, _ = next(r.state, IntentSubmitWithError)
		r.errText = r.mgr.translate(requiredMessage)
		r.invalid = true
		r.focused = true
		r.mu.Unlock()

		r.mgr.logger.Debug("modal input rejected", "id", r.id)
		return false
	}

	intent := IntentConfirm
	if r.opts.Input {
		intent = IntentSubmitValid
	}
	return r.finish(intent)
}

// Submit handles Enter in the prompt input. It behaves like Confirm.
func (r *Request) Submit() bool {
	return r.Confirm()
}

// Cancel handles a cancel button click. Dialogs without a cancel control
// ignore it.
func (r *Request) Cancel() bool {
	if !r.opts.ShowCancel() {
		return false
	}
	r.mu.Lock()
	return r.finish(IntentCancel)
}

// CloseIcon handles a click on the close (×) control.
func (r *Request) CloseIcon() bool {
	r.mu.Lock()
	return r.finish(IntentClose)
}

// ClickOutside handles a click on the overlay outside the dialog body.
func (r *Request) ClickOutside() bool {
	r.mu.Lock()
	return r.finish(IntentOutsideClick)
}

// finish resolves the request. It must be called with r.mu held and
// releases it.
func (r *Request) finish(intent Intent) bool {
	to, err := next(r.state, intent)
	if err != nil {
		r.mu.Unlock()
		return false
	}
	r.state = to

	r.result = Result{Confirmed: outcome(intent)}
	if r.result.Confirmed && r.opts.Input {
		r.result.Value = r.input
	}
	r.state, _ = next(r.state, IntentDetach)
	r.focused = false
	close(r.done)
	result := r.result
	r.mu.Unlock()

	r.mgr.release(r)
	r.mgr.logger.Debug("modal resolved",
		"id", r.id,
		"kind", r.opts.Kind().String(),
		"intent", intent.String(),
		"confirmed", result.Confirmed,
	)
	return true
}

// open moves a freshly built request to shown.
func (r *Request) open() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state, _ = next(r.state, IntentOpen)
}

// supersede rejects the request because another dialog took its place.
func (r *Request) supersede() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	to, err := next(r.state, IntentSupersede)
	if err != nil {
		return false
	}
	r.state = to
	r.err = ErrSuperseded
	r.focused = false
	close(r.done)
	return true
}

// Done is closed once the request has resolved or been superseded.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Await blocks until the user acts, the dialog is superseded, or ctx ends.
// Superseded dialogs return ErrSuperseded.
func (r *Request) Await(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.result, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
