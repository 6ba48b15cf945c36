// Package workflow coordinates a single-record mutation end to end: open a
// modal on a record, validate, submit, and reconcile the outcome.
//
// Writes are confirm-then-apply: the cached collection is only patched
// after the server acknowledges, so a failed submit never leaves the cache
// inconsistent and no rollback is needed.
package workflow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/storeops/storeops/internal/api"
)

// Phase is the workflow state.
type Phase int

const (
	Closed Phase = iota
	Editing
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

// Kind distinguishes an edit modal from a delete confirmation.
type Kind int

const (
	KindEdit Kind = iota
	KindDelete
)

// Workflow is the mutation state machine for one screen.
type Workflow[T api.Entity] struct {
	phase    Phase
	kind     Kind
	target   T
	snapshot T
	targetID string
	token    uint64
	errText  string
}

// New builds a closed workflow.
func New[T api.Entity]() *Workflow[T] {
	return &Workflow[T]{}
}

// Open snapshots the record and enters Editing for an edit modal.
func (w *Workflow[T]) Open(record T) {
	w.open(record, KindEdit)
}

// OpenDelete snapshots the record and enters Editing for a delete
// confirmation.
func (w *Workflow[T]) OpenDelete(record T) {
	w.open(record, KindDelete)
}

func (w *Workflow[T]) open(record T, kind Kind) {
	w.phase = Editing
	w.kind = kind
	w.target = record
	w.snapshot = record
	w.targetID = record.EntityID()
	w.errText = ""
}

// Phase returns the current state.
func (w *Workflow[T]) Phase() Phase { return w.phase }

// Kind returns whether the open modal edits or deletes.
func (w *Workflow[T]) Kind() Kind { return w.kind }

// Target returns the record the modal is operating on.
func (w *Workflow[T]) Target() T { return w.target }

// Snapshot returns the record as it was when the modal opened.
func (w *Workflow[T]) Snapshot() T { return w.snapshot }

// TargetID returns the id of the record under mutation, empty when Closed.
func (w *Workflow[T]) TargetID() string {
	if w.phase == Closed {
		return ""
	}
	return w.targetID
}

// Err returns the display error from the last failed submit.
func (w *Workflow[T]) Err() string { return w.errText }

// BeginSubmit moves Editing to Submitting and returns a token the eventual
// ResolveSubmit must present. Re-entry while Submitting (a double-press)
// and submits on a closed workflow are rejected.
func (w *Workflow[T]) BeginSubmit() (uint64, bool) {
	if w.phase != Editing {
		return 0, false
	}
	w.token++
	w.phase = Submitting
	w.errText = ""
	return w.token, true
}

// ResolveSubmit applies a submit outcome. The result is discarded (returns
// false) when the token is stale or the workflow was cancelled while the
// request was in flight. On success the workflow closes; on failure it
// returns to Editing with the error attached so the user can retry.
func (w *Workflow[T]) ResolveSubmit(token uint64, submitErr error) bool {
	if w.phase != Submitting || token != w.token {
		return false
	}
	if submitErr != nil {
		w.phase = Editing
		w.errText = displayMessage(submitErr)
		return true
	}
	w.reset()
	return true
}

// RejectInvalid records a client-side validation failure. The workflow
// stays in Editing and no network call is made.
func (w *Workflow[T]) RejectInvalid(err error) {
	if w.phase == Editing {
		w.errText = displayMessage(err)
	}
}

// Cancel withdraws the modal unconditionally, even mid-Submitting: the
// in-flight request completes but its result no longer matches and is
// silently discarded.
func (w *Workflow[T]) Cancel() {
	w.reset()
}

func (w *Workflow[T]) reset() {
	var zero T
	w.phase = Closed
	w.target = zero
	w.snapshot = zero
	w.targetID = ""
	w.errText = ""
}

func displayMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err != nil {
		return err.Error()
	}
	return "request failed"
}

// Validation helpers. Validation runs client-side before any network call.

// ValidationError reports a field that blocks submission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Required rejects empty or whitespace-only input.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// PriceField parses a non-negative decimal amount.
func PriceField(field, value string) (float64, error) {
	if err := Required(field, value); err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || amount < 0 {
		return 0, &ValidationError{Field: field, Reason: "must be a non-negative number"}
	}
	return amount, nil
}

// CountField parses a non-negative integer quantity.
func CountField(field, value string) (int, error) {
	if err := Required(field, value); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, &ValidationError{Field: field, Reason: "must be a non-negative whole number"}
	}
	return n, nil
}
