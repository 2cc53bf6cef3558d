// Package workflow implements the optimistic mutation loop shared by every
// entity kind: a confirmation gate in front of deletes, an undo window after
// them, and single-flight validated form submission.
package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/csg33k/staffdesk/internal/domain"
)

var (
	ErrConfirmationPending = errors.New("a confirmation is already pending")
	ErrNothingPending      = errors.New("nothing is pending confirmation")
	ErrUndoUnavailable     = errors.New("undo is no longer available")
	ErrSubmissionPending   = errors.New("a submission is already in progress")
	ErrUnknownCommand      = errors.New("unknown command")
)

// Ref addresses one record. Parent scopes nested records (a task's
// checklist). Key addresses records identified by value, such as a skill
// on the employee ID. Name is the display label, filled in by the reducer.
type Ref struct {
	Kind   domain.Kind `json:"kind"`
	ID     int64       `json:"id"`
	Parent int64       `json:"parent,omitempty"`
	Key    string      `json:"key,omitempty"`
	Name   string      `json:"name,omitempty"`
}

// Observer receives workflow outcomes. internal/metrics implements it.
type Observer interface {
	Mutation(kind domain.Kind, op string)
	Undo(kind domain.Kind, result string)
	ValidationFailed(form string)
}

type nopObserver struct{}

func (nopObserver) Mutation(domain.Kind, string) {}
func (nopObserver) Undo(domain.Kind, string)     {}
func (nopObserver) ValidationFailed(string)      {}

// NopObserver discards everything.
var NopObserver Observer = nopObserver{}

// Wait blocks for d or until ctx is done, whichever is first.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
