package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/toast"
)

type CommandType string

const (
	// RequestDelete opens the kind's confirmation gate.
	RequestDelete CommandType = "request_delete"
	ConfirmDelete CommandType = "confirm_delete"
	CancelDelete  CommandType = "cancel_delete"
	// Delete removes immediately, without confirmation.
	Delete  CommandType = "delete"
	Undo    CommandType = "undo"
	Dismiss CommandType = "dismiss"
)

type Command struct {
	Type CommandType `json:"type"`
	// Ref is required by RequestDelete and Delete; ConfirmDelete and
	// CancelDelete need only Ref.Kind.
	Ref   Ref    `json:"ref"`
	Token string `json:"token,omitempty"`
}

type EventType string

const (
	ConfirmationRequested EventType = "confirmation_requested"
	Deleted               EventType = "deleted"
	Cancelled             EventType = "cancelled"
	Restored              EventType = "restored"
	Dismissed             EventType = "dismissed"
)

type Event struct {
	Type     EventType    `json:"type"`
	Ref      Ref          `json:"ref"`
	Snapshot any          `json:"snapshot,omitempty"`
	Offer    *Offer       `json:"offer,omitempty"`
	Toast    *toast.Toast `json:"toast,omitempty"`
}

// Target adapts one entity kind to the reducer.
type Target interface {
	// Describe returns the record ref points at and its display label.
	Describe(ctx context.Context, ref Ref) (snapshot any, label string, err error)
	// Remove deletes the record and returns how to put it back.
	Remove(ctx context.Context, ref Ref) (RestoreFunc, error)
}

type registration struct {
	noun   string
	target Target
	gate   *Gate
}

// Reducer is the single dispatch point for delete, undo and dismiss
// commands across every registered kind.
type Reducer struct {
	undo     *Undoer
	feed     *toast.Feed
	observer Observer

	mu      sync.RWMutex
	targets map[domain.Kind]*registration
}

func NewReducer(undo *Undoer, feed *toast.Feed, observer Observer) *Reducer {
	if observer == nil {
		observer = NopObserver
	}
	return &Reducer{undo: undo, feed: feed, observer: observer, targets: map[domain.Kind]*registration{}}
}

// Register binds kind to t. noun titles the toasts, e.g. "Employee deleted".
func (r *Reducer) Register(kind domain.Kind, noun string, t Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[kind] = &registration{noun: noun, target: t, gate: &Gate{}}
}

// Gate exposes the confirmation gate of kind.
func (r *Reducer) Gate(kind domain.Kind) (*Gate, error) {
	reg, err := r.lookup(kind)
	if err != nil {
		return nil, err
	}
	return reg.gate, nil
}

func (r *Reducer) lookup(kind domain.Kind) (*registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.targets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return reg, nil
}

func (r *Reducer) Dispatch(ctx context.Context, cmd Command) (Event, error) {
	switch cmd.Type {
	case RequestDelete:
		return r.requestDelete(ctx, cmd.Ref)
	case ConfirmDelete:
		return r.confirmDelete(ctx, cmd.Ref.Kind)
	case CancelDelete:
		return r.cancelDelete(cmd.Ref.Kind)
	case Delete:
		return r.delete(ctx, cmd.Ref)
	case Undo:
		return r.undoToken(ctx, cmd.Token)
	case Dismiss:
		return r.dismiss(cmd.Token)
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
}

func (r *Reducer) requestDelete(ctx context.Context, ref Ref) (Event, error) {
	reg, err := r.lookup(ref.Kind)
	if err != nil {
		return Event{}, err
	}
	snap, label, err := reg.target.Describe(ctx, ref)
	if err != nil {
		return Event{}, err
	}
	ref.Name = label
	if err := reg.gate.Request(ref, snap); err != nil {
		return Event{}, err
	}
	return Event{Type: ConfirmationRequested, Ref: ref, Snapshot: snap}, nil
}

func (r *Reducer) confirmDelete(ctx context.Context, kind domain.Kind) (Event, error) {
	reg, err := r.lookup(kind)
	if err != nil {
		return Event{}, err
	}
	var restore RestoreFunc
	ref, err := reg.gate.Confirm(ctx, func(ctx context.Context, ref Ref) error {
		var err error
		restore, err = reg.target.Remove(ctx, ref)
		return err
	})
	if err != nil {
		return Event{Ref: ref}, err
	}
	return r.offer(reg, ref, restore), nil
}

func (r *Reducer) delete(ctx context.Context, ref Ref) (Event, error) {
	reg, err := r.lookup(ref.Kind)
	if err != nil {
		return Event{}, err
	}
	_, label, err := reg.target.Describe(ctx, ref)
	if err != nil {
		return Event{}, err
	}
	ref.Name = label
	restore, err := reg.target.Remove(ctx, ref)
	if err != nil {
		return Event{Ref: ref}, err
	}
	return r.offer(reg, ref, restore), nil
}

func (r *Reducer) offer(reg *registration, ref Ref, restore RestoreFunc) Event {
	r.observer.Mutation(ref.Kind, "delete")
	o := r.undo.Offer(ref, restore)
	t := r.feed.WithUndo(reg.noun+" deleted", ref.Name+" has been removed.", o.Token)
	return Event{Type: Deleted, Ref: ref, Offer: &o, Toast: &t}
}

func (r *Reducer) cancelDelete(kind domain.Kind) (Event, error) {
	reg, err := r.lookup(kind)
	if err != nil {
		return Event{}, err
	}
	ref, err := reg.gate.Cancel()
	if err != nil {
		return Event{}, err
	}
	return Event{Type: Cancelled, Ref: ref}, nil
}

func (r *Reducer) undoToken(ctx context.Context, token string) (Event, error) {
	o, err := r.undo.Undo(ctx, token)
	r.feed.Resolve(token)
	ref := o.Ref
	switch {
	case errors.Is(err, ErrUndoUnavailable):
		if o.Kind != "" {
			r.observer.Undo(o.Kind, "expired")
		}
		return Event{Ref: ref}, err
	case err != nil:
		r.observer.Undo(o.Kind, "failed")
		r.feed.Error("Error", "Could not restore "+o.Label+".")
		return Event{Ref: ref}, err
	}
	r.observer.Undo(o.Kind, "restored")
	r.observer.Mutation(o.Kind, "restore")
	t := r.feed.Success("Action undone", o.Label+" has been restored.")
	return Event{Type: Restored, Ref: ref, Offer: &o, Toast: &t}, nil
}

func (r *Reducer) dismiss(token string) (Event, error) {
	o, ok := r.undo.Dismiss(token)
	r.feed.Resolve(token)
	if !ok {
		return Event{}, ErrUndoUnavailable
	}
	r.observer.Undo(o.Kind, "dismissed")
	return Event{Type: Dismissed, Ref: o.Ref, Offer: &o}, nil
}

// Sweep expires stale undo offers and withdraws their toast actions.
func (r *Reducer) Sweep() int {
	expired := r.undo.Sweep()
	for _, o := range expired {
		r.feed.Resolve(o.Token)
		r.observer.Undo(o.Kind, "expired")
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Reducer) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
