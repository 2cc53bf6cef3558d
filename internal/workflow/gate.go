package workflow

import (
	"context"
	"sync"
)

type GateState int

const (
	GateIdle GateState = iota
	GatePending
	GateApplied
	GateCancelled
)

func (s GateState) String() string {
	switch s {
	case GatePending:
		return "pending"
	case GateApplied:
		return "applied"
	case GateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Pending is the action awaiting confirmation and the record snapshot shown
// to the user while it waits.
type Pending struct {
	Ref      Ref `json:"ref"`
	Snapshot any `json:"snapshot"`
}

// Gate holds at most one destructive action until it is confirmed or
// cancelled. Applied and Cancelled are terminal for that action; the next
// Request starts over.
type Gate struct {
	mu      sync.Mutex
	state   GateState
	pending *Pending
}

func (g *Gate) Request(ref Ref, snapshot any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == GatePending {
		return ErrConfirmationPending
	}
	g.state = GatePending
	g.pending = &Pending{Ref: ref, Snapshot: snapshot}
	return nil
}

// Confirm runs apply for the pending action. The gate closes before apply
// runs, so a second Confirm returns ErrNothingPending even while the first
// is still applying.
func (g *Gate) Confirm(ctx context.Context, apply func(context.Context, Ref) error) (Ref, error) {
	g.mu.Lock()
	if g.state != GatePending {
		g.mu.Unlock()
		return Ref{}, ErrNothingPending
	}
	p := g.pending
	g.state, g.pending = GateApplied, nil
	g.mu.Unlock()
	return p.Ref, apply(ctx, p.Ref)
}

func (g *Gate) Cancel() (Ref, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != GatePending {
		return Ref{}, ErrNothingPending
	}
	ref := g.pending.Ref
	g.state, g.pending = GateCancelled, nil
	return ref, nil
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Pending returns the action awaiting confirmation, if any.
func (g *Gate) Pending() (Pending, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return Pending{}, false
	}
	return *g.pending, true
}
