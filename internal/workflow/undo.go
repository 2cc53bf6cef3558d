package workflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/ports"
)

// DefaultUndoWindow is how long a removal can be reverted.
const DefaultUndoWindow = 5 * time.Second

// RestoreFunc reverts one removal.
type RestoreFunc func(ctx context.Context) error

// Offer describes a pending undo.
type Offer struct {
	Token     string      `json:"token"`
	Kind      domain.Kind `json:"kind"`
	Label     string      `json:"label"`
	Ref       Ref         `json:"ref"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type undoEntry struct {
	offer   Offer
	restore RestoreFunc
}

// Undoer tracks compensating actions for recent removals. Each token can be
// redeemed once, and only before it expires.
type Undoer struct {
	mu      sync.Mutex
	window  time.Duration
	clock   ports.Clock
	entries map[string]undoEntry
}

func NewUndoer(window time.Duration, clock ports.Clock) *Undoer {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Undoer{window: window, clock: clock, entries: map[string]undoEntry{}}
}

// Window reports the configured undo window.
func (u *Undoer) Window() time.Duration { return u.window }

// Offer registers restore for the removal of ref. The ref's Name labels it.
func (u *Undoer) Offer(ref Ref, restore RestoreFunc) Offer {
	o := Offer{
		Token:     uuid.Must(uuid.NewV7()).String(),
		Kind:      ref.Kind,
		Label:     ref.Name,
		Ref:       ref,
		ExpiresAt: u.clock.Now().Add(u.window),
	}
	u.mu.Lock()
	u.entries[o.Token] = undoEntry{offer: o, restore: restore}
	u.mu.Unlock()
	return o
}

// Undo redeems token. The token is spent whether or not restore succeeds.
// The returned Offer is populated whenever the token was known.
func (u *Undoer) Undo(ctx context.Context, token string) (Offer, error) {
	u.mu.Lock()
	e, ok := u.entries[token]
	delete(u.entries, token)
	u.mu.Unlock()
	if !ok {
		return Offer{}, ErrUndoUnavailable
	}
	if u.clock.Now().After(e.offer.ExpiresAt) {
		return e.offer, ErrUndoUnavailable
	}
	return e.offer, e.restore(ctx)
}

// Dismiss drops token without restoring anything.
func (u *Undoer) Dismiss(token string) (Offer, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	e, ok := u.entries[token]
	delete(u.entries, token)
	return e.offer, ok
}

// Sweep forgets every expired offer and returns them.
func (u *Undoer) Sweep() []Offer {
	now := u.clock.Now()
	u.mu.Lock()
	defer u.mu.Unlock()
	var expired []Offer
	for tok, e := range u.entries {
		if now.After(e.offer.ExpiresAt) {
			expired = append(expired, e.offer)
			delete(u.entries, tok)
		}
	}
	return expired
}

// Pending lists live offers, oldest first.
func (u *Undoer) Pending() []Offer {
	now := u.clock.Now()
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Offer, 0, len(u.entries))
	for _, e := range u.entries {
		if !now.After(e.offer.ExpiresAt) {
			out = append(out, e.offer)
		}
	}
	// v7 tokens sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}
