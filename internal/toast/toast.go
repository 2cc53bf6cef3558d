// Package toast holds the transient notification feed shown after mutations.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindDefault Kind = "default"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultLimit is how many toasts a feed retains.
const DefaultLimit = 50

// Action is the single button a toast may carry, e.g. Undo.
type Action struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

type Toast struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Action      *Action   `json:"action,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Feed is a bounded, newest-last buffer of toasts. Safe for concurrent use.
type Feed struct {
	mu    sync.Mutex
	items []Toast
	limit int
	now   func() time.Time
}

func NewFeed(limit int, now func() time.Time) *Feed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if now == nil {
		now = time.Now
	}
	return &Feed{limit: limit, now: now}
}

// Push stamps t with an id and time and appends it, dropping the oldest
// entries beyond the limit.
func (f *Feed) Push(t Toast) Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = f.now()
	if t.Kind == "" {
		t.Kind = KindDefault
	}
	if t.Action != nil {
		a := *t.Action
		t.Action = &a
	}
	f.items = append(f.items, t)
	if n := len(f.items) - f.limit; n > 0 {
		f.items = append([]Toast(nil), f.items[n:]...)
	}
	return t
}

func (f *Feed) Success(title, description string) Toast {
	return f.Push(Toast{Kind: KindSuccess, Title: title, Description: description})
}

func (f *Feed) Error(title, description string) Toast {
	return f.Push(Toast{Kind: KindError, Title: title, Description: description})
}

// WithUndo pushes a default toast carrying an Undo action for token.
func (f *Feed) WithUndo(title, description, token string) Toast {
	return f.Push(Toast{Title: title, Description: description, Action: &Action{Label: "Undo", Token: token}})
}

// List returns the toasts newest first.
func (f *Feed) List() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Toast, len(f.items))
	for i, t := range f.items {
		out[len(f.items)-1-i] = t
	}
	return out
}

// Dismiss removes the toast with id and returns it, so the caller can
// release whatever its Action was bound to.
func (f *Feed) Dismiss(id string) (Toast, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.items {
		if t.ID == id {
			f.items = append(append([]Toast(nil), f.items[:i]...), f.items[i+1:]...)
			return t, true
		}
	}
	return Toast{}, false
}

// Resolve strips the action bound to token from every toast, so a spent
// or expired undo is no longer offered.
func (f *Feed) Resolve(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if a := f.items[i].Action; a != nil && a.Token == token {
			f.items[i].Action = nil
		}
	}
}
