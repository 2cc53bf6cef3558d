package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/toast"
	"github.com/csg33k/staffdesk/internal/validation"
)

// Outcome is the success toast a commit produces.
type Outcome struct {
	Title       string
	Description string
}

// CommitFunc merges a validated draft into its collection.
type CommitFunc[D any] func(ctx context.Context, draft D) (Outcome, error)

type FormOptions struct {
	Validator *validation.Validator
	Feed      *toast.Feed
	Observer  Observer
	// Latency simulates a remote round trip before commit.
	Latency time.Duration
	// Failure is the error toast description when commit fails.
	Failure string
}

// Form runs validate, wait, commit for one kind of draft. Only one
// submission may be in flight at a time.
type Form[D any] struct {
	name string
	opts FormOptions

	mu   sync.Mutex
	busy bool
}

func NewForm[D any](name string, opts FormOptions) *Form[D] {
	if opts.Validator == nil {
		opts.Validator = validation.New(nil)
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver
	}
	if opts.Failure == "" {
		opts.Failure = "Something went wrong. Please try again."
	}
	return &Form[D]{name: name, opts: opts}
}

func (f *Form[D]) Name() string { return f.name }

// Busy reports whether a submission is in flight.
func (f *Form[D]) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit validates draft and, if valid, commits it after the configured
// latency. Validation failures return validation.Errors and never commit.
// A cancelled ctx during the wait returns ctx.Err() without committing.
// Commit errors push the failure toast, except domain.ErrNotFound.
func (f *Form[D]) Submit(ctx context.Context, draft D, commit CommitFunc[D]) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrSubmissionPending
	}
	f.busy = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	if err := f.opts.Validator.Struct(draft); err != nil {
		f.opts.Observer.ValidationFailed(f.name)
		return err
	}
	if err := Wait(ctx, f.opts.Latency); err != nil {
		return err
	}
	out, err := commit(ctx, draft)
	if err != nil {
		// A record deleted elsewhere is returned to the caller but not toasted.
		if f.opts.Feed != nil && !errors.Is(err, domain.ErrNotFound) {
			f.opts.Feed.Error("Error", f.opts.Failure)
		}
		return err
	}
	if f.opts.Feed != nil && out.Title != "" {
		f.opts.Feed.Success(out.Title, out.Description)
	}
	return nil
}
