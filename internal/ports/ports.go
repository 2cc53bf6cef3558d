package ports

import (
	"context"
	"io"
	"time"

	"github.com/csg33k/staffdesk/internal/domain"
)

// Removal is what Remove hands back: the exact record and the index it held.
type Removal[T any] struct {
	Record T
	Index  int
}

// Collection is the ordered store for one entity kind.
type Collection[T domain.Entity[T]] interface {
	// Add assigns the next unused id and appends the record. Ids are never
	// reissued, even after the record holding one is removed.
	Add(ctx context.Context, rec T) (T, error)
	// Insert places rec at index keeping its id. Index is clamped to the
	// collection bounds. Returns domain.ErrDuplicateID on collision.
	Insert(ctx context.Context, rec T, index int) error
	// Replace swaps the record with the given id. Returns domain.ErrNotFound.
	Replace(ctx context.Context, id int64, rec T) error
	// ReplaceAll swaps each record by its own id as one all-or-nothing
	// change. Returns domain.ErrNotFound if any id is missing.
	ReplaceAll(ctx context.Context, recs []T) error
	// Remove deletes by id. Returns domain.ErrNotFound.
	Remove(ctx context.Context, id int64) (Removal[T], error)
	Get(ctx context.Context, id int64) (T, error)
	// List returns a copy of the collection in order.
	List(ctx context.Context) ([]T, error)
}

// ReportGenerator renders the training progress report.
type ReportGenerator interface {
	Generate(ctx context.Context, employees []domain.Employee, progress []domain.EmployeeProgress, w io.Writer) error
}

// Clock is injected where undo windows and latency are measured.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
