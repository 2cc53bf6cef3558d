package service

import (
	"context"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/ports"
	"github.com/csg33k/staffdesk/internal/workflow"
)

// removeAndRestore removes id from c and returns the compensating insert at
// the record's original position.
func removeAndRestore[T domain.Entity[T]](ctx context.Context, c ports.Collection[T], id int64) (workflow.RestoreFunc, error) {
	removed, err := c.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return c.Insert(ctx, removed.Record, removed.Index)
	}, nil
}
