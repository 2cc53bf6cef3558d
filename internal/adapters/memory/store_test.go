package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/staffdesk/internal/adapters/memory"
	"github.com/csg33k/staffdesk/internal/domain"
)

func threeTrainings() []domain.Training {
	return []domain.Training{
		{ID: 1, Title: "Orientation"},
		{ID: 2, Title: "Leadership"},
		{ID: 3, Title: "Workshop"},
	}
}

func TestAddAssignsNextID(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())

	got, err := s.Add(ctx, domain.Training{Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)

	fetched, err := s.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, got, fetched)

	all, _ := s.List(ctx)
	assert.Len(t, all, 4)
}

func TestAddToEmptyCollectionStartsAtOne(t *testing.T) {
	s := memory.MustNew[domain.Training](domain.KindTraining, nil)
	got, err := s.Add(context.Background(), domain.Training{Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestAddUsesMaxNotLength(t *testing.T) {
	s := memory.MustNew(domain.KindTraining, []domain.Training{{ID: 7}, {ID: 2}})
	got, err := s.Add(context.Background(), domain.Training{})
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.ID)
}

func TestRemoveThenInsertRestoresCollection(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	before, _ := s.List(ctx)

	removed, err := s.Remove(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed.Index)
	assert.Equal(t, "Leadership", removed.Record.Title)

	mid, _ := s.List(ctx)
	assert.Equal(t, []int64{1, 3}, ids(mid))

	require.NoError(t, s.Insert(ctx, removed.Record, removed.Index))
	after, _ := s.List(ctx)
	assert.Equal(t, before, after)
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	err := s.Insert(context.Background(), domain.Training{ID: 3}, 0)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestInsertClampsIndex(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	require.NoError(t, s.Insert(ctx, domain.Training{ID: 9}, 99))
	require.NoError(t, s.Insert(ctx, domain.Training{ID: 8}, -5))
	all, _ := s.List(ctx)
	assert.Equal(t, []int64{8, 1, 2, 3, 9}, ids(all))
}

func TestUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())

	_, err := s.Get(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Remove(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = s.Replace(ctx, 42, domain.Training{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveIsIdempotentlyNotFound(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	_, err := s.Remove(ctx, 1)
	require.NoError(t, err)
	_, err = s.Remove(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceKeepsIDAndPosition(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	require.NoError(t, s.Replace(ctx, 2, domain.Training{ID: 99, Title: "Renamed"}))
	all, _ := s.List(ctx)
	assert.Equal(t, []int64{1, 2, 3}, ids(all))
	assert.Equal(t, "Renamed", all[1].Title)
}

func TestMutationsProduceNewSnapshots(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	snap, _ := s.List(ctx)
	v := s.Version()

	_, err := s.Remove(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, snap, 3, "earlier snapshot must not change")
	assert.Greater(t, s.Version(), v)
}

func TestListCopiesNestedSlices(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindEmployee, []domain.Employee{{ID: 1, Skills: []string{"Go"}}})
	all, _ := s.List(ctx)
	all[0].Skills[0] = "mutated"
	fresh, _ := s.Get(ctx, 1)
	assert.Equal(t, []string{"Go"}, fresh.Skills)
}

func TestNewRejectsBadSeed(t *testing.T) {
	_, err := memory.New(domain.KindTraining, []domain.Training{{ID: 1}, {ID: 1}})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	_, err = memory.New(domain.KindTraining, []domain.Training{{ID: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func ids(items []domain.Training) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestAddNeverReissuesRemovedID(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())

	removed, err := s.Remove(ctx, 3)
	require.NoError(t, err)
	got, err := s.Add(ctx, domain.Training{Title: "Safety"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)

	require.NoError(t, s.Insert(ctx, removed.Record, removed.Index))
	all, _ := s.List(ctx)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(all))
}

func TestReplaceAllIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := memory.MustNew(domain.KindTraining, threeTrainings())
	v := s.Version()

	err := s.ReplaceAll(ctx, []domain.Training{{ID: 1, Title: "A"}, {ID: 9, Title: "B"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	first, _ := s.Get(ctx, 1)
	assert.Equal(t, "Orientation", first.Title)
	assert.Equal(t, v, s.Version())

	require.NoError(t, s.ReplaceAll(ctx, []domain.Training{{ID: 1, Title: "A"}, {ID: 3, Title: "C"}}))
	all, _ := s.List(ctx)
	assert.Equal(t, []int64{1, 2, 3}, ids(all))
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "C", all[2].Title)
	assert.Equal(t, v+1, s.Version())
}
