package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csg33k/staffdesk/internal/domain"
)

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: "Alex Johnson", Position: "Software Developer", Department: "Engineering"},
		{ID: 2, Name: "Emily Davis", Position: "UX Designer", Department: "Design"},
		{ID: 3, Name: "James Wilson", Position: "Product Manager", Department: "Product"},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []int64
	}{
		{name: "empty term returns everything", term: "", want: []int64{1, 2, 3}},
		{name: "blank term returns everything", term: "   ", want: []int64{1, 2, 3}},
		{name: "matches name case-insensitively", term: "EMILY", want: []int64{2}},
		{name: "matches position", term: "manager", want: []int64{3}},
		{name: "matches department substring", term: "eng", want: []int64{1}},
		{name: "matches several preserving order", term: "d", want: []int64{1, 2, 3}},
		{name: "no match", term: "zzz", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleEmployees(), tt.term, EmployeeFields)
			ids := make([]int64, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	items := sampleEmployees()
	got := Filter(items, "", EmployeeFields)
	got[0].Name = "changed"
	assert.Equal(t, "Alex Johnson", items[0].Name)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), NextID[domain.Employee](nil))
	assert.Equal(t, int64(4), NextID(sampleEmployees()))
	assert.Equal(t, int64(11), NextID([]domain.Employee{{ID: 10}, {ID: 3}}))
}

func TestInsertRemoveAt(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Equal(t, []int{1, 9, 2, 3}, InsertAt(items, 9, 1))
	assert.Equal(t, []int{1, 2, 3, 9}, InsertAt(items, 9, 10))
	assert.Equal(t, []int{9, 1, 2, 3}, InsertAt(items, 9, -1))
	assert.Equal(t, []int{1, 3}, RemoveAt(items, 1))
	assert.Equal(t, []int{1, 2, 3}, items, "input must not change")
}

func TestSortByID(t *testing.T) {
	got := SortByID([]domain.Employee{{ID: 3}, {ID: 1}, {ID: 2}})
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, domain.Percent(0, 0))
	assert.Equal(t, 67, domain.Percent(2, 3))
	assert.Equal(t, 50, domain.Percent(3, 6))
	assert.Equal(t, 100, domain.Percent(4, 4))
	assert.Equal(t, 13, domain.Percent(1, 8))
}
