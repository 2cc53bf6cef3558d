// Package collection holds the pure helpers shared by every store adapter:
// id allocation, positional insert and removal, and the derived view filter.
// None of these functions mutate their input slices.
package collection

import (
	"slices"
	"strings"

	"github.com/csg33k/staffdesk/internal/domain"
)

// NextID returns max(existing ids)+1, or 1 for an empty collection.
func NextID[T domain.Entity[T]](items []T) int64 {
	var top int64
	for _, it := range items {
		if id := it.EntityID(); id > top {
			top = id
		}
	}
	return top + 1
}

// IndexOf returns the position of id in items, or -1.
func IndexOf[T domain.Entity[T]](items []T, id int64) int {
	for i, it := range items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

// Append returns a new slice with rec at the end.
func Append[T any](items []T, rec T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, rec)
}

// InsertAt returns a new slice with rec at index, clamped to [0, len(items)].
func InsertAt[T any](items []T, rec T, index int) []T {
	index = Clamp(index, len(items))
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, rec)
	return append(out, items[index:]...)
}

// ReplaceAt returns a new slice with items[index] swapped for rec.
func ReplaceAt[T any](items []T, rec T, index int) []T {
	out := slices.Clone(items)
	out[index] = rec
	return out
}

// RemoveAt returns a new slice without items[index].
func RemoveAt[T any](items []T, index int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

// Clamp bounds index to [0, n].
func Clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// Fields extracts the searchable text of a record.
type Fields[T any] func(T) []string

// Filter returns the records where any field contains term, case-insensitively,
// preserving collection order. A blank term yields a copy of the whole collection.
func Filter[T any](items []T, term string, fields Fields[T]) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// SortByID returns a copy ordered by ascending id.
func SortByID[T domain.Entity[T]](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		switch {
		case a.EntityID() < b.EntityID():
			return -1
		case a.EntityID() > b.EntityID():
			return 1
		}
		return 0
	})
	return out
}

// Search fields per entity kind.

func EmployeeFields(e domain.Employee) []string {
	return []string{e.Name, e.Position, e.Department}
}

func DocumentFields(d domain.Document) []string {
	return []string{d.Name, d.Category}
}

func TrainingFields(t domain.Training) []string {
	return []string{t.Title, t.Instructor, t.Location}
}

func NotificationFields(n domain.Notification) []string {
	return []string{n.Title, n.Message}
}

func LibraryFields(l domain.Library) []string {
	return []string{l.Name, l.Description}
}
