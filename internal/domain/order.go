package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Order selects a read-side view of a workout log.
type Order int

const (
	// InsertionOrder is the stored order, oldest entry first.
	InsertionOrder Order = iota
	// Ascending sorts by (date, created_at), oldest first.
	Ascending
	// Descending sorts by (date, created_at), newest first.
	Descending
)

// ParseOrder maps the names "insertion", "asc" and "desc" to an Order.
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "insertion":
		return InsertionOrder, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return InsertionOrder, invalid("order", fmt.Sprintf("%q is not one of insertion, asc, desc", name))
	}
}

// SortWorkouts returns a sorted copy; the input slice is never reordered.
func SortWorkouts(workouts []Workout, order Order) []Workout {
	out := slices.Clone(workouts)
	if out == nil {
		out = []Workout{}
	}
	switch order {
	case Ascending:
		slices.SortStableFunc(out, CompareWorkouts)
	case Descending:
		slices.SortStableFunc(out, func(a, b Workout) int { return CompareWorkouts(b, a) })
	}
	return out
}

// CompareWorkouts orders by date, then by creation time.
func CompareWorkouts(a, b Workout) int {
	if c := strings.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	ta, errA := ParseTimestamp(a.CreatedAt)
	tb, errB := ParseTimestamp(b.CreatedAt)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	return strings.Compare(a.CreatedAt, b.CreatedAt)
}
