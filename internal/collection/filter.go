package collection

import "time"

// All is the sentinel filter value meaning "no constraint".
const All = "All"

// Predicate decides whether an item stays in the derived view.
// A nil Predicate imposes no constraint.
type Predicate[T any] func(T) bool

// Filter returns the ordered sub-sequence of items satisfying every
// non-nil predicate (logical AND). Input order is preserved and the
// input slice is never mutated. An empty input yields an empty view.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, p := range preds {
			if p != nil && !p(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Equals builds an exact-match predicate over a string field.
// Empty value or All short-circuits to "no constraint".
func Equals[T any](value string, field func(T) string) Predicate[T] {
	if value == "" || value == All {
		return nil
	}
	return func(item T) bool { return field(item) == value }
}

// DateRange is an inclusive [Start, End] constraint. A zero bound is open.
// End is normalized to the end of its day, so a range given as plain dates
// includes everything that happened on the End date.
type DateRange struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(endOfDay(r.End)) {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// Within builds a date-range predicate over a time field.
// An unset range imposes no constraint.
func Within[T any](r DateRange, field func(T) time.Time) Predicate[T] {
	if r.IsZero() {
		return nil
	}
	return func(item T) bool { return r.Contains(field(item)) }
}
