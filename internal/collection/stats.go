package collection

// CountBy partitions items by a categorical key and counts each bucket.
// Summary counters are always computed over the unfiltered raw collection,
// never over the currently displayed view.
func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, item := range items {
		out[key(item)]++
	}
	return out
}

// Count returns how many items satisfy the predicate. A nil predicate
// counts everything.
func Count[T any](items []T, pred Predicate[T]) int {
	if pred == nil {
		return len(items)
	}
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Sum accumulates a numeric field over items.
func Sum[T any](items []T, field func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += field(item)
	}
	return total
}

// Average returns the mean of a numeric field, 0 for an empty collection.
func Average[T any](items []T, field func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, field) / float64(len(items))
}
