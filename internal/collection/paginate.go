package collection

// TotalPages returns ceil(count/size), floored at 1 so an empty collection
// still renders as "Page 1 of 1" with navigation disabled.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage forces a 1-based page index into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page slices the 1-based page out of items. The result never holds more
// than size elements; concatenating all pages in order reconstructs items.
func Page[T any](items []T, page, size int) []T {
	if size <= 0 {
		return nil
	}
	page = ClampPage(page, TotalPages(len(items), size))
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
