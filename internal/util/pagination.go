package util

// Slice cuts out the 1-based page of the given size. Out-of-range pages
// return whatever overlap exists, possibly nothing.
func Slice[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
