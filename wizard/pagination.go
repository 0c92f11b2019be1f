package wizard

// PageSize is how many pool numbers fit one selector page.
const PageSize = 5

// PageCount returns the number of pages needed for n items.
func PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// ClampPage bounds a requested page to [0, PageCount-1].
func ClampPage(page, total int) int {
	if page < 0 {
		return 0
	}
	if max := PageCount(total) - 1; page > max && max >= 0 {
		return max
	}
	return page
}

// Page slices one fixed-size page out of a pool view.
func Page(entries []PoolEntry, page int) []PoolEntry {
	start := page * PageSize
	if start >= len(entries) || start < 0 {
		return nil
	}
	end := start + PageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}
