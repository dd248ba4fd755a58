package question

import "strconv"

// Paginate returns the 1-indexed page of items. Pages past the end are empty.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	if page-1 > len(items)/QuestionsPerPage {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}

// ParsePage reads a ?page value, falling back to 1 when absent, non-numeric or below 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
