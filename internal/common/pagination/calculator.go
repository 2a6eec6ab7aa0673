package pagination

// CalculateOffset maps a 1-based page to a SQL OFFSET.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages is ceil(total/limit), with an empty collection still
// counting as one page so the frontend always has a page to render.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
