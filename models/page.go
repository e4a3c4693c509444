package models

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 50
)

// PageRequest is a clamped pagination request.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset is the number of records skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// VideoPage is one page of videos plus pagination metadata.
type VideoPage struct {
	Items   []*Video `json:"items"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
	Total   int      `json:"total"`
	Pages   int      `json:"pages"`
}

// PageCount returns ceil(total / perPage), or 0 when there is nothing to show.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
