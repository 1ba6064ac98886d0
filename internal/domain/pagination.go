package domain

import "strings"

// Pagination selects one page of a user's reservations. Sort names a column, optionally
// prefixed with "-" for descending order.
type Pagination struct {
	Page     int
	PageSize int
	Sort     string
}

func (p Pagination) SortColumn() string {
	return strings.TrimPrefix(p.Sort, "-")
}

func (p Pagination) SortDirection() string {
	if strings.HasPrefix(p.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Metadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

// NewMetadata describes the page of a listing holding totalRecords rows. An empty listing
// still has one page.
func NewMetadata(totalRecords int, p Pagination) *Metadata {
	lastPage := max((totalRecords+p.PageSize-1)/p.PageSize, 1)

	return &Metadata{
		CurrentPage:  p.Page,
		FirstPage:    1,
		LastPage:     lastPage,
		PageSize:     p.PageSize,
		TotalRecords: totalRecords,
	}
}
