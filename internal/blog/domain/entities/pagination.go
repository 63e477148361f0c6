package entities

// Границы пагинации.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest - запрошенная страница.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset возвращает смещение (page-1)*limit.
func (r PageRequest) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.Limit
}

// Normalize подставляет значения по умолчанию и ограничивает limit.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	switch {
	case r.Limit < 1:
		r.Limit = DefaultLimit
	case r.Limit > MaxLimit:
		r.Limit = MaxLimit
	}
	return r
}

// Pagination - метаданные страницы.
type Pagination struct {
	CurrentPage     int
	TotalPages      int
	TotalCount      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPagination считает totalPages = ceil(total/limit) и флаги соседних страниц.
func NewPagination(r PageRequest, totalCount int) Pagination {
	totalPages := 0
	if r.Limit > 0 {
		totalPages = (totalCount + r.Limit - 1) / r.Limit
	}
	return Pagination{
		CurrentPage:     r.Page,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		HasNextPage:     r.Page < totalPages,
		HasPreviousPage: r.Page > 1,
	}
}
