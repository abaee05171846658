package response

import "cosplay-booking/pkg/utils"

// PaginatedResponse wraps one page of a listing (catalogue, bookings,
// wallet history, escrows, notifications).
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := utils.CalculateTotalPages(total, perPage)

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}

// Paginate maps entity rows to their response shape and wraps them as a page.
func Paginate[E, T any](rows []*E, toResponse func(*E) T, page, perPage int, total int64) *PaginatedResponse[T] {
	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = toResponse(row)
	}
	return NewPaginatedResponse(out, page, perPage, total)
}
