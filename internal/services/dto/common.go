package dto

// Pagination - метаданные страницы в ответах списков
type Pagination struct {
	CurrentPage int   `json:"pagina_atual"`
	PerPage     int   `json:"por_pagina"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_paginas"`
	HasNext     bool  `json:"tem_proxima"`
	HasPrev     bool  `json:"tem_anterior"`
}

// PaginatedResponse - общий конверт для списков
type PaginatedResponse[T any] struct {
	Data       []T        `json:"dados"`
	Pagination Pagination `json:"paginacao"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

func NewPaginatedResponse[T any](items []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResponse[T]{Data: items, Pagination: NewPagination(page, perPage, total)}
}

// PageQuery - общие query-параметры пагинации
type PageQuery struct {
	Page    int `form:"pagina" validate:"omitempty,min=1"`
	PerPage int `form:"por_pagina" validate:"omitempty,min=1,max=50"`
}

// MessageResponse - ответ без данных
type MessageResponse struct {
	Message string `json:"mensagem"`
}

// ReportRequest - жалоба на пост или комментарий
type ReportRequest struct {
	Reason      string  `json:"motivo" validate:"required,min=3,max=100"`
	Description *string `json:"descricao" validate:"omitempty,max=1000"`
}
