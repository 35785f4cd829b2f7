package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest guarda a página solicitada (base 1)
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize aplica os valores padrão e limita o tamanho da página
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() uint64 {
	n := p.Normalize()
	return uint64((n.Page - 1) * n.PageSize)
}

func (p PageRequest) Limit() uint64 {
	return uint64(p.Normalize().PageSize)
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Paginated[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewPaginated[T any](items []T, page PageRequest, total int) *Paginated[T] {
	page = page.Normalize()
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + page.PageSize - 1) / page.PageSize
	}

	return &Paginated[T]{
		Items: items,
		Pagination: Pagination{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
