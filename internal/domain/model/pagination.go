package model

import (
	"math"
	"strings"
)

const (
	// MaxLimit é o maior tamanho de página aceito; valores acima são reduzidos a ele
	MaxLimit = 100
	// MaxPage limita a página para que o offset nunca estoure
	MaxPage = 1_000_000
)

// Pagination acompanha toda resposta de listagem
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination calcula o total de páginas para o par page/limit
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// ListQuery descreve uma consulta paginada com busca textual
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Offset é o número de registros a pular; satura em vez de estourar
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// WithDefaults aplica página 1 e o limite padrão do recurso quando ausentes ou inválidos,
// e reduz page e limit aos máximos aceitos
func (q ListQuery) WithDefaults(defaultLimit int) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}
