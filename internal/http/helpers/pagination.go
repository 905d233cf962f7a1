package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/certero/internal/store/core"
)

const maxPageCount = 200

// ParsePagination arma los parámetros de paginado desde la query string.
// Valores ausentes o inválidos caen en los defaults (count=10, page=1);
// nunca devuelve error, la entrada del cliente no puede romper el listado.
func ParsePagination(r *http.Request) core.Pagination {
	p := core.DefaultPagination()
	q := r.URL.Query()

	if raw := q.Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Count = min(n, maxPageCount)
		}
	}
	if raw := q.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = n
		}
	}
	if dir := strings.ToLower(q.Get("sortDir")); dir == "asc" || dir == "desc" {
		p.SortDir = dir
	}
	if by := q.Get("sortBy"); by != "" {
		p.SortBy = by
	}
	p.Filter = q.Get("filter")

	return p
}
