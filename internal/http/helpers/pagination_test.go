package helpers

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/certificates", nil)
	p := ParsePagination(r)

	if p.Count != 10 || p.Page != 1 {
		t.Fatalf("defaults incorrectos: count=%d page=%d", p.Count, p.Page)
	}
	if p.SortDir != "" || p.SortBy != "" || p.Filter != "" {
		t.Fatalf("campos opcionales deberían quedar vacíos: %+v", p)
	}
}

func TestParsePaginationFull(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/certificates?count=25&page=3&sortDir=DESC&sortBy=not_after&filter=acme", nil)
	p := ParsePagination(r)

	if p.Count != 25 || p.Page != 3 {
		t.Fatalf("count/page: %+v", p)
	}
	if p.SortDir != "desc" {
		t.Fatalf("sortDir debería normalizarse a minúscula: %q", p.SortDir)
	}
	if p.SortBy != "not_after" || p.Filter != "acme" {
		t.Fatalf("sortBy/filter: %+v", p)
	}
}

func TestParsePaginationBadInput(t *testing.T) {
	// Valores inválidos caen en defaults, nunca fallan.
	r := httptest.NewRequest("GET", "/v1/certificates?count=zero&page=-4&sortDir=sideways", nil)
	p := ParsePagination(r)

	if p.Count != 10 || p.Page != 1 || p.SortDir != "" {
		t.Fatalf("entrada inválida no cayó en defaults: %+v", p)
	}
}

func TestParsePaginationCapsCount(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/certificates?count=99999", nil)
	if p := ParsePagination(r); p.Count != maxPageCount {
		t.Fatalf("count sin tope: %d", p.Count)
	}
}

func TestHTTPErrorWithDetail(t *testing.T) {
	base := ErrBadRequest
	det := base.WithDetail("body requerido")

	if base.Detail != "" {
		t.Fatal("WithDetail mutó el error base")
	}
	if det.Error() != "Bad request: body requerido" {
		t.Fatalf("mensaje: %q", det.Error())
	}
	if det.Status != base.Status || det.Code != base.Code {
		t.Fatalf("copia incompleta: %+v", det)
	}
}
