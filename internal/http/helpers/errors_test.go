package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dropDatabas3/certero/internal/pki"
	"github.com/dropDatabas3/certero/internal/store/core"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", core.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("get: %w", core.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", core.ErrConflict, http.StatusConflict, "conflict"},
		{"parse", &pki.ParseError{What: "certificate", Err: errors.New("no PEM")}, http.StatusBadRequest, "bad_request"},
		{"key type", &pki.UnsupportedKeyTypeError{KeyType: "BOGUS"}, http.StatusBadRequest, "bad_request"},
		{"algorithm", &pki.UnsupportedAlgorithmError{Algorithm: "SHA256-RSA-PSS"}, http.StatusUnprocessableEntity, "unprocessable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			he := MapError(tc.err)
			if he.Status != tc.status {
				t.Fatalf("status = %d, esperaba %d", he.Status, tc.status)
			}
			if he.Code != tc.code {
				t.Fatalf("code = %q, esperaba %q", he.Code, tc.code)
			}
		})
	}
}

func TestMapErrorKeepsHTTPError(t *testing.T) {
	orig := ErrUnauthorized.WithDetail("token vencido")
	if got := MapError(orig); got != orig {
		t.Fatalf("un *HTTPError debe pasar intacto, llegó %+v", got)
	}
}
