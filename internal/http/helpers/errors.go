package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dropDatabas3/certero/internal/pki"
	"github.com/dropDatabas3/certero/internal/store/core"
)

// Standard Error Responses

var (
	ErrInvalidJSON         = &HTTPError{Code: "invalid_json", Message: "Invalid JSON format", Status: http.StatusBadRequest}
	ErrBadRequest          = &HTTPError{Code: "bad_request", Message: "Bad request", Status: http.StatusBadRequest}
	ErrUnauthorized        = &HTTPError{Code: "unauthorized", Message: "Unauthorized", Status: http.StatusUnauthorized}
	ErrNotFound            = &HTTPError{Code: "not_found", Message: "Not found", Status: http.StatusNotFound}
	ErrConflict            = &HTTPError{Code: "conflict", Message: "Resource already exists", Status: http.StatusConflict}
	ErrUnprocessable       = &HTTPError{Code: "unprocessable", Message: "Cannot process certificate material", Status: http.StatusUnprocessableEntity}
	ErrInternalServerError = &HTTPError{Code: "internal_error", Message: "Internal server error", Status: http.StatusInternalServerError}
)

// HTTPError representa un error estándar del API.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Status  int    `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// WithDetail devuelve una copia del error con detalle específico.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Detail:  detail,
		Status:  e.Status,
	}
}

// WriteError serializa el error al response writer.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = ErrInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}

// MapError traduce errores de dominio a errores HTTP.
// Cualquier error no reconocido cae en 500 sin filtrar detalle interno.
func MapError(err error) *HTTPError {
	var (
		parseErr  *pki.ParseError
		keyErr    *pki.UnsupportedKeyTypeError
		algErr    *pki.UnsupportedAlgorithmError
		extErr    *pki.ExtensionNotFoundError
		httpError *HTTPError
	)
	switch {
	case errors.As(err, &httpError):
		return httpError
	case core.IsNotFound(err):
		return ErrNotFound
	case core.IsConflict(err):
		return ErrConflict
	case errors.As(err, &parseErr):
		return ErrBadRequest.WithDetail(parseErr.Error())
	case errors.As(err, &keyErr):
		return ErrBadRequest.WithDetail(keyErr.Error())
	case errors.As(err, &algErr):
		return ErrUnprocessable.WithDetail(algErr.Error())
	case errors.As(err, &extErr):
		return ErrNotFound.WithDetail(extErr.Error())
	default:
		return ErrInternalServerError
	}
}

// WriteJSON: respuesta JSON estándar
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ReadJSON decodifica JSON de forma tolerante (no falla por campos
// desconocidos). Valida Content-Type y limita el body a 1MB.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.Contains(ct, "application/json") {
		WriteError(w, ErrInvalidJSON.WithDetail("Content-Type debe ser application/json"))
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		WriteError(w, ErrInvalidJSON)
		return false
	}
	return true
}
