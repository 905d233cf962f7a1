package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/dropDatabas3/certero/internal/http/helpers"
	"github.com/dropDatabas3/certero/internal/observability/logger"
	"github.com/dropDatabas3/certero/internal/pki"
)

// KeyService es la porción del service que genera material privado.
type KeyService interface {
	GenerateKey(ctx context.Context, keyType pki.KeyType) (string, error)
}

// KeysController maneja las rutas /v1/keys
type KeysController struct {
	service KeyService
}

func NewKeysController(service KeyService) *KeysController {
	return &KeysController{service: service}
}

type generateKeyRequest struct {
	KeyType string `json:"key_type"`
}

type generateKeyResponse struct {
	KeyType    string `json:"key_type"`
	PrivateKey string `json:"private_key"`
}

type keyTypeInfo struct {
	KeyType   string `json:"key_type"`
	Curve     string `json:"curve,omitempty"`
	Available bool   `json:"available"`
}

// Generate maneja POST /v1/keys. La clave generada viaja en la respuesta
// y no se persiste en ningún lado.
func (c *KeysController) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("KeysController.Generate"))

	var req generateKeyRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	keyType := pki.KeyType(strings.TrimSpace(req.KeyType))
	if keyType == "" {
		helpers.WriteError(w, helpers.ErrBadRequest.WithDetail("key_type requerido"))
		return
	}

	pemKey, err := c.service.GenerateKey(ctx, keyType)
	if err != nil {
		log.Warn("key generation rejected", logger.KeyType(string(keyType)), logger.Err(err))
		helpers.WriteError(w, helpers.MapError(err))
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, generateKeyResponse{
		KeyType:    string(keyType),
		PrivateKey: pemKey,
	})
}

// Types maneja GET /v1/keys/types: el catálogo completo en orden estable,
// marcando qué entradas tienen curva implementada en esta plataforma.
func (c *KeysController) Types(w http.ResponseWriter, r *http.Request) {
	items := make([]keyTypeInfo, 0, len(pki.KeyTypes))
	for _, kt := range pki.KeyTypes {
		items = append(items, keyTypeInfo{
			KeyType:   string(kt),
			Curve:     pki.CurveName(kt),
			Available: pki.CurveAvailable(kt),
		})
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
