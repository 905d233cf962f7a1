package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/certero/internal/http/helpers"
)

const claimsKey ctxKey = iota + 100

// WithClaims guarda las claims validadas en el contexto.
func WithClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims devuelve las claims del contexto, o nil si no hay.
func GetClaims(ctx context.Context) jwt.MapClaims {
	claims, _ := ctx.Value(claimsKey).(jwt.MapClaims)
	return claims
}

// Subject extrae el claim "sub" de las claims del contexto.
func Subject(ctx context.Context) string {
	claims := GetClaims(ctx)
	if claims == nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// RequireAuth valida Authorization: Bearer <JWT> firmado HS256 con el
// secreto compartido y guarda las claims en el contexto.
// Si el token es inválido o no está presente, responde 401.
func RequireAuth(secret []byte, issuer string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				helpers.WriteError(w, helpers.ErrUnauthorized.WithDetail("missing bearer token"))
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithExpirationRequired(),
			}
			if issuer != "" {
				opts = append(opts, jwt.WithIssuer(issuer))
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				return secret, nil
			}, opts...)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				helpers.WriteError(w, helpers.ErrUnauthorized.WithDetail("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
