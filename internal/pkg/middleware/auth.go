package middleware

import (
	"context"
	"net/http"
	"strings"

	"winestore/internal/pkg/token"
)

// Claims são os dados do token anexados ao contexto.
type Claims struct {
	Subject string
	Role    string
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Auth exige "Authorization: Bearer <token>" válido e anexa as claims ao contexto.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Token de autorização ausente ou malformado.")
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Token inválido ou expirado.")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, Claims{Subject: claims.Subject, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extrai as claims anexadas por Auth.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(Claims)
	return claims, ok
}

// RequireRole libera apenas tokens com uma das roles informadas. Deve rodar após Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Autorização necessária. Token não processado.")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, r, http.StatusForbidden, "FORBIDDEN", "Acesso negado. Você não tem a permissão necessária.")
		})
	}
}
