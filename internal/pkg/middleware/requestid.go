package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	RequestIDKey ContextKey = iota
	ClaimsKey
)

// RequestIDHeader é o header que carrega o ID da requisição.
const RequestIDHeader = "X-Request-ID"

// GetRequestID extrai o ID da requisição do contexto ("" quando ausente).
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestID propaga o X-Request-ID recebido ou gera um novo UUID, anexando-o
// ao contexto e ao header de resposta.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
