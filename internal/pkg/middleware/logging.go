package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/render"

	"winestore/internal/domain"
	"winestore/internal/pkg/logger"
)

// responseWriter captura o status escrito pelo handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// Logging registra uma linha por requisição com método, rota, status e latência.
func Logging(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			log.Info("Requisição HTTP", map[string]interface{}{
				"request_id": GetRequestID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.statusCode,
				"latency_ms": time.Since(start).Milliseconds(),
				"client_ip":  r.RemoteAddr,
			})
		})
	}
}

// Recoverer converte panics em 500 com o corpo de erro padronizado.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recuperado.", fmt.Errorf("%v\n%s", rec, debug.Stack()))
					writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Ocorreu um erro inesperado.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, category, message string) {
	render.Status(r, status)
	render.JSON(w, r, domain.ErrorResponse{Code: status, Category: category, Message: message})
}
