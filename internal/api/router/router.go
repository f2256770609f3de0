package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "winestore/internal/api/docs"
	"winestore/internal/api/product"
	"winestore/internal/api/resource"
	"winestore/internal/domain"
	"winestore/internal/pkg/logger"
	"winestore/internal/pkg/middleware"
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Product      *product.Handler
	Winery       *resource.Handler[domain.WineryDTO]
	Variety      *resource.Handler[domain.VarietyDTO]
	Type         *resource.Handler[domain.TypeDTO]
	Order        *resource.Handler[domain.OrderDTO]
	OrderDetails *resource.Handler[domain.OrderDetailsDTO]
}

// Options configura a pilha de middlewares.
type Options struct {
	Logger             logger.Logger
	CORSAllowedOrigins []string
	// RateLimit, quando não nil, é aplicado a todas as rotas /v1.
	RateLimit func(http.Handler) http.Handler
	// WriteGuard, quando não nil, protege create/update/delete (e.g., JWT).
	WriteGuard func(http.Handler) http.Handler
	// Health verifica as dependências (banco, cache) para /health.
	Health func(ctx context.Context) error
	Version string
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(middleware.Recoverer(opts.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", PingHandler)
	r.Get("/health", healthHandler(opts))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Rota não encontrada.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Método não permitido.")
	})

	r.Route("/v1", func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}

		r.Route("/product", func(r chi.Router) {
			r.Get("/all", h.Product.GetAllHandler)
			r.Get("/id/{id}", h.Product.GetByIDHandler)
			r.Get("/random", h.Product.RandomHandler)
			r.Get("/winery/{id}", h.Product.ByWineryHandler)
			r.Get("/variety/{id}", h.Product.ByVarietyHandler)
			r.Get("/type/{id}", h.Product.ByTypeHandler)

			r.Group(func(r chi.Router) {
				guard(r, opts.WriteGuard)
				r.Post("/create", h.Product.CreateHandler)
				r.Put("/update", h.Product.UpdateHandler)
				r.Delete("/delete/{id}", h.Product.DeleteHandler)
			})
		})

		mount(r, "/winery", h.Winery, opts.WriteGuard)
		mount(r, "/variety", h.Variety, opts.WriteGuard)
		mount(r, "/type", h.Type, opts.WriteGuard)
		mount(r, "/order", h.Order, opts.WriteGuard)
		mount(r, "/order-details", h.OrderDetails, opts.WriteGuard)
	})

	return r
}

func guard(r chi.Router, mw func(http.Handler) http.Handler) {
	if mw != nil {
		r.Use(mw)
	}
}

// mount registra as cinco rotas CRUD de uma entidade sob path.
func mount[D any](r chi.Router, path string, h *resource.Handler[D], writeGuard func(http.Handler) http.Handler) {
	r.Route(path, func(r chi.Router) {
		r.Get("/all", h.GetAllHandler)
		r.Get("/id/{id}", h.GetByIDHandler)

		r.Group(func(r chi.Router) {
			guard(r, writeGuard)
			r.Post("/create", h.CreateHandler)
			r.Put("/update", h.UpdateHandler)
			r.Delete("/delete/{id}", h.DeleteHandler)
		})
	})
}

// PingHandler responde "pong" para checagens de vida.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func healthHandler(opts Options) http.HandlerFunc {
	startTime := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		body := map[string]interface{}{
			"version": opts.Version,
			"uptime":  time.Since(startTime).String(),
		}

		if opts.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Health(ctx); err != nil {
				opts.Logger.Warn("Health check falhou.", map[string]interface{}{"error": err.Error()})
				status, code = "unhealthy", http.StatusServiceUnavailable
				body["error"] = err.Error()
			}
		}

		body["status"] = status
		render.Status(r, code)
		render.JSON(w, r, body)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, category, message string) {
	render.Status(r, status)
	render.JSON(w, r, domain.ErrorResponse{Code: status, Category: category, Message: message})
}
