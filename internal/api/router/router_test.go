package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winestore/internal/api/router"
	"winestore/internal/app"
	"winestore/internal/domain"
	"winestore/internal/pkg/logger"
	"winestore/internal/pkg/middleware"
	"winestore/internal/pkg/token"
	"winestore/internal/repository/memory"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	log := logger.NewNop()
	opts.Logger = log
	if opts.CORSAllowedOrigins == nil {
		opts.CORSAllowedOrigins = []string{"*"}
	}
	handlers := app.NewHandlers(app.MemoryRepositories(memory.NewStore()), log)
	srv := httptest.NewServer(router.NewRouter(handlers, opts))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func seedCatalog(t *testing.T, srv *httptest.Server) {
	t.Helper()
	for _, path := range []string{"/v1/winery/create", "/v1/variety/create", "/v1/type/create"} {
		name := map[string]string{
			"/v1/winery/create":  "Cono Sur",
			"/v1/variety/create": "Carmenere",
			"/v1/type/create":    "Red",
		}[path]
		resp, body := do(t, srv, http.MethodPost, path, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		assert.Equal(t, 1, *decode[domain.WineryDTO](t, body).ID)
	}
}

func reserva() map[string]interface{} {
	return map[string]interface{}{
		"name": "Reserva", "description": "Encorpado", "image": "reserva.png",
		"year": 2019, "price": 12.5, "stock": 40,
		"idWinery": 1, "idVariety": 1, "idType": 1,
	}
}

func TestPingAndHealth(t *testing.T) {
	srv := newServer(t, router.Options{Version: "test"})

	resp, body := do(t, srv, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp, body = do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode[map[string]interface{}](t, body)["status"])
}

func TestHealth_Unhealthy(t *testing.T) {
	srv := newServer(t, router.Options{Health: func(_ context.Context) error { return assert.AnError }})

	resp, _ := do(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSwaggerDoc(t *testing.T) {
	srv := newServer(t, router.Options{})

	resp, body := do(t, srv, http.MethodGet, "/swagger/doc.json", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/product/random")
}

// Vinícola, variedade e tipo criados; o produto é lido como projeção com os nomes.
func TestScenario_ProductProjection(t *testing.T) {
	srv := newServer(t, router.Options{})
	seedCatalog(t, srv)

	resp, body := do(t, srv, http.MethodPost, "/v1/product/create", reserva())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[domain.ProductDTO](t, body)
	assert.Equal(t, 1, *created.ID)
	assert.Equal(t, "Reserva", *created.Name)

	resp, body = do(t, srv, http.MethodGet, "/v1/product/id/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	proj := decode[domain.ProductProjection](t, body)
	assert.Equal(t, domain.ProductProjection{
		ID: 1, Name: "Reserva", Description: "Encorpado", Image: "reserva.png",
		Year: 2019, Price: 12.5, Stock: 40,
		WineryName: "Cono Sur", VarietyName: "Carmenere", TypeName: "Red",
	}, proj)

	resp, body = do(t, srv, http.MethodGet, "/v1/product/winery/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.ProductProjection](t, body), 1)

	resp, _ = do(t, srv, http.MethodGet, "/v1/product/variety/2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/v1/product/random", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.ProductProjection](t, body), 1)
}

func TestProduct_MissingReference(t *testing.T) {
	srv := newServer(t, router.Options{})
	seedCatalog(t, srv)

	p := reserva()
	p["idType"] = 9
	resp, body := do(t, srv, http.MethodPost, "/v1/product/create", p)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := decode[domain.ErrorResponse](t, body)
	assert.Equal(t, "NOT_FOUND", errBody.Category)
	assert.Contains(t, errBody.Message, "Tipo não existe (ID: 9)")

	resp, body = do(t, srv, http.MethodGet, "/v1/product/all", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))
}

func TestProduct_UpdateAndDelete(t *testing.T) {
	srv := newServer(t, router.Options{})
	seedCatalog(t, srv)
	resp, _ := do(t, srv, http.MethodPost, "/v1/product/create", reserva())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	p := reserva()
	p["id"] = 1
	p["price"] = 15.0
	resp, body := do(t, srv, http.MethodPut, "/v1/product/update", p)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, 15.0, *decode[domain.ProductDTO](t, body).Price)

	p["id"] = 42
	resp, _ = do(t, srv, http.MethodPut, "/v1/product/update", p)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/v1/winery/delete/1", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/v1/product/delete/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodGet, "/v1/product/id/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodDelete, "/v1/product/delete/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/v1/product/random", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadRequests(t *testing.T) {
	srv := newServer(t, router.Options{})

	resp, body := do(t, srv, http.MethodGet, "/v1/winery/id/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", decode[domain.ErrorResponse](t, body).Category)

	resp, body = do(t, srv, http.MethodPost, "/v1/order/create", map[string]interface{}{"idCustomer": 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[domain.ErrorResponse](t, body).Message, "shippingAddress")

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/type/create", bytes.NewBufferString(`{"name":`))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

// Pedido criado e linha de pedido aceita; linha para pedido inexistente é 404.
func TestScenario_OrderDetails(t *testing.T) {
	srv := newServer(t, router.Options{})
	seedCatalog(t, srv)
	resp, _ := do(t, srv, http.MethodPost, "/v1/product/create", reserva())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, srv, http.MethodPost, "/v1/order/create", map[string]interface{}{
		"idCustomer": 5, "amount": 99.90, "shippingAddress": "Main St 1", "orderEmail": "a@b.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	orderID := *decode[domain.OrderDTO](t, body).ID

	resp, body = do(t, srv, http.MethodPost, "/v1/order-details/create", map[string]interface{}{
		"idOrder": orderID, "idProduct": 1, "price": 12.5, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	line := decode[domain.OrderDetailsDTO](t, body)
	assert.Equal(t, orderID, *line.IDOrder)

	resp, body = do(t, srv, http.MethodPost, "/v1/order-details/create", map[string]interface{}{
		"idOrder": 999, "idProduct": 1, "price": 12.5, "quantity": 2,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[domain.ErrorResponse](t, body).Message, "Pedido não existe (ID: 999)")

	resp, body = do(t, srv, http.MethodGet, "/v1/order-details/all", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.OrderDetailsDTO](t, body), 1)
}

func TestWriteGuard(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	srv := newServer(t, router.Options{
		WriteGuard: func(next http.Handler) http.Handler {
			return middleware.Auth(tokens)(middleware.RequireRole("admin")(next))
		},
	})

	resp, _ := do(t, srv, http.MethodPost, "/v1/winery/create", map[string]string{"name": "Cono Sur"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/v1/winery/all", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	signed, err := tokens.GenerateToken("ops", "admin")
	require.NoError(t, err)
	resp, _ = do(t, srv, http.MethodPost, "/v1/winery/create", map[string]string{"name": "Cono Sur"}, "Authorization", "Bearer "+signed)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	srv := newServer(t, router.Options{RateLimit: middleware.LocalRateLimiter(1, time.Hour)})

	resp, _ := do(t, srv, http.MethodGet, "/v1/type/all", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodGet, "/v1/type/all", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	srv := newServer(t, router.Options{})

	resp, body := do(t, srv, http.MethodGet, "/v2/nada", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[domain.ErrorResponse](t, body).Category)
}
