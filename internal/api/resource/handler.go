// Package resource expõe via HTTP as entidades que seguem o CRUD padrão
// (vinícola, variedade, tipo, pedido e detalhe de pedido).
package resource

import (
	"context"
	"net/http"

	"winestore/internal/api/response"
	"winestore/internal/pkg/logger"
)

// Service é o contrato do crud.Service visto pelo Handler.
type Service[D any] interface {
	List(ctx context.Context) ([]D, error)
	GetByID(ctx context.Context, id int) (D, error)
	Create(ctx context.Context, dto D) (D, error)
	Update(ctx context.Context, dto D) (D, error)
	Delete(ctx context.Context, id int) error
}

// Handler atende as cinco rotas de uma entidade.
type Handler[D any] struct {
	Service Service[D]
	Logger  logger.Logger
}

func NewHandler[D any](svc Service[D], log logger.Logger) *Handler[D] {
	return &Handler[D]{Service: svc, Logger: log}
}

// GetAllHandler atende GET /v1/{r}/all. Lista vazia responde 200 com [].
func (h *Handler[D]) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, items)
}

// GetByIDHandler atende GET /v1/{r}/id/{id}.
func (h *Handler[D]) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	item, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, item)
}

// CreateHandler atende POST /v1/{r}/create.
func (h *Handler[D]) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var dto D
	if err := response.Decode(r, &dto); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, created)
}

// UpdateHandler atende PUT /v1/{r}/update; o ID vem no corpo.
func (h *Handler[D]) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var dto D
	if err := response.Decode(r, &dto); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), dto)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteHandler atende DELETE /v1/{r}/delete/{id}.
func (h *Handler[D]) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.NoContent(w)
}
