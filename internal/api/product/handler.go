package product

import (
	"context"
	"net/http"

	"winestore/internal/api/response"
	"winestore/internal/domain"
	"winestore/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	List(ctx context.Context) ([]domain.ProductProjection, error)
	GetByID(ctx context.Context, id int) (domain.ProductProjection, error)
	Create(ctx context.Context, dto domain.ProductDTO) (domain.ProductDTO, error)
	Update(ctx context.Context, dto domain.ProductDTO) (domain.ProductDTO, error)
	Delete(ctx context.Context, id int) error
	ByWinery(ctx context.Context, id int) ([]domain.ProductProjection, error)
	ByVariety(ctx context.Context, id int) ([]domain.ProductProjection, error)
	ByType(ctx context.Context, id int) ([]domain.ProductProjection, error)
	RandomSample(ctx context.Context) ([]domain.ProductProjection, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// GetAllHandler lida com a requisição GET /v1/product/all.
// @Summary Lista todos os produtos
// @Description Retorna a projeção de todos os produtos (nomes de vinícola, variedade e tipo).
// @Tags product
// @Produce json
// @Success 200 {array} domain.ProductProjection "Lista de produtos"
// @Failure 404 {object} domain.ErrorResponse "Falha ao buscar registros"
// @Router /product/all [get]
func (h *Handler) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, products)
}

// GetByIDHandler lida com a requisição GET /v1/product/id/{id}.
// @Summary Obtém um produto por ID
// @Tags product
// @Produce json
// @Param id path int true "ID do Produto"
// @Success 200 {object} domain.ProductProjection "Produto encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /product/id/{id} [get]
func (h *Handler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.IDParam(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	product, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, product)
}

// RandomHandler lida com a requisição GET /v1/product/random.
// @Summary Amostra aleatória de produtos
// @Description Até 8 produtos em ordem aleatória.
// @Tags product
// @Produce json
// @Success 200 {array} domain.ProductProjection "Amostra"
// @Failure 404 {object} domain.ErrorResponse "Nenhum produto cadastrado"
// @Router /product/random [get]
func (h *Handler) RandomHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.RandomSample(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, products)
}

// ByWineryHandler lida com a requisição GET /v1/product/winery/{id}.
// @Summary Produtos de uma vinícola
// @Tags product
// @Produce json
// @Param id path int true "ID da Vinícola"
// @Success 200 {array} domain.ProductProjection "Produtos"
// @Failure 404 {object} domain.ErrorResponse "Nenhum produto encontrado"
// @Router /product/winery/{id} [get]
func (h *Handler) ByWineryHandler(w http.ResponseWriter, r *http.Request) {
	h.filtered(w, r, h.Service.ByWinery)
}

// ByVarietyHandler lida com a requisição GET /v1/product/variety/{id}.
// @Summary Produtos de uma variedade
// @Tags product
// @Produce json
// @Param id path int true "ID da Variedade"
// @Success 200 {array} domain.ProductProjection "Produtos"
// @Failure 404 {object} domain.ErrorResponse "Nenhum produto encontrado"
// @Router /product/variety/{id} [get]
func (h *Handler) ByVarietyHandler(w http.ResponseWriter, r *http.Request) {
	h.filtered(w, r, h.Service.ByVariety)
}

// ByTypeHandler lida com a requisição GET /v1/product/type/{id}.
// @Summary Produtos de um tipo
// @Tags product
// @Produce json
// @Param id path int true "ID do Tipo"
// @Success 200 {array} domain.ProductProjection "Produtos"
// @Failure 404 {object} domain.ErrorResponse "Nenhum produto encontrado"
// @Router /product/type/{id} [get]
func (h *Handler) ByTypeHandler(w http.ResponseWriter, r *http.Request) {
	h.filtered(w, r, h.Service.ByType)
}

func (h *Handler) filtered(w http.ResponseWriter, r *http.Request, query func(context.Context, int) ([]domain.ProductProjection, error)) {
	id, err := response.IDParam(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	products, err := query(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, products)
}

// CreateHandler lida com a requisição POST /v1/product/create.
// @Summary Cria um novo produto
// @Tags product
// @Accept json
// @Produce json
// @Param product body domain.ProductDTO true "Dados do produto"
// @Success 201 {object} domain.ProductDTO "Produto criado"
// @Failure 400 {object} domain.ErrorResponse "Campos obrigatórios ausentes"
// @Failure 404 {object} domain.ErrorResponse "Referência inexistente"
// @Security BearerAuth
// @Router /product/create [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var dto domain.ProductDTO
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

// UpdateHandler lida com a requisição PUT /v1/product/update.
// @Summary Atualiza um produto
// @Description Substitui todos os campos; o ID vem no corpo.
// @Tags product
// @Accept json
// @Produce json
// @Param product body domain.ProductDTO true "Dados do produto"
// @Success 200 {object} domain.ProductDTO "Produto atualizado"
// @Failure 400 {object} domain.ErrorResponse "Campos obrigatórios ausentes"
// @Failure 404 {object} domain.ErrorResponse "Produto ou referência inexistente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security BearerAuth
// @Router /product/update [put]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var dto domain.ProductDTO
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

// DeleteHandler lida com a requisição DELETE /v1/product/delete/{id}.
// @Summary Remove um produto
// @Tags product
// @Param id path int true "ID do Produto"
// @Success 204 "Removido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security BearerAuth
// @Router /product/delete/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
