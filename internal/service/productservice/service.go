package productservice

import (
	"context"
	"fmt"

	"winestore/internal/domain"
	apperror "winestore/internal/errors"
	"winestore/internal/mapper"
	"winestore/internal/pkg/logger"
	"winestore/internal/service/crud"
)

// RandomSampleSize é o máximo de produtos devolvidos por RandomSample.
const RandomSampleSize = 8

const resource = "Produto"

// ProductRepository define o contrato que este Serviço espera da camada de
// persistência: o CRUD da entidade mais as consultas de projeção.
type ProductRepository interface {
	crud.Repository[domain.Product]

	FindAllProjections(ctx context.Context) ([]domain.ProductProjection, error)
	FindProjectionByID(ctx context.Context, id int) (domain.ProductProjection, error)
	FindProjectionsByWineryID(ctx context.Context, id int) ([]domain.ProductProjection, error)
	FindProjectionsByVarietyID(ctx context.Context, id int) ([]domain.ProductProjection, error)
	FindProjectionsByTypeID(ctx context.Context, id int) ([]domain.ProductProjection, error)
	FindRandomProjections(ctx context.Context, limit int) ([]domain.ProductProjection, error)
}

// References agrupa os repositórios usados para resolver idWinery, idVariety e idType.
type References struct {
	Wineries  crud.Finder[domain.Winery]
	Varieties crud.Finder[domain.Variety]
	Types     crud.Finder[domain.Type]
}

// Service expõe as leituras por projeção e delega as escritas ao crud.Service.
type Service struct {
	repo   ProductRepository
	writes *crud.Service[domain.Product, domain.ProductDTO]
	logger logger.Logger
}

// NewService cria o serviço de Produto.
func NewService(repo ProductRepository, refs References, log logger.Logger) *Service {
	binding := crud.Binding[domain.Product, domain.ProductDTO]{
		Resource: resource,
		ID:       func(d domain.ProductDTO) *int { return d.ID },
		ToDTO:    domain.ProductToDTO,
		ToEntity: func(ctx context.Context, id int, d domain.ProductDTO) (domain.Product, error) {
			winery, err := crud.Resolve(ctx, refs.Wineries, "Vinícola", mapper.Value(d.IDWinery))
			if err != nil {
				return domain.Product{}, err
			}
			variety, err := crud.Resolve(ctx, refs.Varieties, "Variedade", mapper.Value(d.IDVariety))
			if err != nil {
				return domain.Product{}, err
			}
			wineType, err := crud.Resolve(ctx, refs.Types, "Tipo", mapper.Value(d.IDType))
			if err != nil {
				return domain.Product{}, err
			}
			return domain.ProductFromDTO(id, d, winery, variety, wineType), nil
		},
	}

	return &Service{
		repo:   repo,
		writes: crud.NewService[domain.Product, domain.ProductDTO](repo, binding, log),
		logger: log,
	}
}

// List devolve a projeção de todos os produtos. Falhas viram NotFound; lista vazia é sucesso.
func (s *Service) List(ctx context.Context) ([]domain.ProductProjection, error) {
	projections, err := s.repo.FindAllProjections(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar produtos.", err)
		return nil, apperror.NewNotFoundError("Falha ao buscar registros de Produto.")
	}
	return nonNil(projections), nil
}

// GetByID devolve a projeção do produto.
func (s *Service) GetByID(ctx context.Context, id int) (domain.ProductProjection, error) {
	projection, err := s.repo.FindProjectionByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.ProductProjection{}, apperror.NewNotFoundError(fmt.Sprintf("%s não existe (ID: %d).", resource, id))
		}
		s.logger.Error("Falha ao buscar produto.", err)
		return domain.ProductProjection{}, apperror.NewInternalError("Falha interna ao buscar Produto.", err)
	}
	return projection, nil
}

func (s *Service) Create(ctx context.Context, dto domain.ProductDTO) (domain.ProductDTO, error) {
	return s.writes.Create(ctx, dto)
}

func (s *Service) Update(ctx context.Context, dto domain.ProductDTO) (domain.ProductDTO, error) {
	return s.writes.Update(ctx, dto)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.writes.Delete(ctx, id)
}

// ByWinery devolve os produtos da vinícola; nenhum resultado é NotFound.
func (s *Service) ByWinery(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	return s.filtered(ctx, "vinícola", id, s.repo.FindProjectionsByWineryID)
}

// ByVariety devolve os produtos da variedade; nenhum resultado é NotFound.
func (s *Service) ByVariety(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	return s.filtered(ctx, "variedade", id, s.repo.FindProjectionsByVarietyID)
}

// ByType devolve os produtos do tipo; nenhum resultado é NotFound.
func (s *Service) ByType(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	return s.filtered(ctx, "tipo", id, s.repo.FindProjectionsByTypeID)
}

// RandomSample devolve até RandomSampleSize produtos em ordem aleatória.
// Um catálogo vazio é NotFound.
func (s *Service) RandomSample(ctx context.Context) ([]domain.ProductProjection, error) {
	projections, err := s.repo.FindRandomProjections(ctx, RandomSampleSize)
	if err != nil {
		s.logger.Error("Falha ao sortear produtos.", err)
		return nil, apperror.NewInternalError("Falha interna ao sortear produtos.", err)
	}
	if len(projections) == 0 {
		return nil, apperror.NewNotFoundError("Nenhum produto cadastrado.")
	}
	return projections, nil
}

type projectionQuery func(ctx context.Context, id int) ([]domain.ProductProjection, error)

func (s *Service) filtered(ctx context.Context, label string, id int, query projectionQuery) ([]domain.ProductProjection, error) {
	projections, err := query(ctx, id)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Falha ao buscar produtos por %s.", label), err)
		return nil, apperror.NewInternalError(fmt.Sprintf("Falha interna ao buscar produtos por %s.", label), err)
	}
	if len(projections) == 0 {
		s.logger.Debug("Filtro sem resultados.", map[string]interface{}{"filter": label, "id": id})
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Nenhum produto encontrado (filtro: %s, ID: %d).", label, id))
	}
	return projections, nil
}

func nonNil(p []domain.ProductProjection) []domain.ProductProjection {
	if p == nil {
		return []domain.ProductProjection{}
	}
	return p
}
