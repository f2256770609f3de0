// Package crud implementa o fluxo de orquestração comum a todas as entidades:
// validar campos obrigatórios, resolver referências, persistir e mapear de volta.
// Cada entidade fornece um Binding; o Produto reaproveita o mesmo fluxo para
// escrita e acrescenta suas consultas de projeção no productservice.
package crud

import (
	"context"
	"fmt"

	apperror "winestore/internal/errors"
	"winestore/internal/mapper"
	"winestore/internal/pkg/logger"
)

// Repository é o contrato mínimo de persistência de uma tabela.
// FindByID, Save (em update) e Delete devolvem apperror.NotFoundError quando a linha não existe.
type Repository[E any] interface {
	FindAll(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id int) (E, error)
	Save(ctx context.Context, entity E) (E, error)
	Delete(ctx context.Context, id int) error
}

// Finder é o que a resolução de referências precisa de outro repositório.
type Finder[E any] interface {
	FindByID(ctx context.Context, id int) (E, error)
}

// DTO é qualquer formato de transporte que sabe listar seus campos obrigatórios.
type DTO interface {
	RequiredFields() []mapper.Field
}

// Binding descreve uma entidade para o Service genérico.
type Binding[E any, D DTO] struct {
	// Resource nomeia a entidade nas mensagens (e.g., "Vinícola").
	Resource string
	// ID lê o identificador do DTO (nil quando ausente).
	ID func(D) *int
	// ToDTO converte a entidade persistida para o formato de transporte.
	ToDTO func(E) D
	// ToEntity monta a entidade com o id informado (0 na criação). É o ponto de
	// extensão para resolver referências; só é chamado após a validação.
	ToEntity func(ctx context.Context, id int, dto D) (E, error)
}

// Service orquestra List/GetByID/Create/Update/Delete para uma entidade.
type Service[E any, D DTO] struct {
	repo    Repository[E]
	binding Binding[E, D]
	logger  logger.Logger
}

// NewService cria o serviço genérico para o Binding informado.
func NewService[E any, D DTO](repo Repository[E], binding Binding[E, D], log logger.Logger) *Service[E, D] {
	return &Service[E, D]{repo: repo, binding: binding, logger: log}
}

// List devolve todas as linhas. Qualquer falha da camada inferior vira NotFound;
// a lista vazia é sucesso.
func (s *Service[E, D]) List(ctx context.Context) ([]D, error) {
	entities, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Falha ao listar %s.", s.binding.Resource), err)
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Falha ao buscar registros de %s.", s.binding.Resource))
	}
	return mapper.Map(entities, s.binding.ToDTO), nil
}

// GetByID devolve a linha mapeada ou NotFound.
func (s *Service[E, D]) GetByID(ctx context.Context, id int) (D, error) {
	var zero D
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, s.lookupError(err, id)
	}
	return s.binding.ToDTO(entity), nil
}

// Create valida, resolve referências e insere. Falha de persistência é
// reportada como BadRequest.
func (s *Service[E, D]) Create(ctx context.Context, dto D) (D, error) {
	var zero D
	if err := s.validate(dto); err != nil {
		return zero, err
	}

	entity, err := s.binding.ToEntity(ctx, 0, dto)
	if err != nil {
		return zero, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Falha ao inserir %s.", s.binding.Resource), err)
		return zero, apperror.NewBadRequestError("A requisição recebida não possui o formato correto.")
	}

	created := s.binding.ToDTO(saved)
	s.logger.Info(fmt.Sprintf("%s criado(a) com sucesso.", s.binding.Resource), map[string]interface{}{"id": mapper.Value(s.binding.ID(created))})
	return created, nil
}

// Update substitui todos os campos de uma linha existente (não é patch parcial).
func (s *Service[E, D]) Update(ctx context.Context, dto D) (D, error) {
	var zero D
	idPtr := s.binding.ID(dto)
	if idPtr == nil {
		s.logger.Warn("Atualização sem ID.", map[string]interface{}{"resource": s.binding.Resource})
		return zero, apperror.NewBadRequestError("O campo id é obrigatório para atualização.")
	}
	id := *idPtr

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return zero, s.lookupError(err, id)
	}

	if err := s.validate(dto); err != nil {
		return zero, err
	}

	entity, err := s.binding.ToEntity(ctx, id, dto)
	if err != nil {
		return zero, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		// A linha pode ter sido removida entre a checagem e a escrita.
		if apperror.IsNotFound(err) {
			return zero, err
		}
		s.logger.Error(fmt.Sprintf("Falha ao atualizar %s.", s.binding.Resource), err)
		return zero, apperror.NewInternalError(fmt.Sprintf("Falha interna ao atualizar %s.", s.binding.Resource), err)
	}

	s.logger.Info(fmt.Sprintf("%s atualizado(a) com sucesso.", s.binding.Resource), map[string]interface{}{"id": id})
	return s.binding.ToDTO(saved), nil
}

// Delete remove uma linha existente; não limpa dependentes.
func (s *Service[E, D]) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.lookupError(err, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.logger.Error(fmt.Sprintf("Falha ao remover %s.", s.binding.Resource), err)
		return apperror.NewInternalError(fmt.Sprintf("Falha interna ao remover %s.", s.binding.Resource), err)
	}

	s.logger.Info(fmt.Sprintf("%s removido(a) com sucesso.", s.binding.Resource), map[string]interface{}{"id": id})
	return nil
}

func (s *Service[E, D]) validate(dto D) error {
	if missing := mapper.Missing(dto.RequiredFields()...); len(missing) > 0 {
		s.logger.Warn("Requisição com campos obrigatórios ausentes.", map[string]interface{}{
			"resource": s.binding.Resource,
			"missing":  missing,
		})
		return apperror.NewBadRequestError(mapper.MissingMessage(missing))
	}
	return nil
}

func (s *Service[E, D]) lookupError(err error, id int) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFoundError(fmt.Sprintf("%s não existe (ID: %d).", s.binding.Resource, id))
	}
	s.logger.Error(fmt.Sprintf("Falha ao buscar %s.", s.binding.Resource), err)
	return apperror.NewInternalError(fmt.Sprintf("Falha interna ao buscar %s.", s.binding.Resource), err)
}

// Resolve busca uma referência pelo ID. Ausência vira NotFound nomeando a
// referência; qualquer outra falha vira InternalError.
func Resolve[E any](ctx context.Context, finder Finder[E], resource string, id int) (E, error) {
	entity, err := finder.FindByID(ctx, id)
	if err == nil {
		return entity, nil
	}

	var zero E
	if apperror.IsNotFound(err) {
		return zero, apperror.NewNotFoundError(fmt.Sprintf("%s não existe (ID: %d).", resource, id))
	}
	return zero, apperror.NewInternalError(fmt.Sprintf("Falha ao resolver %s (ID: %d).", resource, id), err)
}
