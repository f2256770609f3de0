// Package catalogservice monta os serviços das entidades de catálogo
// (vinícola, variedade e tipo) sobre o crud.Service.
package catalogservice

import (
	"context"

	"winestore/internal/domain"
	"winestore/internal/pkg/logger"
	"winestore/internal/service/crud"
)

type (
	WineryService  = crud.Service[domain.Winery, domain.WineryDTO]
	VarietyService = crud.Service[domain.Variety, domain.VarietyDTO]
	TypeService    = crud.Service[domain.Type, domain.TypeDTO]
)

func NewWineryService(repo crud.Repository[domain.Winery], log logger.Logger) *WineryService {
	return crud.NewService[domain.Winery, domain.WineryDTO](repo, crud.Binding[domain.Winery, domain.WineryDTO]{
		Resource: "Vinícola",
		ID:       func(d domain.WineryDTO) *int { return d.ID },
		ToDTO:    domain.WineryToDTO,
		ToEntity: func(_ context.Context, id int, d domain.WineryDTO) (domain.Winery, error) {
			return domain.WineryFromDTO(id, d), nil
		},
	}, log)
}

func NewVarietyService(repo crud.Repository[domain.Variety], log logger.Logger) *VarietyService {
	return crud.NewService[domain.Variety, domain.VarietyDTO](repo, crud.Binding[domain.Variety, domain.VarietyDTO]{
		Resource: "Variedade",
		ID:       func(d domain.VarietyDTO) *int { return d.ID },
		ToDTO:    domain.VarietyToDTO,
		ToEntity: func(_ context.Context, id int, d domain.VarietyDTO) (domain.Variety, error) {
			return domain.VarietyFromDTO(id, d), nil
		},
	}, log)
}

func NewTypeService(repo crud.Repository[domain.Type], log logger.Logger) *TypeService {
	return crud.NewService[domain.Type, domain.TypeDTO](repo, crud.Binding[domain.Type, domain.TypeDTO]{
		Resource: "Tipo",
		ID:       func(d domain.TypeDTO) *int { return d.ID },
		ToDTO:    domain.TypeToDTO,
		ToEntity: func(_ context.Context, id int, d domain.TypeDTO) (domain.Type, error) {
			return domain.TypeFromDTO(id, d), nil
		},
	}, log)
}
