// Package orderservice monta os serviços de pedido e de linha de pedido.
// A linha de pedido resolve idOrder e idProduct antes de persistir.
package orderservice

import (
	"context"

	"winestore/internal/domain"
	"winestore/internal/mapper"
	"winestore/internal/pkg/logger"
	"winestore/internal/service/crud"
)

type (
	OrderService        = crud.Service[domain.Order, domain.OrderDTO]
	OrderDetailsService = crud.Service[domain.OrderDetails, domain.OrderDetailsDTO]
)

func NewOrderService(repo crud.Repository[domain.Order], log logger.Logger) *OrderService {
	return crud.NewService[domain.Order, domain.OrderDTO](repo, crud.Binding[domain.Order, domain.OrderDTO]{
		Resource: "Pedido",
		ID:       func(d domain.OrderDTO) *int { return d.ID },
		ToDTO:    domain.OrderToDTO,
		ToEntity: func(_ context.Context, id int, d domain.OrderDTO) (domain.Order, error) {
			return domain.OrderFromDTO(id, d), nil
		},
	}, log)
}

func NewOrderDetailsService(
	repo crud.Repository[domain.OrderDetails],
	orders crud.Finder[domain.Order],
	products crud.Finder[domain.Product],
	log logger.Logger,
) *OrderDetailsService {
	return crud.NewService[domain.OrderDetails, domain.OrderDetailsDTO](repo, crud.Binding[domain.OrderDetails, domain.OrderDetailsDTO]{
		Resource: "Detalhe de pedido",
		ID:       func(d domain.OrderDetailsDTO) *int { return d.ID },
		ToDTO:    domain.OrderDetailsToDTO,
		ToEntity: func(ctx context.Context, id int, d domain.OrderDetailsDTO) (domain.OrderDetails, error) {
			if _, err := crud.Resolve[domain.Order](ctx, orders, "Pedido", mapper.Value(d.IDOrder)); err != nil {
				return domain.OrderDetails{}, err
			}
			if _, err := crud.Resolve[domain.Product](ctx, products, "Produto", mapper.Value(d.IDProduct)); err != nil {
				return domain.OrderDetails{}, err
			}
			return domain.OrderDetailsFromDTO(id, d), nil
		},
	}, log)
}
