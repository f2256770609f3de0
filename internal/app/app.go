// Package app monta as camadas na ordem Repository -> Service -> Handler.
package app

import (
	"database/sql"
	"time"

	"winestore/internal/api/product"
	"winestore/internal/api/resource"
	"winestore/internal/api/router"
	"winestore/internal/domain"
	"winestore/internal/pkg/cache"
	"winestore/internal/pkg/logger"
	"winestore/internal/repository/memory"
	"winestore/internal/repository/namedrepo"
	"winestore/internal/repository/orderrepo"
	"winestore/internal/repository/productrepo"
	"winestore/internal/service/catalogservice"
	"winestore/internal/service/crud"
	"winestore/internal/service/orderservice"
	"winestore/internal/service/productservice"
)

// Repositories agrupa a camada de persistência de todas as entidades.
type Repositories struct {
	Wineries     crud.Repository[domain.Winery]
	Varieties    crud.Repository[domain.Variety]
	Types        crud.Repository[domain.Type]
	Products     productservice.ProductRepository
	Orders       crud.Repository[domain.Order]
	OrderDetails crud.Repository[domain.OrderDetails]
}

// MemoryRepositories usa o armazenamento em memória.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Wineries:     store.Wineries(),
		Varieties:    store.Varieties(),
		Types:        store.Types(),
		Products:     store.Products(),
		Orders:       store.Orders(),
		OrderDetails: store.OrderDetails(),
	}
}

// PostgresRepositories usa o PostgreSQL. cacheClient pode ser nil.
func PostgresRepositories(db *sql.DB, cacheClient cache.Client, cacheTTL, dbTimeout time.Duration, log logger.Logger) Repositories {
	return Repositories{
		Wineries:     namedrepo.NewRepository(db, namedrepo.Wineries, dbTimeout, log),
		Varieties:    namedrepo.NewRepository(db, namedrepo.Varieties, dbTimeout, log),
		Types:        namedrepo.NewRepository(db, namedrepo.Types, dbTimeout, log),
		Products:     productrepo.NewProductRepository(db, cacheClient, cacheTTL, dbTimeout, log),
		Orders:       orderrepo.NewOrderRepository(db, dbTimeout, log),
		OrderDetails: orderrepo.NewOrderDetailsRepository(db, dbTimeout, log),
	}
}

// NewHandlers cria serviços e handlers sobre os repositórios.
func NewHandlers(repos Repositories, log logger.Logger) router.Handlers {
	productSvc := productservice.NewService(repos.Products, productservice.References{
		Wineries:  repos.Wineries,
		Varieties: repos.Varieties,
		Types:     repos.Types,
	}, log)

	return router.Handlers{
		Product:      product.NewHandler(productSvc, log),
		Winery:       resource.NewHandler[domain.WineryDTO](catalogservice.NewWineryService(repos.Wineries, log), log),
		Variety:      resource.NewHandler[domain.VarietyDTO](catalogservice.NewVarietyService(repos.Varieties, log), log),
		Type:         resource.NewHandler[domain.TypeDTO](catalogservice.NewTypeService(repos.Types, log), log),
		Order:        resource.NewHandler[domain.OrderDTO](orderservice.NewOrderService(repos.Orders, log), log),
		OrderDetails: resource.NewHandler[domain.OrderDetailsDTO](orderservice.NewOrderDetailsService(repos.OrderDetails, repos.Orders, repos.Products, log), log),
	}
}
