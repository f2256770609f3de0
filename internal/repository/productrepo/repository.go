package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"winestore/internal/domain"
	"winestore/internal/errors"
	"winestore/internal/pkg/cache"
	"winestore/internal/pkg/logger"
)

// Chave de cache da projeção de um produto.
const projectionCacheKey = "product:projection:%d"

const selectEntity = `
	SELECT p.id, p.name, p.description, p.image, p.year, p.price, p.stock,
	       w.id, w.name, v.id, v.name, t.id, t.name
	FROM products p
	JOIN wineries w ON w.id = p.id_winery
	JOIN varieties v ON v.id = p.id_variety
	JOIN types t ON t.id = p.id_type`

const selectProjection = `
	SELECT p.id, p.name, p.description, p.image, p.year, p.price, p.stock,
	       w.name, v.name, t.name
	FROM products p
	JOIN wineries w ON w.id = p.id_winery
	JOIN varieties v ON v.id = p.id_variety
	JOIN types t ON t.id = p.id_type`

// ProductRepository persiste produtos no PostgreSQL. As leituras de projeção
// fazem JOIN com vinícola, variedade e tipo. Quando Cache não é nil, a
// projeção por ID usa cache-aside e é invalidada em update/delete.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	CacheTTL  time.Duration
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository cria o repositório. cacheClient pode ser nil.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, cacheTTL, dbTimeout time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		CacheTTL:  cacheTTL,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntity(s scanner) (domain.Product, error) {
	var p domain.Product
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Image, &p.Year, &p.Price, &p.Stock,
		&p.Winery.ID, &p.Winery.Name, &p.Variety.ID, &p.Variety.Name, &p.Type.ID, &p.Type.Name,
	)
	return p, err
}

func scanProjection(s scanner) (domain.ProductProjection, error) {
	var p domain.ProductProjection
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Image, &p.Year, &p.Price, &p.Stock,
		&p.WineryName, &p.VarietyName, &p.TypeName,
	)
	return p, err
}

// FindAll devolve todos os produtos com as referências carregadas.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectEntity+` ORDER BY p.id`)
	if err != nil {
		r.logger.Error("Falha ao listar produtos no DB.", err)
		return nil, errors.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanEntity(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao ler produto", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar produtos", err)
	}
	return products, nil
}

// FindByID devolve o produto com as referências carregadas.
func (r *ProductRepository) FindByID(ctx context.Context, id int) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	p, err := scanEntity(r.DB.QueryRowContext(ctxTimeout, selectEntity+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		r.logger.Debug("Produto não encontrado.", map[string]interface{}{"id": id})
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto", err)
	}
	return p, nil
}

// Save insere (ID 0) ou atualiza o produto. Um update que não afeta linhas
// devolve NotFoundError.
func (r *ProductRepository) Save(ctx context.Context, p domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if p.ID == 0 {
		const insertSQL = `
			INSERT INTO products (name, description, image, year, price, stock, id_winery, id_variety, id_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`

		err := r.DB.QueryRowContext(ctxTimeout, insertSQL,
			p.Name, p.Description, p.Image, p.Year, p.Price, p.Stock,
			p.Winery.ID, p.Variety.ID, p.Type.ID,
		).Scan(&p.ID)
		if err != nil {
			r.logger.Error("Falha ao inserir produto.", err)
			return domain.Product{}, errors.NewDBError("Falha ao inserir produto", err)
		}

		r.logger.Debug("Produto inserido.", map[string]interface{}{"id": p.ID})
		return p, nil
	}

	const updateSQL = `
		UPDATE products
		SET name = $1, description = $2, image = $3, year = $4, price = $5, stock = $6,
		    id_winery = $7, id_variety = $8, id_type = $9
		WHERE id = $10`

	res, err := r.DB.ExecContext(ctxTimeout, updateSQL,
		p.Name, p.Description, p.Image, p.Year, p.Price, p.Stock,
		p.Winery.ID, p.Variety.ID, p.Type.ID, p.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar produto.", err)
		return domain.Product{}, errors.NewDBError("Falha ao atualizar produto", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe na base de dados.", p.ID))
	}

	r.invalidate(ctx, p.ID)
	r.logger.Debug("Produto atualizado.", map[string]interface{}{"id": p.ID})
	return p, nil
}

// Delete remove o produto.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover produto.", err)
		return errors.NewDBError("Falha ao remover produto", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe na base de dados.", id))
	}

	r.invalidate(ctx, id)
	return nil
}

// FindAllProjections devolve a projeção de todos os produtos.
func (r *ProductRepository) FindAllProjections(ctx context.Context) ([]domain.ProductProjection, error) {
	return r.queryProjections(ctx, selectProjection+` ORDER BY p.id`)
}

// FindProjectionByID busca a projeção usando a estratégia cache-aside.
func (r *ProductRepository) FindProjectionByID(ctx context.Context, id int) (domain.ProductProjection, error) {
	key := fmt.Sprintf(projectionCacheKey, id)
	var projection domain.ProductProjection

	if r.Cache != nil {
		cached, err := r.Cache.Get(ctx, key)
		if err == nil {
			if json.Unmarshal([]byte(cached), &projection) == nil {
				return projection, nil
			}
		} else if err != cache.ErrCacheMiss {
			r.logger.Warn("Falha ao ler do cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	projection, err := scanProjection(r.DB.QueryRowContext(ctxTimeout, selectProjection+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return domain.ProductProjection{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar projeção de produto.", err)
		return domain.ProductProjection{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	if r.Cache != nil {
		if data, marshalErr := json.Marshal(projection); marshalErr == nil {
			if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
				r.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": err.Error()})
			}
		}
	}

	return projection, nil
}

func (r *ProductRepository) FindProjectionsByWineryID(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	return r.queryProjections(ctx, selectProjection+` WHERE p.id_winery = $1 ORDER BY p.id`, id)
}

func (r *ProductRepository) FindProjectionsByVarietyID(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	return r.queryProjections(ctx, selectProjection+` WHERE p.id_variety = $1 ORDER BY p.id`, id)
}

func (r *ProductRepository) FindProjectionsByTypeID(ctx context.Context, id int) ([]domain.ProductProjection, error) {
	return r.queryProjections(ctx, selectProjection+` WHERE p.id_type = $1 ORDER BY p.id`, id)
}

// FindRandomProjections devolve até limit projeções em ordem aleatória.
func (r *ProductRepository) FindRandomProjections(ctx context.Context, limit int) ([]domain.ProductProjection, error) {
	return r.queryProjections(ctx, selectProjection+` ORDER BY RANDOM() LIMIT $1`, limit)
}

func (r *ProductRepository) queryProjections(ctx context.Context, query string, args ...interface{}) ([]domain.ProductProjection, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao consultar projeções de produto.", err)
		return nil, errors.NewDBError("Falha ao consultar produtos", err)
	}
	defer rows.Close()

	var projections []domain.ProductProjection
	for rows.Next() {
		p, err := scanProjection(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao ler produto", err)
		}
		projections = append(projections, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar produtos", err)
	}
	return projections, nil
}

func (r *ProductRepository) invalidate(ctx context.Context, id int) {
	if r.Cache == nil {
		return
	}
	key := fmt.Sprintf(projectionCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Falha ao invalidar cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
