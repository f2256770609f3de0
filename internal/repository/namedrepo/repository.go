// Package namedrepo persiste as tabelas de catálogo que só têm id e name
// (vinícolas, variedades e tipos) com um único repositório genérico.
package namedrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"winestore/internal/domain"
	"winestore/internal/errors"
	"winestore/internal/pkg/logger"
)

// Table descreve como uma entidade {id, name} é lida e escrita.
type Table[E any] struct {
	Name     string // tabela SQL
	Resource string // nome usado nas mensagens
	New      func(id int, name string) E
	ID       func(E) int
	Label    func(E) string
}

var (
	Wineries = Table[domain.Winery]{
		Name:     "wineries",
		Resource: "Vinícola",
		New:      func(id int, name string) domain.Winery { return domain.Winery{ID: id, Name: name} },
		ID:       func(w domain.Winery) int { return w.ID },
		Label:    func(w domain.Winery) string { return w.Name },
	}
	Varieties = Table[domain.Variety]{
		Name:     "varieties",
		Resource: "Variedade",
		New:      func(id int, name string) domain.Variety { return domain.Variety{ID: id, Name: name} },
		ID:       func(v domain.Variety) int { return v.ID },
		Label:    func(v domain.Variety) string { return v.Name },
	}
	Types = Table[domain.Type]{
		Name:     "types",
		Resource: "Tipo",
		New:      func(id int, name string) domain.Type { return domain.Type{ID: id, Name: name} },
		ID:       func(t domain.Type) int { return t.ID },
		Label:    func(t domain.Type) string { return t.Name },
	}
)

// Repository implementa crud.Repository[E] sobre uma tabela {id, name}.
type Repository[E any] struct {
	DB        *sql.DB
	DBTimeout time.Duration
	table     Table[E]
	logger    logger.Logger
}

func NewRepository[E any](db *sql.DB, table Table[E], dbTimeout time.Duration, logger logger.Logger) *Repository[E] {
	return &Repository[E]{
		DB:        db,
		DBTimeout: dbTimeout,
		table:     table,
		logger:    logger,
	}
}

func (r *Repository[E]) FindAll(ctx context.Context) ([]E, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, r.table.Name))
	if err != nil {
		r.logger.Error(fmt.Sprintf("Falha ao listar %s no DB.", r.table.Name), err)
		return nil, errors.NewDBError("Falha ao listar "+r.table.Name, err)
	}
	defer rows.Close()

	var out []E
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, errors.NewDBError("Falha ao ler "+r.table.Name, err)
		}
		out = append(out, r.table.New(id, name))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar "+r.table.Name, err)
	}
	return out, nil
}

func (r *Repository[E]) FindByID(ctx context.Context, id int) (E, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		zero E
		name string
	)
	err := r.DB.QueryRowContext(ctxTimeout, fmt.Sprintf(`SELECT name FROM %s WHERE id = $1`, r.table.Name), id).Scan(&name)
	if err == sql.ErrNoRows {
		r.logger.Debug("Registro não encontrado.", map[string]interface{}{"table": r.table.Name, "id": id})
		return zero, errors.NewNotFoundError(fmt.Sprintf("%s com ID %d não existe na base de dados.", r.table.Resource, id))
	}
	if err != nil {
		r.logger.Error(fmt.Sprintf("Falha ao buscar em %s.", r.table.Name), err)
		return zero, errors.NewDBError("Falha ao buscar em "+r.table.Name, err)
	}
	return r.table.New(id, name), nil
}

// Save insere quando o ID é 0; caso contrário atualiza o nome.
func (r *Repository[E]) Save(ctx context.Context, entity E) (E, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var zero E
	id, name := r.table.ID(entity), r.table.Label(entity)

	if id == 0 {
		err := r.DB.QueryRowContext(ctxTimeout,
			fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, r.table.Name), name,
		).Scan(&id)
		if err != nil {
			r.logger.Error(fmt.Sprintf("Falha ao inserir em %s.", r.table.Name), err)
			return zero, errors.NewDBError("Falha ao inserir em "+r.table.Name, err)
		}
		return r.table.New(id, name), nil
	}

	res, err := r.DB.ExecContext(ctxTimeout, fmt.Sprintf(`UPDATE %s SET name = $1 WHERE id = $2`, r.table.Name), name, id)
	if err != nil {
		r.logger.Error(fmt.Sprintf("Falha ao atualizar %s.", r.table.Name), err)
		return zero, errors.NewDBError("Falha ao atualizar "+r.table.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return zero, errors.NewNotFoundError(fmt.Sprintf("%s com ID %d não existe na base de dados.", r.table.Resource, id))
	}
	return entity, nil
}

func (r *Repository[E]) Delete(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table.Name), id)
	if err != nil {
		r.logger.Error(fmt.Sprintf("Falha ao remover de %s.", r.table.Name), err)
		return errors.NewDBError("Falha ao remover de "+r.table.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("%s com ID %d não existe na base de dados.", r.table.Resource, id))
	}
	return nil
}
