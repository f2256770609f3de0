// Package memory implementa todos os repositórios em memória. É usado quando
// DATABASE_URL está vazio e nos testes de cenário da API.
package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"winestore/internal/domain"
	"winestore/internal/errors"
)

type table[E any] struct {
	resource string
	rows     map[int]E
	next     int
	id       func(E) int
	withID   func(E, int) E
	// inUse, quando definido, impede remover linhas referenciadas (como uma FK).
	inUse func(id int) bool
}

func newTable[E any](resource string, id func(E) int, withID func(E, int) E) *table[E] {
	return &table[E]{resource: resource, rows: map[int]E{}, id: id, withID: withID}
}

func (t *table[E]) notFound(id int) error {
	return errors.NewNotFoundError(fmt.Sprintf("%s com ID %d não existe no armazenamento.", t.resource, id))
}

// sorted devolve as linhas em ordem crescente de ID.
func (t *table[E]) sorted() []E {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[E]) save(e E) (E, error) {
	id := t.id(e)
	if id == 0 {
		t.next++
		e = t.withID(e, t.next)
		t.rows[t.next] = e
		return e, nil
	}
	if _, ok := t.rows[id]; !ok {
		return e, t.notFound(id)
	}
	t.rows[id] = e
	return e, nil
}

func (t *table[E]) delete(id int) error {
	if _, ok := t.rows[id]; !ok {
		return t.notFound(id)
	}
	if t.inUse != nil && t.inUse(id) {
		return fmt.Errorf("%s com ID %d é referenciado(a) por produtos", t.resource, id)
	}
	delete(t.rows, id)
	return nil
}

// Store guarda todas as tabelas sob um único RWMutex, mantido apenas durante
// cada chamada.
type Store struct {
	mu        sync.RWMutex
	wineries  *table[domain.Winery]
	varieties *table[domain.Variety]
	types     *table[domain.Type]
	products  *table[domain.Product]
	orders    *table[domain.Order]
	details   *table[domain.OrderDetails]
}

func NewStore() *Store {
	s := &Store{
		wineries: newTable("Vinícola",
			func(w domain.Winery) int { return w.ID },
			func(w domain.Winery, id int) domain.Winery { w.ID = id; return w }),
		varieties: newTable("Variedade",
			func(v domain.Variety) int { return v.ID },
			func(v domain.Variety, id int) domain.Variety { v.ID = id; return v }),
		types: newTable("Tipo",
			func(t domain.Type) int { return t.ID },
			func(t domain.Type, id int) domain.Type { t.ID = id; return t }),
		products: newTable("Produto",
			func(p domain.Product) int { return p.ID },
			func(p domain.Product, id int) domain.Product { p.ID = id; return p }),
		orders: newTable("Pedido",
			func(o domain.Order) int { return o.ID },
			func(o domain.Order, id int) domain.Order { o.ID = id; return o }),
		details: newTable("Detalhe de pedido",
			func(d domain.OrderDetails) int { return d.ID },
			func(d domain.OrderDetails, id int) domain.OrderDetails { d.ID = id; return d }),
	}
	s.wineries.inUse = s.productsWhere(func(p domain.Product, id int) bool { return p.Winery.ID == id })
	s.varieties.inUse = s.productsWhere(func(p domain.Product, id int) bool { return p.Variety.ID == id })
	s.types.inUse = s.productsWhere(func(p domain.Product, id int) bool { return p.Type.ID == id })
	return s
}

// productsWhere diz se algum produto referencia id. Chamado com o lock mantido.
func (s *Store) productsWhere(refers func(domain.Product, int) bool) func(int) bool {
	return func(id int) bool {
		for _, p := range s.products.rows {
			if refers(p, id) {
				return true
			}
		}
		return false
	}
}

// Repository é um repositório genérico sobre uma tabela do Store.
type Repository[E any] struct {
	store *Store
	table *table[E]
}

func (s *Store) Wineries() *Repository[domain.Winery]   { return &Repository[domain.Winery]{s, s.wineries} }
func (s *Store) Varieties() *Repository[domain.Variety] { return &Repository[domain.Variety]{s, s.varieties} }
func (s *Store) Types() *Repository[domain.Type]        { return &Repository[domain.Type]{s, s.types} }
func (s *Store) Orders() *Repository[domain.Order]      { return &Repository[domain.Order]{s, s.orders} }
func (s *Store) OrderDetails() *Repository[domain.OrderDetails] {
	return &Repository[domain.OrderDetails]{s, s.details}
}

func (r *Repository[E]) FindAll(_ context.Context) ([]E, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.table.sorted(), nil
}

func (r *Repository[E]) FindByID(_ context.Context, id int) (E, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.table.rows[id]
	if !ok {
		return e, r.table.notFound(id)
	}
	return e, nil
}

func (r *Repository[E]) Save(_ context.Context, e E) (E, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.table.save(e)
}

func (r *Repository[E]) Delete(_ context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.table.delete(id)
}

// ProductRepository lê os produtos com os nomes atuais das referências, como o
// JOIN do repositório SQL.
type ProductRepository struct {
	store *Store
}

func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// join recarrega vinícola, variedade e tipo. Deve ser chamado com o lock mantido.
func (r *ProductRepository) join(p domain.Product) (domain.Product, bool) {
	w, okW := r.store.wineries.rows[p.Winery.ID]
	v, okV := r.store.varieties.rows[p.Variety.ID]
	t, okT := r.store.types.rows[p.Type.ID]
	if !okW || !okV || !okT {
		return p, false
	}
	p.Winery, p.Variety, p.Type = w, v, t
	return p, true
}

func (r *ProductRepository) joined() []domain.Product {
	var out []domain.Product
	for _, p := range r.store.products.sorted() {
		if jp, ok := r.join(p); ok {
			out = append(out, jp)
		}
	}
	return out
}

func (r *ProductRepository) FindAll(_ context.Context) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.joined(), nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products.rows[id]
	if !ok {
		return domain.Product{}, r.store.products.notFound(id)
	}
	jp, ok := r.join(p)
	if !ok {
		return domain.Product{}, r.store.products.notFound(id)
	}
	return jp, nil
}

// Save rejeita referências inexistentes, como as chaves estrangeiras do banco.
func (r *ProductRepository) Save(_ context.Context, p domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.join(p); !ok {
		return domain.Product{}, fmt.Errorf("produto referencia vinícola, variedade ou tipo inexistente")
	}
	return r.store.products.save(p)
}

func (r *ProductRepository) Delete(_ context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.products.delete(id)
}

func (r *ProductRepository) FindAllProjections(ctx context.Context) ([]domain.ProductProjection, error) {
	return r.filter(func(domain.Product) bool { return true }), nil
}

func (r *ProductRepository) FindProjectionByID(ctx context.Context, id int) (domain.ProductProjection, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.ProductProjection{}, err
	}
	return domain.ProjectProduct(p), nil
}

func (r *ProductRepository) FindProjectionsByWineryID(_ context.Context, id int) ([]domain.ProductProjection, error) {
	return r.filter(func(p domain.Product) bool { return p.Winery.ID == id }), nil
}

func (r *ProductRepository) FindProjectionsByVarietyID(_ context.Context, id int) ([]domain.ProductProjection, error) {
	return r.filter(func(p domain.Product) bool { return p.Variety.ID == id }), nil
}

func (r *ProductRepository) FindProjectionsByTypeID(_ context.Context, id int) ([]domain.ProductProjection, error) {
	return r.filter(func(p domain.Product) bool { return p.Type.ID == id }), nil
}

// FindRandomProjections embaralha as projeções e devolve até limit delas.
func (r *ProductRepository) FindRandomProjections(_ context.Context, limit int) ([]domain.ProductProjection, error) {
	all := r.filter(func(domain.Product) bool { return true })
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepository) filter(keep func(domain.Product) bool) []domain.ProductProjection {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.ProductProjection
	for _, p := range r.joined() {
		if keep(p) {
			out = append(out, domain.ProjectProduct(p))
		}
	}
	return out
}
