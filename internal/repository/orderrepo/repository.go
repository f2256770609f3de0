package orderrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"winestore/internal/domain"
	"winestore/internal/errors"
	"winestore/internal/pkg/logger"
)

// OrderRepository persiste pedidos na tabela orders.
type OrderRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewOrderRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *OrderRepository {
	return &OrderRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, id_customer, amount, shipping_address, order_email FROM orders ORDER BY id`)
	if err != nil {
		r.logger.Error("Falha ao listar pedidos no DB.", err)
		return nil, errors.NewDBError("Falha ao listar pedidos", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.IDCustomer, &o.Amount, &o.ShippingAddress, &o.OrderEmail); err != nil {
			return nil, errors.NewDBError("Falha ao ler pedido", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar pedidos", err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var o domain.Order
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, id_customer, amount, shipping_address, order_email FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.IDCustomer, &o.Amount, &o.ShippingAddress, &o.OrderEmail)
	if err == sql.ErrNoRows {
		r.logger.Debug("Pedido não encontrado.", map[string]interface{}{"id": id})
		return domain.Order{}, errors.NewNotFoundError(fmt.Sprintf("Pedido com ID %d não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar pedido no DB.", err)
		return domain.Order{}, errors.NewDBError("Falha ao buscar pedido", err)
	}
	return o, nil
}

func (r *OrderRepository) Save(ctx context.Context, o domain.Order) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if o.ID == 0 {
		err := r.DB.QueryRowContext(ctxTimeout,
			`INSERT INTO orders (id_customer, amount, shipping_address, order_email) VALUES ($1, $2, $3, $4) RETURNING id`,
			o.IDCustomer, o.Amount, o.ShippingAddress, o.OrderEmail,
		).Scan(&o.ID)
		if err != nil {
			r.logger.Error("Falha ao inserir pedido.", err)
			return domain.Order{}, errors.NewDBError("Falha ao inserir pedido", err)
		}
		return o, nil
	}

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE orders SET id_customer = $1, amount = $2, shipping_address = $3, order_email = $4 WHERE id = $5`,
		o.IDCustomer, o.Amount, o.ShippingAddress, o.OrderEmail, o.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar pedido.", err)
		return domain.Order{}, errors.NewDBError("Falha ao atualizar pedido", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Order{}, errors.NewNotFoundError(fmt.Sprintf("Pedido com ID %d não existe na base de dados.", o.ID))
	}
	return o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover pedido.", err)
		return errors.NewDBError("Falha ao remover pedido", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Pedido com ID %d não existe na base de dados.", id))
	}
	return nil
}

// OrderDetailsRepository persiste as linhas de pedido na tabela order_details.
type OrderDetailsRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewOrderDetailsRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *OrderDetailsRepository {
	return &OrderDetailsRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

func (r *OrderDetailsRepository) FindAll(ctx context.Context) ([]domain.OrderDetails, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, id_order, id_product, price, quantity FROM order_details ORDER BY id`)
	if err != nil {
		r.logger.Error("Falha ao listar detalhes de pedido no DB.", err)
		return nil, errors.NewDBError("Falha ao listar detalhes de pedido", err)
	}
	defer rows.Close()

	var details []domain.OrderDetails
	for rows.Next() {
		var d domain.OrderDetails
		if err := rows.Scan(&d.ID, &d.IDOrder, &d.IDProduct, &d.Price, &d.Quantity); err != nil {
			return nil, errors.NewDBError("Falha ao ler detalhe de pedido", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar detalhes de pedido", err)
	}
	return details, nil
}

func (r *OrderDetailsRepository) FindByID(ctx context.Context, id int) (domain.OrderDetails, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var d domain.OrderDetails
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, id_order, id_product, price, quantity FROM order_details WHERE id = $1`, id,
	).Scan(&d.ID, &d.IDOrder, &d.IDProduct, &d.Price, &d.Quantity)
	if err == sql.ErrNoRows {
		return domain.OrderDetails{}, errors.NewNotFoundError(fmt.Sprintf("Detalhe de pedido com ID %d não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar detalhe de pedido no DB.", err)
		return domain.OrderDetails{}, errors.NewDBError("Falha ao buscar detalhe de pedido", err)
	}
	return d, nil
}

func (r *OrderDetailsRepository) Save(ctx context.Context, d domain.OrderDetails) (domain.OrderDetails, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if d.ID == 0 {
		err := r.DB.QueryRowContext(ctxTimeout,
			`INSERT INTO order_details (id_order, id_product, price, quantity) VALUES ($1, $2, $3, $4) RETURNING id`,
			d.IDOrder, d.IDProduct, d.Price, d.Quantity,
		).Scan(&d.ID)
		if err != nil {
			r.logger.Error("Falha ao inserir detalhe de pedido.", err)
			return domain.OrderDetails{}, errors.NewDBError("Falha ao inserir detalhe de pedido", err)
		}
		return d, nil
	}

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE order_details SET id_order = $1, id_product = $2, price = $3, quantity = $4 WHERE id = $5`,
		d.IDOrder, d.IDProduct, d.Price, d.Quantity, d.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar detalhe de pedido.", err)
		return domain.OrderDetails{}, errors.NewDBError("Falha ao atualizar detalhe de pedido", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.OrderDetails{}, errors.NewNotFoundError(fmt.Sprintf("Detalhe de pedido com ID %d não existe na base de dados.", d.ID))
	}
	return d, nil
}

func (r *OrderDetailsRepository) Delete(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM order_details WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover detalhe de pedido.", err)
		return errors.NewDBError("Falha ao remover detalhe de pedido", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Detalhe de pedido com ID %d não existe na base de dados.", id))
	}
	return nil
}
