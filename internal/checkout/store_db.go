package checkout

import (
	"context"
	"database/sql"
	"time"

	"ShopCart/internal/cart"
	"ShopCart/internal/catalog"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 5 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Create(ctx context.Context, o Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, amount, method, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.UserID, o.Amount, o.Method, o.CreatedAt)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_items (order_id, line_no, product_id, name, price, qty)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range o.Items {
		_, err := stmt.ExecContext(ctx, o.ID, i, it.Product.ID, it.Product.Name, it.Product.Price, it.Qty)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var o Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount, method, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.Amount, &o.Method, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, err
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return Order{}, false, err
	}
	o.Items = items

	return o, true, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount, method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0, 8)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Amount, &o.Method, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := s.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}

	return out, nil
}

func (s *PostgresStore) LastID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var last int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(id), 0) FROM orders
	`).Scan(&last)
	if err != nil {
		return 0, err
	}
	return last, nil
}

func (s *PostgresStore) loadItems(ctx context.Context, orderID int64) ([]cart.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, price, qty
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_no ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]cart.Item, 0, 8)
	for rows.Next() {
		var (
			p   catalog.Product
			qty int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &qty); err != nil {
			return nil, err
		}
		items = append(items, cart.Item{Product: p, Qty: qty})
	}
	return items, rows.Err()
}
