package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DB is the slice of pgxpool.Pool the repository uses.
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repo struct{ DB DB }

// CreateOrder persists one order plus its items atomically. The total is computed
// from current catalog prices inside the transaction; client-sent prices are never
// trusted. Any failure before commit rolls the whole order back.
func (r *Repo) CreateOrder(ctx context.Context, userID int64, items []ItemInput) (orderID int64, total decimal.Decimal, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, status, total)
		VALUES ($1, $2, 0)
		RETURNING id`, userID, StatusPending).Scan(&orderID)
	if err != nil {
		return 0, decimal.Zero, err
	}

	// one price lookup for all lines instead of a round-trip per item
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	rows, err := tx.Query(ctx, `SELECT id, price FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, decimal.Zero, err
	}
	prices := make(map[int64]decimal.Decimal, len(items))
	for rows.Next() {
		var (
			id    int64
			price decimal.Decimal
		)
		if err := rows.Scan(&id, &price); err != nil {
			rows.Close()
			return 0, decimal.Zero, err
		}
		prices[id] = price
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, decimal.Zero, err
	}

	for _, it := range items {
		price, ok := prices[it.ProductID]
		if !ok {
			return 0, decimal.Zero, fmt.Errorf("%w: id=%d", ErrProductNotFound, it.ProductID)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))

		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			orderID, it.ProductID, it.Quantity, price,
		); err != nil {
			return 0, decimal.Zero, err
		}

		// conditional decrement keeps the in-stock filter truthful after orders
		ct, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2
			WHERE id = $1 AND stock >= $2`, it.ProductID, it.Quantity)
		if err != nil {
			return 0, decimal.Zero, err
		}
		if ct.RowsAffected() != 1 {
			return 0, decimal.Zero, fmt.Errorf("%w: id=%d", ErrInsufficientStock, it.ProductID)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET total = $2 WHERE id = $1`, orderID, total); err != nil {
		return 0, decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, decimal.Zero, err
	}
	return orderID, total, nil
}

// ListInStock returns every product with stock remaining, newest first.
func (r *Repo) ListInStock(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, price, stock, image_url, created_at
		FROM products
		WHERE stock > 0
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SeedProducts loads the demo catalog once; a non-empty products table wins.
func (r *Repo) SeedProducts(ctx context.Context, products []Product) error {
	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, p := range products {
		if _, err := r.DB.Exec(ctx, `
			INSERT INTO products(name, description, price, stock, image_url)
			VALUES ($1, $2, $3, $4, $5)`,
			p.Name, p.Description, p.Price, p.Stock, p.ImageURL,
		); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return nil
}
