package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// ErrNotFound is returned by Get for an id the catalog has never seen.
var ErrNotFound = errors.New("product not found")

// Store is the authoritative source of product and stock state. Callers get
// copies: a Product handed out by Get or ListSortedByID never tracks later
// catalog mutations.
type Store interface {
	// Upsert inserts or replaces the product at its id.
	Upsert(ctx context.Context, p Product) error

	// Get returns a copy of the stored product or ErrNotFound.
	Get(ctx context.Context, id int) (Product, error)

	// ReduceStock atomically checks and decrements stock for the product.
	// The bool is the business outcome (false for unknown id, non-positive
	// qty, or insufficient stock); the error is for store failures only.
	ReduceStock(ctx context.Context, id, qty int) (bool, error)

	// ListSortedByID returns all products in ascending id order.
	ListSortedByID(ctx context.Context) ([]Product, error)

	Ping(ctx context.Context) error
}

// WriteCSV dumps products as "id,name,price,stock" lines, no header. Row
// order follows the input; pass a sorted slice for a deterministic file.
func WriteCSV(w io.Writer, products []Product) error {
	cw := csv.NewWriter(w)
	for _, p := range products {
		rec := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Price.StringFixed(2),
			strconv.Itoa(p.Stock),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
