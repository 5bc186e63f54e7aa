package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidValue is returned by the administrative setters when handed a
// negative price or stock. A negative value is a caller bug, never a
// business outcome.
var ErrInvalidValue = errors.New("invalid value")

type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func NewProduct(id int, name string, price decimal.Decimal, stock int) (Product, error) {
	if id < 0 {
		return Product{}, fmt.Errorf("%w: id %d", ErrInvalidValue, id)
	}
	p := Product{ID: id, Name: name}
	if err := p.SetPrice(price); err != nil {
		return Product{}, err
	}
	if err := p.SetStock(stock); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price %s", ErrInvalidValue, price)
	}
	p.Price = price
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock %d", ErrInvalidValue, stock)
	}
	p.Stock = stock
	return nil
}

// ReduceStock commits qty units of stock. It reports false and leaves the
// product untouched when qty is non-positive or exceeds the current stock;
// insufficient stock is an expected outcome the caller decides policy for.
func (p *Product) ReduceStock(qty int) bool {
	if qty <= 0 || qty > p.Stock {
		return false
	}
	p.Stock -= qty
	return true
}

// IncreaseStock returns qty units to stock. Non-positive quantities are
// ignored.
func (p *Product) IncreaseStock(qty int) {
	if qty > 0 {
		p.Stock += qty
	}
}

func (p Product) String() string {
	return fmt.Sprintf("[%d] %s - $%s (stock: %d)", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
}
