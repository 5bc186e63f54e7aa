package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ShopCart/internal/cart"
)

// Order is the immutable record of a completed checkout. The amount is
// computed once from the item snapshot and never recomputed.
type Order struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []cart.Item     `json:"items"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	CreatedAt time.Time       `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id int64) (Order, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// LastID returns the highest order id ever persisted, 0 when none.
	// Seeds the Service counter so ids keep increasing across restarts.
	LastID(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}
