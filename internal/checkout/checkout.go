// Package checkout turns a cart into an order: empty-check, single-shot
// payment, then an immutable snapshot with a sequential id.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopCart/internal/cart"
	"ShopCart/internal/payment"
)

// Business outcomes of a checkout attempt. Callers report these to the user
// and allow retry; they are never fatal.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment declined")
)

type Service struct {
	Orders Store
	Log    *zap.Logger
	Meter  *Metrics

	mu     sync.Mutex
	nextID int64
}

// NewService seeds the order id counter from the store so ids stay strictly
// increasing even when orders are persisted across process restarts.
func NewService(ctx context.Context, orders Store, log *zap.Logger) (*Service, error) {
	last, err := orders.LastID(ctx)
	if err != nil {
		return nil, err
	}
	return &Service{Orders: orders, Log: log, nextID: last}, nil
}

// Checkout runs the two guarded transitions and materializes the order.
//
// A declined payment leaves the cart intact and does not restore stock that
// add-to-cart already committed; the original system has no compensation
// here and none is added. Failed attempts consume no order id.
func (s *Service) Checkout(ctx context.Context, userID string, c *cart.Cart, m payment.Method) (Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	amount := decimal.Zero
	for _, it := range items {
		amount = amount.Add(it.Subtotal())
	}

	if !m.Pay(amount) {
		if s.Meter != nil {
			s.Meter.Declined.Inc()
		}
		s.Log.Info("payment declined",
			zap.String("user_id", userID),
			zap.String("method", m.Name()),
			zap.String("amount", amount.StringFixed(2)),
		)
		return Order{}, ErrPaymentDeclined
	}

	o := Order{
		ID:        s.allocateID(),
		UserID:    userID,
		Items:     items,
		Amount:    amount,
		Method:    m.Name(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Orders.Create(ctx, o); err != nil {
		return Order{}, err
	}

	c.Clear()
	if s.Meter != nil {
		s.Meter.Orders.Inc()
	}
	s.Log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("user_id", userID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return o, nil
}

func (s *Service) allocateID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}
