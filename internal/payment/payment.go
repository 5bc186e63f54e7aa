// Package payment models the closed set of payment methods accepted at
// checkout. Pay is single-shot and synchronous: a decline is an expected
// outcome the caller reports to the user, and no settlement happens beyond
// the predicate itself.
package payment

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Method interface {
	Name() string

	// Pay reports whether the charge was accepted. False means declined;
	// the caller decides whether to retry the whole checkout.
	Pay(amount decimal.Decimal) bool
}

type CreditCard struct {
	Number string
	Holder string
	Log    *zap.Logger
}

func (c CreditCard) Name() string { return "card" }

func (c CreditCard) Pay(amount decimal.Decimal) bool {
	if c.Number == "" {
		return false
	}
	if c.Log != nil {
		c.Log.Info("payment accepted",
			zap.String("method", c.Name()),
			zap.String("holder", c.Holder),
			zap.String("amount", amount.StringFixed(2)),
		)
	}
	return true
}

type PayPal struct {
	Email string
	Log   *zap.Logger
}

func (p PayPal) Name() string { return "paypal" }

func (p PayPal) Pay(amount decimal.Decimal) bool {
	if p.Email == "" {
		return false
	}
	if p.Log != nil {
		p.Log.Info("payment accepted",
			zap.String("method", p.Name()),
			zap.String("account", p.Email),
			zap.String("amount", amount.StringFixed(2)),
		)
	}
	return true
}
