package checkout

import (
	"github.com/prometheus/client_golang/prometheus"

	"ShopCart/pkg/kit"
)

type Metrics struct {
	Orders   prometheus.Counter
	Declined prometheus.Counter
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Orders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: kit.MetricsNamespace,
			Name:      "checkout_orders_total",
			Help:      "Completed checkouts",
		}),
		Declined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: kit.MetricsNamespace,
			Name:      "checkout_payments_declined_total",
			Help:      "Checkout attempts declined by the payment method",
		}),
	}
	reg.MustRegister(m.Orders, m.Declined)
	return m
}
