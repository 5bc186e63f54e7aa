package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopCart/internal/app"
	"ShopCart/internal/auth"
	"ShopCart/internal/catalog"
	"ShopCart/internal/checkout"
)

const metricsToken = "scrape-token"

func newMetricsTS(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	ctx := context.Background()

	cat := catalog.NewMemStore()
	err := cat.Upsert(ctx, catalog.Product{
		ID: 1, Name: "Book", Price: decimal.RequireFromString("10.50"), Stock: 10,
	})
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	reg := prometheus.NewRegistry()
	h, err := app.NewHandler(ctx, app.Deps{
		Log:          zap.NewNop(),
		Service:      "shopd",
		Users:        auth.NewMemStore(),
		Catalog:      cat,
		Orders:       checkout.NewMemStore(),
		JWTSecret:    jwtSecret,
		Registry:     reg,
		MetricsToken: metricsToken,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		return sum
	}

	t.Fatalf("metric %q not registered", name)
	return 0
}

func TestCheckoutCounters(t *testing.T) {
	ts, reg := newMetricsTS(t)
	tok := registerAndLogin(t, ts, "alice@shop.test")

	doJSON(t, http.MethodPost, ts.URL+"/cart/items", tok, map[string]any{
		"product_id": 1,
		"qty":        2,
	}, nil, http.StatusOK)

	// Declined payment bumps only the declined counter.
	doJSON(t, http.MethodPost, ts.URL+"/checkout", tok, map[string]any{
		"method": "card",
		"holder": "Alice",
	}, nil, http.StatusConflict)

	if got := counterValue(t, reg, "shopcart_checkout_payments_declined_total"); got != 1 {
		t.Fatalf("declined counter = %v, want 1", got)
	}
	if got := counterValue(t, reg, "shopcart_checkout_orders_total"); got != 0 {
		t.Fatalf("orders counter = %v, want 0", got)
	}

	var order checkout.Order
	doJSON(t, http.MethodPost, ts.URL+"/checkout", tok, map[string]any{
		"method":      "card",
		"card_number": "4111",
		"holder":      "Alice",
	}, &order, http.StatusCreated)

	if got := counterValue(t, reg, "shopcart_checkout_orders_total"); got != 1 {
		t.Fatalf("orders counter = %v, want 1", got)
	}
	if got := counterValue(t, reg, "shopcart_http_requests_total"); got == 0 {
		t.Fatalf("http requests counter never incremented")
	}
}

func TestMetricsEndpointTokenGated(t *testing.T) {
	ts, _ := newMetricsTS(t)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated scrape: status = %d, want 403", resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+metricsToken)

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scrape: status = %d, want 200", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "shopcart_checkout_orders_total") {
		t.Fatalf("scrape body missing checkout counter")
	}
}
