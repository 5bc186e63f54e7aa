package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"ShopCart/internal/catalog"
)

func book(t *testing.T) catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct(1, "Book", decimal.RequireFromString("10.50"), 10)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func TestSubtotalAndTotal(t *testing.T) {
	c := New()

	c.Add(book(t), 3)

	pen, _ := catalog.NewProduct(2, "Pen", decimal.RequireFromString("2.50"), 20)
	c.Add(pen, 2)

	want := decimal.RequireFromString("36.50")
	if !c.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", c.Total(), want)
	}
}

func TestTotalUsesCopyAtAddTime(t *testing.T) {
	ctx := context.Background()

	inv := catalog.NewMemStore()
	if err := inv.Upsert(ctx, book(t)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p, err := inv.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	c := New()
	c.Add(p, 3)

	// Reprice after the item is in the cart; the line must not move.
	p2, _ := inv.Get(ctx, 1)
	if err := p2.SetPrice(decimal.RequireFromString("99.99")); err != nil {
		t.Fatalf("set price: %v", err)
	}
	if err := inv.Upsert(ctx, p2); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	want := decimal.RequireFromString("31.50")
	if !c.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", c.Total(), want)
	}
}

func TestDuplicateProductsAreSeparateLines(t *testing.T) {
	c := New()
	p := book(t)

	c.Add(p, 1)
	c.Add(p, 2)

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Qty != 1 || items[1].Qty != 2 {
		t.Fatalf("items = %+v", items)
	}
}

func TestAddRejectsNonPositiveQty(t *testing.T) {
	c := New()

	if c.Add(book(t), 0) {
		t.Fatalf("Add(qty=0) = true, want false")
	}
	if c.Add(book(t), -1) {
		t.Fatalf("Add(qty=-1) = true, want false")
	}
	if !c.Empty() {
		t.Fatalf("cart not empty after rejected adds")
	}
}

func TestClearAndEmpty(t *testing.T) {
	c := New()

	if !c.Empty() {
		t.Fatalf("new cart not empty")
	}

	c.Add(book(t), 1)
	if c.Empty() {
		t.Fatalf("cart empty after add")
	}

	c.Clear()
	if !c.Empty() {
		t.Fatalf("cart not empty after clear")
	}
	if !c.Total().Equal(decimal.Zero) {
		t.Fatalf("total = %s after clear", c.Total())
	}
}

func TestItemsIsSnapshot(t *testing.T) {
	c := New()
	c.Add(book(t), 1)

	items := c.Items()
	items[0].Qty = 99

	if c.Items()[0].Qty != 1 {
		t.Fatalf("cart line mutated through snapshot")
	}
}

func TestStoreForUser(t *testing.T) {
	s := NewStore()

	a := s.ForUser("u_a")
	if got := s.ForUser("u_a"); got != a {
		t.Fatalf("same user got a different cart")
	}
	if got := s.ForUser("u_b"); got == a {
		t.Fatalf("different users share a cart")
	}
}
