package catalog

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func seedStore(t *testing.T) *MemStore {
	t.Helper()

	s := NewMemStore()
	ctx := context.Background()

	for _, p := range []Product{
		{ID: 3, Name: "Laptop", Price: decimal.RequireFromString("800.00"), Stock: 5},
		{ID: 1, Name: "Book", Price: decimal.RequireFromString("10.50"), Stock: 10},
		{ID: 2, Name: "Pen", Price: decimal.RequireFromString("2.50"), Stock: 20},
	} {
		if err := s.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	return s
}

func TestMemStoreListSorted(t *testing.T) {
	s := seedStore(t)

	products, err := s.ListSortedByID(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("len = %d, want 3", len(products))
	}
	for i, want := range []int{1, 2, 3} {
		if products[i].ID != want {
			t.Fatalf("products[%d].ID = %d, want %d", i, products[i].ID, want)
		}
	}
}

func TestMemStoreGetReturnsCopy(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	p, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	p.Stock = 0
	p.Name = "mutated"

	again, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Stock != 10 || again.Name != "Book" {
		t.Fatalf("stored product changed through a returned copy: %+v", again)
	}
}

func TestMemStoreGetUnknown(t *testing.T) {
	s := seedStore(t)

	_, err := s.Get(context.Background(), 99)
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemStoreUpsertReplaces(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	repl := Product{ID: 1, Name: "Book II", Price: decimal.RequireFromString("12.00"), Stock: 4}
	if err := s.Upsert(ctx, repl); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Book II" || p.Stock != 4 {
		t.Fatalf("upsert did not replace: %+v", p)
	}
}

func TestMemStoreReduceStock(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	ok, err := s.ReduceStock(ctx, 1, 3)
	if err != nil || !ok {
		t.Fatalf("ReduceStock = %v, %v; want true, nil", ok, err)
	}

	p, _ := s.Get(ctx, 1)
	if p.Stock != 7 {
		t.Fatalf("stock = %d, want 7", p.Stock)
	}

	ok, err = s.ReduceStock(ctx, 1, 8)
	if err != nil || ok {
		t.Fatalf("oversized ReduceStock = %v, %v; want false, nil", ok, err)
	}
	p, _ = s.Get(ctx, 1)
	if p.Stock != 7 {
		t.Fatalf("stock changed on failed reduce: %d", p.Stock)
	}

	ok, err = s.ReduceStock(ctx, 99, 1)
	if err != nil || ok {
		t.Fatalf("unknown id ReduceStock = %v, %v; want false, nil", ok, err)
	}
}

func TestWriteCSV(t *testing.T) {
	s := seedStore(t)

	products, err := s.ListSortedByID(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, products); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "1,Book,10.50,10\n2,Pen,2.50,20\n3,Laptop,800.00,5\n"
	if buf.String() != want {
		t.Fatalf("csv = %q, want %q", buf.String(), want)
	}
}
