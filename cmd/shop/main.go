// Command shop is the interactive console front end: a menu loop over an
// in-memory catalog, one cart, and the checkout flow.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopCart/internal/cart"
	"ShopCart/internal/catalog"
	"ShopCart/internal/checkout"
	"ShopCart/internal/payment"
	"ShopCart/pkg/kit"
)

func main() {
	log := zap.NewNop()
	if os.Getenv("SHOP_DEBUG") != "" {
		log = kit.NewLogger("shop")
		defer func() { _ = log.Sync() }()
	}

	ctx := context.Background()

	inv := catalog.NewMemStore()
	seed(ctx, inv)

	svc, err := checkout.NewService(ctx, checkout.NewMemStore(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}

	s := session{
		in:   bufio.NewScanner(os.Stdin),
		ctx:  ctx,
		inv:  inv,
		cart: cart.New(),
		svc:  svc,
		log:  log,
	}
	s.run()
}

type session struct {
	in   *bufio.Scanner
	ctx  context.Context
	inv  catalog.Store
	cart *cart.Cart
	svc  *checkout.Service
	log  *zap.Logger
}

func (s *session) run() {
	for {
		fmt.Println("\n1. Show products")
		fmt.Println("2. Add to cart")
		fmt.Println("3. View cart")
		fmt.Println("4. Checkout")
		fmt.Println("5. Export catalog to CSV")
		fmt.Println("6. Exit")

		switch s.prompt("Choice: ") {
		case "1":
			s.showProducts()
		case "2":
			s.addToCart()
		case "3":
			s.viewCart()
		case "4":
			s.checkout()
		case "5":
			s.exportCSV()
		case "6", "":
			return
		default:
			fmt.Println("Unknown choice")
		}
	}
}

func (s *session) showProducts() {
	products, err := s.inv.ListSortedByID(s.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, p := range products {
		fmt.Println(p)
	}
}

func (s *session) addToCart() {
	id, ok := s.promptInt("Product id: ")
	if !ok {
		return
	}
	qty, ok := s.promptInt("Quantity: ")
	if !ok {
		return
	}

	p, err := s.inv.Get(s.ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Println("No such product")
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	committed, err := s.inv.ReduceStock(s.ctx, id, qty)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if !committed {
		fmt.Println("Not enough stock")
		return
	}

	p.ReduceStock(qty)
	s.cart.Add(p, qty)
	fmt.Printf("Added %s x%d\n", p.Name, qty)
}

func (s *session) viewCart() {
	items := s.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, it := range items {
		fmt.Printf("%s x%d = $%s\n", it.Product.Name, it.Qty, it.Subtotal().StringFixed(2))
	}
	fmt.Printf("Total: $%s\n", s.cart.Total().StringFixed(2))
}

func (s *session) checkout() {
	if s.cart.Empty() {
		fmt.Println("Cart is empty!")
		return
	}

	var m payment.Method
	switch s.prompt("1. Card  2. PayPal: ") {
	case "1":
		number := s.prompt("Card number: ")
		holder := s.prompt("Name on card: ")
		m = payment.CreditCard{Number: number, Holder: holder, Log: s.log}
	case "2":
		email := s.prompt("PayPal email: ")
		m = payment.PayPal{Email: email, Log: s.log}
	default:
		fmt.Println("Unknown method")
		return
	}

	o, err := s.svc.Checkout(s.ctx, "console", s.cart, m)
	switch {
	case errors.Is(err, checkout.ErrPaymentDeclined):
		fmt.Println("Payment declined, cart kept")
		return
	case err != nil:
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Order #%d\n", o.ID)
	for _, it := range o.Items {
		fmt.Printf("  %s x%d = $%s\n", it.Product.Name, it.Qty, it.Subtotal().StringFixed(2))
	}
	fmt.Printf("Total: $%s\n", o.Amount.StringFixed(2))
}

func (s *session) exportCSV() {
	name := s.prompt("File name: ")
	if name == "" {
		return
	}

	products, err := s.inv.ListSortedByID(s.ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	f, err := os.Create(name)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer f.Close()

	if err := catalog.WriteCSV(f, products); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Saved", name)
}

func (s *session) prompt(msg string) string {
	fmt.Print(msg)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func (s *session) promptInt(msg string) (int, bool) {
	n, err := strconv.Atoi(s.prompt(msg))
	if err != nil {
		fmt.Println("Enter a number")
		return 0, false
	}
	return n, true
}

func seed(ctx context.Context, inv catalog.Store) {
	for _, p := range []catalog.Product{
		{ID: 1, Name: "Book", Price: decimal.RequireFromString("10.50"), Stock: 10},
		{ID: 2, Name: "Pen", Price: decimal.RequireFromString("2.50"), Stock: 20},
		{ID: 3, Name: "Laptop", Price: decimal.RequireFromString("800.00"), Stock: 5},
	} {
		_ = inv.Upsert(ctx, p)
	}
}
