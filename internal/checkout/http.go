package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopCart/internal/auth"
	"ShopCart/internal/cart"
	"ShopCart/internal/catalog"
	"ShopCart/internal/payment"
	"ShopCart/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Carts   *cart.Store
	Catalog catalog.Store
	Service *Service
	Log     *zap.Logger
}

// Routes covers the cart and checkout surface; mount behind auth.RequireJWT.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/cart", s.viewCart)
	r.Post("/cart/items", s.addToCart)
	r.Delete("/cart", s.clearCart)

	r.Post("/checkout", s.checkout)

	r.Get("/orders", s.listOrders)
	r.Get("/orders/{id}", s.getOrder)

	return r
}

type cartView struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (s *Server) viewCart(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no identity", nil)
		return
	}

	c := s.Carts.ForUser(id.UserID)
	kit.WriteJSON(w, http.StatusOK, cartView{Items: c.Items(), Total: c.Total()})
}

type addItemReq struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// addToCart commits stock first, then creates the cart line, mirroring the
// policy that a line exists only for stock already reserved.
func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no identity", nil)
		return
	}

	var req addItemReq
	if !s.decode(w, r, &req) {
		return
	}
	if req.Qty <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "qty must be positive", nil)
		return
	}

	p, err := s.Catalog.Get(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": req.ProductID})
		return
	}
	if err != nil {
		s.Log.Error("catalog get failed", zap.Error(err), zap.Int("product_id", req.ProductID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	ok, err = s.Catalog.ReduceStock(r.Context(), req.ProductID, req.Qty)
	if err != nil {
		s.Log.Error("reduce stock failed", zap.Error(err), zap.Int("product_id", req.ProductID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusConflict, "insufficient stock", map[string]any{
			"id":  req.ProductID,
			"qty": req.Qty,
		})
		return
	}

	// Mirror the committed decrement on the snapshot the cart will hold.
	p.ReduceStock(req.Qty)

	c := s.Carts.ForUser(id.UserID)
	c.Add(p, req.Qty)

	kit.WriteJSON(w, http.StatusOK, cartView{Items: c.Items(), Total: c.Total()})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no identity", nil)
		return
	}

	s.Carts.ForUser(id.UserID).Clear()
	w.WriteHeader(http.StatusNoContent)
}

type checkoutReq struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	Holder     string `json:"holder,omitempty"`
	Email      string `json:"email,omitempty"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no identity", nil)
		return
	}

	var req checkoutReq
	if !s.decode(w, r, &req) {
		return
	}

	var m payment.Method
	switch req.Method {
	case "card":
		m = payment.CreditCard{Number: req.CardNumber, Holder: req.Holder, Log: s.Log}
	case "paypal":
		m = payment.PayPal{Email: req.Email, Log: s.Log}
	default:
		kit.WriteError(w, r, http.StatusBadRequest, "unknown payment method", map[string]any{"method": req.Method})
		return
	}

	c := s.Carts.ForUser(id.UserID)

	o, err := s.Service.Checkout(r.Context(), id.UserID, c, m)
	switch {
	case errors.Is(err, ErrEmptyCart):
		kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
		return
	case errors.Is(err, ErrPaymentDeclined):
		kit.WriteError(w, r, http.StatusConflict, "payment declined", nil)
		return
	case err != nil:
		s.Log.Error("checkout failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no identity", nil)
		return
	}

	orders, err := s.Service.Orders.ListByUser(r.Context(), id.UserID)
	if err != nil {
		s.Log.Error("list orders failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no identity", nil)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", nil)
		return
	}

	o, found, err := s.Service.Orders.Get(r.Context(), orderID)
	if err != nil {
		s.Log.Error("get order failed", zap.Error(err), zap.Int64("order_id", orderID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": orderID})
		return
	}
	if o.UserID != id.UserID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return false
	}
	return true
}
