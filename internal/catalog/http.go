package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopCart/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Routes is the public, read-only catalog surface, mounted under /products.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/{id}", s.get)

	return r
}

// AdminRoutes is the mutating surface; the caller is expected to mount it
// behind an admin-role gate.
func (s *Server) AdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/products", s.upsert)
	r.Put("/products/{id}/price", s.setPrice)
	r.Put("/products/{id}/stock", s.setStock)
	r.Get("/products/export", s.exportCSV)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListSortedByID(r.Context())
	if err != nil {
		s.Log.Error("list products failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", nil)
		return
	}

	p, err := s.Store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.Log.Error("get product failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type upsertReq struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (s *Server) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertReq
	if !s.decode(w, r, &req) {
		return
	}

	p, err := NewProduct(req.ID, req.Name, req.Price, req.Stock)
	if errors.Is(err, ErrInvalidValue) {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if err := s.Store.Upsert(r.Context(), p); err != nil {
		s.Log.Error("upsert product failed", zap.Error(err), zap.Int("id", p.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type setPriceReq struct {
	Price decimal.Decimal `json:"price"`
}

func (s *Server) setPrice(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(p *Product) error {
		var req setPriceReq
		if !s.decode(w, r, &req) {
			return errHandled
		}
		return p.SetPrice(req.Price)
	})
}

type setStockReq struct {
	Stock int `json:"stock"`
}

func (s *Server) setStock(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(p *Product) error {
		var req setStockReq
		if !s.decode(w, r, &req) {
			return errHandled
		}
		return p.SetStock(req.Stock)
	})
}

// errHandled signals that the mutator already wrote a response.
var errHandled = errors.New("response already written")

func (s *Server) mutate(w http.ResponseWriter, r *http.Request, apply func(*Product) error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", nil)
		return
	}

	p, err := s.Store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.Log.Error("get product failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	switch err := apply(&p); {
	case errors.Is(err, errHandled):
		return
	case errors.Is(err, ErrInvalidValue):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if err := s.Store.Upsert(r.Context(), p); err != nil {
		s.Log.Error("store product failed", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListSortedByID(r.Context())
	if err != nil {
		s.Log.Error("export failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	if err := WriteCSV(w, products); err != nil {
		s.Log.Error("export write failed", zap.Error(err))
	}
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
