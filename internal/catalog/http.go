package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SunShop/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) BrandsHandler() http.HandlerFunc        { return s.brands }
func (s *Server) BrandProductsHandler() http.HandlerFunc { return s.brandProducts }
func (s *Server) ProductsHandler() http.HandlerFunc      { return s.products }

func (s *Server) brands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.Store.Brands(r.Context())
	if err != nil {
		s.Log.Error("list brands failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, brands)
}

func (s *Server) brandProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Unknown brand is checked before filtering so an empty but valid
	// brand still answers 200 with an empty array.
	_, ok, err := s.Store.BrandByID(r.Context(), id)
	if err != nil {
		s.Log.Error("get brand failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "brand not found", map[string]any{"id": id})
		return
	}

	products, err := s.Store.ProductsByBrand(r.Context(), id)
	if err != nil {
		s.Log.Error("list brand products failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	var (
		products []Product
		err      error
	)
	if query == "" {
		products, err = s.Store.Products(r.Context())
	} else {
		products, err = s.Store.Search(r.Context(), query)
	}
	if err != nil {
		s.Log.Error("list products failed", zap.Error(err), zap.String("query", query))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if query != "" && len(products) == 0 {
		kit.WriteError(w, r, http.StatusNotFound, "no products match query", map[string]any{"query": query})
		return
	}

	kit.WriteJSON(w, http.StatusOK, products)
}
