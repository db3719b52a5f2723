package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SunShop/pkg/kit"
)

type Server struct {
	Engine *Engine
	Log    *zap.Logger
}

func (s *Server) ItemsHandler() http.HandlerFunc  { return s.items }
func (s *Server) AddHandler() http.HandlerFunc    { return s.add }
func (s *Server) RemoveHandler() http.HandlerFunc { return s.remove }

func (s *Server) items(w http.ResponseWriter, r *http.Request) {
	username, ok := UsernameFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, s.Engine.Items(username))
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	username, ok := UsernameFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	productID := chi.URLParam(r, "productId")
	items, err := s.Engine.Add(r.Context(), username, productID)
	if err != nil {
		s.writeEngineError(w, r, err, productID)
		return
	}

	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	username, ok := UsernameFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	productID := chi.URLParam(r, "productId")
	items, err := s.Engine.Remove(r.Context(), username, productID)
	if err != nil {
		s.writeEngineError(w, r, err, productID)
		return
	}

	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error, productID string) {
	if errors.Is(err, ErrUnknownProduct) {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product id", map[string]any{"id": productID})
		return
	}
	s.Log.Error("cart operation failed", zap.Error(err), zap.String("product_id", productID))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
