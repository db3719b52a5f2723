package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"SunShop/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Log      *zap.Logger
	Users    UserStore
	Sessions *Sessions
	Guard    *Guard
}

func (s *Server) LoginHandler() http.HandlerFunc { return s.login }

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if req.Username == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "username/password required", nil)
		return
	}

	// A locked-out username fails before credentials are consulted, and
	// the caller cannot tell lockout from a bad password.
	if s.Guard.Locked(req.Username) {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	u, err := s.Users.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			s.Log.Error("verify credentials failed", zap.Error(err))
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
			return
		}
		s.Guard.RecordFailure(req.Username)
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	s.Guard.RecordSuccess(u.Username)
	token := s.Sessions.IssueOrRenew(u.Username)

	kit.WriteJSON(w, http.StatusOK, token)
}
