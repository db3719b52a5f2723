package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLoginServer(t *testing.T) *Server {
	t.Helper()

	return &Server{
		Log: zap.NewNop(),
		Users: NewMemStore([]User{
			{Username: "greenlion235", Password: "waters"},
			{Username: "lazywolf342", Password: "tucker"},
		}),
		Sessions: NewSessions(15 * time.Minute),
		Guard:    NewGuard(3),
	}
}

func postLogin(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.LoginHandler()(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	s := newLoginServer(t)

	rec := postLogin(t, s, `{"username":"greenlion235","password":"waters"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Len(t, token, 16)
}

func TestLogin_RepeatReturnsSameToken(t *testing.T) {
	s := newLoginServer(t)

	var first, second string

	rec := postLogin(t, s, `{"username":"greenlion235","password":"waters"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postLogin(t, s, `{"username":"greenlion235","password":"waters"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, first, second)
	assert.Equal(t, 0, s.Guard.Attempts("greenlion235"))
}

func TestLogin_MissingFields(t *testing.T) {
	s := newLoginServer(t)

	for _, body := range []string{
		`{"username":"lazywolf342"}`,
		`{"password":"tucker"}`,
		`{"username":"","password":"tucker"}`,
		`{}`,
		`not json`,
	} {
		rec := postLogin(t, s, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newLoginServer(t)

	// Valid username with another user's valid password is still a miss.
	rec := postLogin(t, s, `{"username":"greenlion235","password":"tucker"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, s.Guard.Attempts("greenlion235"))
}

func TestLogin_UnknownUsername(t *testing.T) {
	s := newLoginServer(t)

	rec := postLogin(t, s, `{"username":"ghost","password":"boo"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, s.Guard.Attempts("ghost"))
}

func TestLogin_LockoutOutlivesCorrectPassword(t *testing.T) {
	s := newLoginServer(t)

	for i := 0; i < 3; i++ {
		rec := postLogin(t, s, `{"username":"greenlion235","password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// Fourth attempt with the right password is rejected without the
	// counter moving; only a recorded success would clear it, and the
	// guard never lets one happen.
	rec := postLogin(t, s, `{"username":"greenlion235","password":"waters"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 3, s.Guard.Attempts("greenlion235"))
}
