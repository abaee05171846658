package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuth struct {
	user  *entity.User
	err   error
	token string
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*entity.User, error) {
	s.token = token
	return s.user, s.err
}

func TestAuthSession(t *testing.T) {
	tests := []struct {
		name   string
		header string
		auth   *stubAuth
		code   int
	}{
		{
			name:   "valid session",
			header: "Bearer 6f1c2a9e-token",
			auth:   &stubAuth{user: &entity.User{Base: entity.Base{ID: 5}, Role: entity.RoleCosplayer}},
			code:   http.StatusOK,
		},
		{name: "missing header", header: "", auth: &stubAuth{}, code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", auth: &stubAuth{}, code: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", auth: &stubAuth{}, code: http.StatusUnauthorized},
		{
			name:   "expired session",
			header: "Bearer old",
			auth:   &stubAuth{err: utils.Unauthorized("session expired")},
			code:   http.StatusUnauthorized,
		},
		{
			name:   "store down",
			header: "Bearer tok",
			auth:   &stubAuth{err: errors.New("connection refused")},
			code:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotRole, gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = utils.GetUserIDFromContext(r.Context())
				gotRole, _ = utils.GetRoleFromContext(r.Context())
				gotToken, _ = utils.GetTokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthSession(tt.auth, zap.NewNop())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, int64(5), gotID)
				assert.Equal(t, "cosplayer", gotRole)
				assert.Equal(t, "6f1c2a9e-token", gotToken)
				assert.Equal(t, "6f1c2a9e-token", tt.auth.token)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 1, "admin"))
		rec := httptest.NewRecorder()

		Admin(zap.NewNop())(ok).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one of several", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 2, "cosplayer"))
		rec := httptest.NewRecorder()

		RequireRole(zap.NewNop(), entity.RoleCustomer, entity.RoleCosplayer)(ok).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 3, "customer"))
		rec := httptest.NewRecorder()

		Admin(zap.NewNop())(ok).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()

		Admin(zap.NewNop())(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("nil map write") })
	rec := httptest.NewRecorder()

	Recover(zap.NewNop())(boom).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestLogger_PassesStatusThrough(t *testing.T) {
	created := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) })
	rec := httptest.NewRecorder()

	Logger(zap.NewNop())(created).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	CORS([]string{"https://app.example.com"})(next).ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
