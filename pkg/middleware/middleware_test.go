package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"github.com/vfg2006/content-ops-api/pkg/log"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 1, Username: "admin", Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		validator  fakeValidator
		method     string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "Rota pública sem token", path: "/v1/auth/login", method: http.MethodPost, wantStatus: http.StatusNoContent},
		{name: "Preflight passa sem token", path: "/v1/accounts", method: http.MethodOptions, wantStatus: http.StatusNoContent},
		{name: "Sem header", path: "/v1/accounts", method: http.MethodGet, wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{name: "Sem prefixo Bearer", path: "/v1/accounts", method: http.MethodGet, header: "abc", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidToken},
		{
			name:       "Token expirado",
			validator:  fakeValidator{err: fmt.Errorf("parse: %w", jwt.ErrTokenExpired)},
			path:       "/v1/accounts",
			method:     http.MethodGet,
			header:     "Bearer x",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:       "Token inválido",
			validator:  fakeValidator{err: errors.New("bad")},
			path:       "/v1/accounts",
			method:     http.MethodGet,
			header:     "Bearer x",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "Token válido",
			validator:  fakeValidator{claims: claims},
			path:       "/v1/accounts",
			method:     http.MethodGet,
			header:     "Bearer ok",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestAuthMiddleware_GravaClaimsNoContexto(t *testing.T) {
	claims := &domain.Claims{UserID: 7, Role: domain.RoleOperator}

	var got *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/traffic", nil)
	req.Header.Set("Authorization", "Bearer ok")
	AuthMiddleware(fakeValidator{claims: claims})(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
}

func TestRoleMiddleware(t *testing.T) {
	withClaims := func(role domain.UserRole) http.Handler {
		inner := ContentEditors()(okHandler())
		return AuthMiddleware(fakeValidator{claims: &domain.Claims{UserID: 1, Role: role}})(inner)
	}

	tests := []struct {
		name       string
		role       domain.UserRole
		wantStatus int
	}{
		{name: "Operador pode importar", role: domain.RoleOperator, wantStatus: http.StatusNoContent},
		{name: "Gerente pode importar", role: domain.RoleManager, wantStatus: http.StatusNoContent},
		{name: "Vendas não pode importar", role: domain.RoleSales, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/traffic/import-csv", nil)
			req.Header.Set("Authorization", "Bearer ok")
			rec := httptest.NewRecorder()

			withClaims(tt.role).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("Sem claims no contexto", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminOnly()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("Origem permitida recebe headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traffic", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Origem desconhecida não recebe headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traffic", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("OPTIONS responde 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/traffic", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	h := LoggingMiddleware()(next)

	t.Run("Reaproveita o ID enviado pelo cliente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traffic", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("Gera um ID quando ausente ou longo demais", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traffic", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 100))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})
}
