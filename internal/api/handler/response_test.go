package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/content-ops-api/internal/usecases/account"
	"github.com/vfg2006/content-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/content-ops-api/internal/usecases/budgeting"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
)

func TestWriteUsecaseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Credenciais inválidas",
			err:        authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, ""),
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:       "Conta inexistente",
			err:        account.NewAccountErrorWithID(account.ErrAccountNotFound, apiErrors.ErrResourceNotFound, 3, ""),
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrResourceNotFound,
		},
		{
			name:       "Orçamento inexistente",
			err:        budgeting.NewBudgetError(budgeting.ErrBudgetNotFound, apiErrors.ErrResourceNotFound, 3, ""),
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrResourceNotFound,
		},
		{
			name:       "Erro genérico vira 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeUsecaseError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "falha")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body apiErrors.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestPathID(t *testing.T) {
	withParam := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), httprouter.ParamsKey, httprouter.Params{{Key: "id", Value: value}})
		return req.WithContext(ctx)
	}

	id, ok := pathID(httptest.NewRecorder(), withParam("42"), "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	rec := httptest.NewRecorder()
	_, ok = pathID(rec, withParam("abc"), "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	_, ok = pathID(rec, withParam("-1"), "id")
	assert.False(t, ok)
}

func TestPageFromQuery(t *testing.T) {
	page := pageFromQuery(httptest.NewRequest(http.MethodGet, "/?page=abc&pageSize=0", nil))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}
