package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/internal/usecases/account"
	"github.com/vfg2006/content-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/content-ops-api/internal/usecases/budgeting"
	"github.com/vfg2006/content-ops-api/internal/usecases/importing"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"github.com/vfg2006/content-ops-api/pkg/log"
	"github.com/vfg2006/content-ops-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope é o corpo padrão das respostas de sucesso
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data, Message: message}); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta")
	}
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data, "")
}

// writeUsecaseError traduz os erros tipados dos casos de uso para o corpo de erro da API
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		authErr    *authenticating.AuthError
		accountErr *account.AccountError
		importErr  *importing.ImportError
		budgetErr  *budgeting.BudgetError
	)

	switch {
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
	case errors.As(err, &accountErr):
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)
	case errors.As(err, &importErr):
		apiErrors.WriteError(w, importErr.Code, importErr.Error(), nil)
	case errors.As(err, &budgetErr):
		apiErrors.WriteError(w, budgetErr.Code, budgetErr.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

func currentClaims(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
	}
	return claims, ok
}

// pathID lê um parâmetro numérico da rota
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID não fornecido", nil)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID inválido", nil)
		return 0, false
	}

	return id, true
}

func optionalInt64(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// pageFromQuery lê page e pageSize; valores inválidos caem nos padrões
func pageFromQuery(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("pageSize"))
	return domain.PageRequest{Page: page, PageSize: size}.Normalize()
}
