package handler

import (
	"net/http"

	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
)

type resetPasswordResponse struct {
	Password string `json:"password"`
}

// ListUsers lista os usuários com filtros de palavra-chave, perfil e status
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		status, err := optionalInt(q.Get("status"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "status inválido", nil)
			return
		}

		filter := domain.UserFilter{
			Keyword: optionalString(q.Get("keyword")),
			Status:  status,
			Page:    pageFromQuery(r),
		}
		if role := optionalString(q.Get("role")); role != nil {
			ur := domain.UserRole(*role)
			filter.Role = &ur
		}

		users, err := service.ListUsers(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar usuários")
			return
		}

		writeOK(w, users)
	}
}

// CreateUser cria um novo usuário
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := service.CreateUser(r.Context(), &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao criar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, user, "Usuário criado com sucesso")
	}
}

func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		user, err := service.UpdateUser(r.Context(), claims.UserID, &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao atualizar usuário")
			return
		}

		writeJSON(w, http.StatusOK, user, "Usuário atualizado com sucesso")
	}
}

// ResetPassword gera uma nova senha forte para o usuário alvo
func ResetPassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		password, err := service.ResetPassword(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao gerar senha")
			return
		}

		writeOK(w, resetPasswordResponse{Password: password})
	}
}
