package handler

import (
	"net/http"

	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/content-ops-api/pkg/log"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := service.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithField("user_name", req.Username).Warn("Falha no login")
			writeUsecaseError(w, r, err, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, resp, "Login realizado com sucesso")
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		user, err := service.GetCurrentUser(r.Context(), claims.UserID)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeOK(w, user)
	}
}

// ChangePassword permite que o usuário autenticado altere a própria senha
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req domain.ChangePasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := service.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
			writeUsecaseError(w, r, err, "Erro ao alterar senha")
			return
		}

		writeJSON(w, http.StatusOK, nil, "Senha alterada com sucesso")
	}
}
