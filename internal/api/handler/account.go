package handler

import (
	"net/http"

	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/internal/usecases/account"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
)

func AccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		projectID, err := optionalInt64(q.Get("projectId"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "projectId inválido", nil)
			return
		}

		status, err := optionalInt(q.Get("status"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "status inválido", nil)
			return
		}

		filter := domain.AccountFilter{
			ProjectID: projectID,
			Status:    status,
			Keyword:   optionalString(q.Get("keyword")),
			Page:      pageFromQuery(r),
		}
		if platform := optionalString(q.Get("platform")); platform != nil {
			p := domain.Platform(*platform)
			filter.Platform = &p
		}

		accounts, err := service.ListAccounts(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar contas")
			return
		}

		writeOK(w, accounts)
	})
}

func GetAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		acc, err := service.GetAccount(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao buscar conta")
			return
		}

		writeOK(w, acc)
	})
}

func CreateAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateAccountRequest
		if !decodeBody(w, r, &req) {
			return
		}

		acc, err := service.CreateAccount(r.Context(), &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao criar conta")
			return
		}

		writeJSON(w, http.StatusCreated, acc, "Conta criada com sucesso")
	})
}

func UpdateAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateAccountRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		acc, err := service.UpdateAccount(r.Context(), &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao atualizar conta")
			return
		}

		writeJSON(w, http.StatusOK, acc, "Conta atualizada com sucesso")
	})
}

func DeleteAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := service.DeleteAccount(r.Context(), id); err != nil {
			writeUsecaseError(w, r, err, "Erro ao remover conta")
			return
		}

		writeJSON(w, http.StatusOK, nil, "Conta removida com sucesso")
	})
}
