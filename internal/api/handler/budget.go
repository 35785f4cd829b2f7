package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/internal/usecases/budgeting"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
)

func BudgetList(service budgeting.Budgeter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		projectID, err := optionalInt64(q.Get("projectId"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "projectId inválido", nil)
			return
		}

		budgets, err := service.ListBudgets(r.Context(), domain.BudgetFilter{
			ProjectID: projectID,
			Status:    optionalString(q.Get("status")),
			Page:      pageFromQuery(r),
		})
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar orçamentos")
			return
		}

		writeOK(w, budgets)
	})
}

func BudgetUsage(service budgeting.Budgeter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		usage, err := service.GetUsage(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao calcular o uso do orçamento")
			return
		}

		writeOK(w, usage)
	})
}

func BudgetAlerts(service budgeting.Budgeter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		alerts, err := service.GetAlerts(r.Context(), time.Now())
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar alertas de orçamento")
			return
		}

		writeOK(w, alerts)
	})
}
