package repository

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/content-ops-api/internal/domain"
)

// Cada filtro tipado é traduzido campo a campo em um predicado squirrel.
// Campos nil são ignorados, o que preserva a semântica de filtros opcionais.

func trafficPredicates(f domain.TrafficFilter) []squirrel.Sqlizer {
	preds := make([]squirrel.Sqlizer, 0, 5)

	if f.AccountID != nil {
		preds = append(preds, squirrel.Eq{"t.account_id": *f.AccountID})
	}
	if f.ProjectID != nil {
		preds = append(preds, squirrel.Eq{"a.project_id": *f.ProjectID})
	}
	if f.Platform != nil {
		preds = append(preds, squirrel.Eq{"a.platform": string(*f.Platform)})
	}
	if f.StartDate != nil {
		preds = append(preds, squirrel.GtOrEq{"t.publish_date": *f.StartDate})
	}
	if f.EndDate != nil {
		preds = append(preds, squirrel.LtOrEq{"t.publish_date": *f.EndDate})
	}

	return preds
}

func accountPredicates(f domain.AccountFilter) []squirrel.Sqlizer {
	preds := make([]squirrel.Sqlizer, 0, 4)

	if f.ProjectID != nil {
		preds = append(preds, squirrel.Eq{"a.project_id": *f.ProjectID})
	}
	if f.Platform != nil {
		preds = append(preds, squirrel.Eq{"a.platform": string(*f.Platform)})
	}
	if f.Status != nil {
		preds = append(preds, squirrel.Eq{"a.status": *f.Status})
	}
	if f.Keyword != nil && strings.TrimSpace(*f.Keyword) != "" {
		pattern := "%" + strings.TrimSpace(*f.Keyword) + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"a.account_name": pattern},
			squirrel.ILike{"a.external_account_id": pattern},
		})
	}

	return preds
}

func userPredicates(f domain.UserFilter) []squirrel.Sqlizer {
	preds := make([]squirrel.Sqlizer, 0, 3)

	if f.Role != nil {
		preds = append(preds, squirrel.Eq{"role": string(*f.Role)})
	}
	if f.Status != nil {
		preds = append(preds, squirrel.Eq{"status": *f.Status})
	}
	if f.Keyword != nil && strings.TrimSpace(*f.Keyword) != "" {
		pattern := "%" + strings.TrimSpace(*f.Keyword) + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"name": pattern},
		})
	}

	return preds
}

func budgetPredicates(f domain.BudgetFilter) []squirrel.Sqlizer {
	preds := make([]squirrel.Sqlizer, 0, 3)

	if f.ProjectID != nil {
		preds = append(preds, squirrel.Eq{"b.project_id": *f.ProjectID})
	}
	if f.Status != nil {
		switch *f.Status {
		case domain.BudgetFilterActive:
			preds = append(preds,
				squirrel.Eq{"b.status": domain.BudgetStatusActive},
				squirrel.GtOrEq{"b.end_date": f.Now},
			)
		case domain.BudgetFilterExpired:
			preds = append(preds, squirrel.Or{
				squirrel.NotEq{"b.status": domain.BudgetStatusActive},
				squirrel.Lt{"b.end_date": f.Now},
			})
		}
	}

	return preds
}

func expensePredicates(f domain.ExpenseFilter) []squirrel.Sqlizer {
	preds := make([]squirrel.Sqlizer, 0, 5)

	if f.ProjectID != nil {
		preds = append(preds, squirrel.Eq{"e.project_id": *f.ProjectID})
	} else {
		preds = append(preds, squirrel.Eq{"e.project_id": nil})
	}
	if f.Category != nil {
		preds = append(preds, squirrel.Eq{"e.category": string(*f.Category)})
	}
	if len(f.Statuses) > 0 {
		preds = append(preds, squirrel.Eq{"e.status": f.Statuses})
	}
	if f.From != nil {
		preds = append(preds, squirrel.GtOrEq{"e.expense_date": *f.From})
	}
	if f.To != nil {
		preds = append(preds, squirrel.LtOrEq{"e.expense_date": *f.To})
	}

	return preds
}

func where(b squirrel.SelectBuilder, preds []squirrel.Sqlizer) squirrel.SelectBuilder {
	for _, p := range preds {
		b = b.Where(p)
	}
	return b
}
