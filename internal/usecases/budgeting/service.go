package budgeting

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"github.com/vfg2006/content-ops-api/pkg/utils"
)

// Despesas que contam como gasto efetivo de um orçamento
var countedExpenseStatuses = []string{domain.ExpenseStatusApproved, domain.ExpenseStatusPaid}

type Budgeter interface {
	ListBudgets(ctx context.Context, filter domain.BudgetFilter) (*domain.Paginated[*domain.BudgetListItem], error)
	GetUsage(ctx context.Context, budgetID int64) (*domain.BudgetUsage, error)
	GetAlerts(ctx context.Context, now time.Time) ([]*domain.BudgetAlert, error)
}

type Service struct {
	budgetRepo repository.BudgetRepository
	now        func() time.Time
}

func NewService(budgetRepo repository.BudgetRepository) Budgeter {
	return &Service{
		budgetRepo: budgetRepo,
		now:        time.Now,
	}
}

// ComputeUsage calcula os campos derivados de um orçamento
func ComputeUsage(planned, used, alertRate float64) domain.BudgetUsageMetrics {
	rate := utils.Percentage(used, planned)

	return domain.BudgetUsageMetrics{
		RemainingAmount: utils.RoundWithTwoDecimalPlace(planned - used),
		UsageRate:       rate,
		IsOverBudget:    used > planned,
		IsAlert:         rate >= alertRate,
	}
}

func withUsage(b *domain.Budget) *domain.BudgetListItem {
	return &domain.BudgetListItem{
		Budget:             *b,
		BudgetUsageMetrics: ComputeUsage(b.PlannedAmount, b.UsedAmount, b.AlertRate),
	}
}

func (s *Service) ListBudgets(ctx context.Context, filter domain.BudgetFilter) (*domain.Paginated[*domain.BudgetListItem], error) {
	if filter.Status != nil && *filter.Status != domain.BudgetFilterActive && *filter.Status != domain.BudgetFilterExpired {
		return nil, NewBudgetError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, 0, *filter.Status)
	}

	filter.Page = filter.Page.Normalize()
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}

	budgets, total, err := s.budgetRepo.ListBudgets(ctx, filter)
	if err != nil {
		logrus.Error("Erro ao listar orçamentos: ", err)
		return nil, NewBudgetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, 0, "Falha ao listar orçamentos")
	}

	items := make([]*domain.BudgetListItem, 0, len(budgets))
	for _, b := range budgets {
		items = append(items, withUsage(b))
	}

	return domain.NewPaginated(items, filter.Page, total), nil
}

// GetUsage devolve o orçamento com as despesas aprovadas ou pagas da mesma
// categoria e projeto dentro da vigência
func (s *Service) GetUsage(ctx context.Context, budgetID int64) (*domain.BudgetUsage, error) {
	if budgetID == 0 {
		return nil, NewBudgetError(ErrBudgetIDRequired, apiErrors.ErrMissingRequiredData, 0, "")
	}

	budget, err := s.budgetRepo.GetBudgetByID(ctx, budgetID)
	if err != nil {
		logrus.Error("Erro ao buscar orçamento: ", err)
		return nil, NewBudgetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, budgetID, "Falha ao buscar orçamento")
	}
	if budget == nil {
		return nil, NewBudgetError(ErrBudgetNotFound, apiErrors.ErrResourceNotFound, budgetID, "Orçamento não encontrado")
	}

	category := budget.Category
	start, end := budget.StartDate, budget.EndDate
	expenses, err := s.budgetRepo.ListExpenses(ctx, domain.ExpenseFilter{
		ProjectID: budget.ProjectID,
		Category:  &category,
		Statuses:  countedExpenseStatuses,
		From:      &start,
		To:        &end,
	})
	if err != nil {
		logrus.Error("Erro ao buscar despesas: ", err)
		return nil, NewBudgetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, budgetID, "Falha ao buscar despesas")
	}

	return &domain.BudgetUsage{
		Budget:     withUsage(budget),
		Expenses:   expenses,
		ByCategory: groupByCategory(expenses, budget.UsedAmount),
	}, nil
}

// groupByCategory soma as despesas por categoria na ordem em que aparecem
func groupByCategory(expenses []*domain.Expense, used float64) []*domain.CategoryUsage {
	groups := make([]*domain.CategoryUsage, 0)
	index := make(map[domain.BudgetCategory]*domain.CategoryUsage)

	for _, e := range expenses {
		g, ok := index[e.Category]
		if !ok {
			g = &domain.CategoryUsage{Category: e.Category}
			index[e.Category] = g
			groups = append(groups, g)
		}
		g.Amount += e.Amount
	}

	for _, g := range groups {
		g.Amount = utils.RoundWithTwoDecimalPlace(g.Amount)
		g.Percentage = utils.Percentage(g.Amount, used)
	}

	return groups
}

// GetAlerts lista orçamentos vigentes que atingiram a taxa de alerta, do mais consumido ao menos
func (s *Service) GetAlerts(ctx context.Context, now time.Time) ([]*domain.BudgetAlert, error) {
	if now.IsZero() {
		now = s.now()
	}

	budgets, err := s.budgetRepo.ListActiveBudgets(ctx)
	if err != nil {
		logrus.Error("Erro ao listar orçamentos ativos: ", err)
		return nil, NewBudgetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, 0, "Falha ao listar orçamentos")
	}

	alerts := make([]*domain.BudgetAlert, 0)
	for _, b := range budgets {
		if b.EndDate.Before(now) {
			continue
		}

		usage := ComputeUsage(b.PlannedAmount, b.UsedAmount, b.AlertRate)
		if !usage.IsAlert {
			continue
		}

		alerts = append(alerts, &domain.BudgetAlert{
			ID:              b.ID,
			Name:            b.Name,
			ProjectName:     b.ProjectName,
			TotalAmount:     b.PlannedAmount,
			UsedAmount:      b.UsedAmount,
			UsageRate:       usage.UsageRate,
			AlertRate:       b.AlertRate,
			RemainingAmount: usage.RemainingAmount,
			EndDate:         b.EndDate,
			DaysRemaining:   int(math.Ceil(b.EndDate.Sub(now).Hours() / 24)),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].UsageRate > alerts[j].UsageRate
	})

	return alerts, nil
}
