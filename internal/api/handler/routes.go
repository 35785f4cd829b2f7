package handler

import (
	"net/http"

	"github.com/vfg2006/content-ops-api/internal/api/handler/router"
	"github.com/vfg2006/content-ops-api/internal/config"
	"github.com/vfg2006/content-ops-api/internal/usecases/account"
	"github.com/vfg2006/content-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/content-ops-api/internal/usecases/budgeting"
	"github.com/vfg2006/content-ops-api/internal/usecases/importing"
	"github.com/vfg2006/content-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/content-ops-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/auth/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/auth/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/auth/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/reset-password",
			Method:      http.MethodPost,
			Handler:     ResetPassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Accounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts",
			Method:      http.MethodGet,
			Handler:     AccountList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts",
			Method:      http.MethodPost,
			Handler:     CreateAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ContentEditors()},
		},
		{
			Path:        "/v1/accounts/:id",
			Method:      http.MethodGet,
			Handler:     GetAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ContentEditors()},
		},
		{
			Path:        "/v1/accounts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

func Traffic(insights insighting.Insighter, importer importing.Importer, limits config.Import) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/traffic",
			Method:      http.MethodGet,
			Handler:     TrafficList(insights),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/traffic/dashboard",
			Method:      http.MethodGet,
			Handler:     TrafficDashboard(insights),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/traffic/trend",
			Method:      http.MethodGet,
			Handler:     TrafficTrend(insights),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/traffic/import",
			Method:      http.MethodPost,
			Handler:     ImportTrafficExcel(importer, limits),
			Middlewares: []func(http.Handler) http.Handler{middleware.ContentEditors()},
		},
		{
			Path:        "/v1/traffic/import-csv",
			Method:      http.MethodPost,
			Handler:     ImportTrafficCSV(importer, limits),
			Middlewares: []func(http.Handler) http.Handler{middleware.ContentEditors()},
		},
		{
			Path:        "/v1/traffic/import-records",
			Method:      http.MethodGet,
			Handler:     ImportRecordList(insights),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Budgets(service budgeting.Budgeter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/budgets",
			Method:      http.MethodGet,
			Handler:     BudgetList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/budget-alerts",
			Method:      http.MethodGet,
			Handler:     BudgetAlerts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/budgets/:id/usage",
			Method:      http.MethodGet,
			Handler:     BudgetUsage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
