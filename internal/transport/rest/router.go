package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/studiokita/ops-dashboard/internal/auth"
	"github.com/studiokita/ops-dashboard/internal/expense"
	"github.com/studiokita/ops-dashboard/internal/notification"
	"github.com/studiokita/ops-dashboard/internal/permission"
	"github.com/studiokita/ops-dashboard/internal/role"
	"github.com/studiokita/ops-dashboard/internal/transport/middleware"
	"github.com/studiokita/ops-dashboard/internal/transport/swagger"
	"github.com/studiokita/ops-dashboard/internal/user"
)

// RegisterAllRoutes wires every HTTP route. Mutating role and expense
// routes are gated on permission codes; the services behind them check
// again, so the gate is a first filter, not the enforcement point.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	authService auth.ServiceAPI,
	rbac *auth.RBACAuthorization,
	userHandler *user.Handler,
	permissionHandler *permission.Handler,
	roleHandler *role.Handler,
	expenseHandler *expense.Handler,
	hub *notification.Hub,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	if hub != nil {
		router.Get("/ws", notification.ServeWS(hub, authService, logger))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Group(func(ur chi.Router) {
				ur.Use(rbac.RequireUserView())
				ur.Get("/users", userHandler.GetUsers)
			})

			pr.With(rbac.Middleware("roles.view")).Get("/permissions", permissionHandler.GetPermissions)

			pr.Route("/roles", func(rr chi.Router) {
				rr.With(rbac.Middleware("roles.view")).Get("/", roleHandler.GetRoles)
				rr.With(rbac.Middleware("roles.create")).Post("/", roleHandler.CreateRole)
				rr.With(rbac.Middleware("roles.edit")).Patch("/{id}", roleHandler.UpdateRole)
				rr.With(rbac.Middleware("roles.edit")).Put("/{id}/permissions", roleHandler.SetPermissions)
				rr.With(rbac.Middleware("roles.delete")).Delete("/{id}", roleHandler.DeleteRole)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.SubmitExpense)
				er.Get("/", expenseHandler.GetExpenses)
				er.Get("/{id}", expenseHandler.GetExpense)

				er.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireExpenseApprove())
					mr.Patch("/{id}/approve", expenseHandler.ApproveExpense)
				})

				er.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireExpenseReject())
					mr.Patch("/{id}/reject", expenseHandler.RejectExpense)
				})
			})
		})
	})
}
