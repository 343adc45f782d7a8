package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization gates HTTP routes on permission codes. All checks are
// fail-closed: missing user in context or a code outside the resolved set
// yields a denial, never an error or a default-allow.
type RBACAuthorization struct {
	checker PermissionChecker
	logger  *slog.Logger
}

func NewRBACAuthorization(checker PermissionChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		checker: checker,
		logger:  logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, code string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			ra.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !ra.checker.HasPermission(user.Permissions, code) {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"required_permission", code,
				"user_permissions", user.Permissions)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Middleware gates a whole route group on a single permission code.
func (ra *RBACAuthorization) Middleware(code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, code)
	}
}

// RequireAny gates a route group on holding at least one of the codes.
func (ra *RBACAuthorization) RequireAny(codes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !ra.checker.HasAnyPermission(user.Permissions, codes) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_any", codes)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireExpenseApprove() func(http.Handler) http.Handler {
	return ra.Middleware("office_expenses.approve")
}

func (ra *RBACAuthorization) RequireExpenseReject() func(http.Handler) http.Handler {
	return ra.Middleware("office_expenses.reject")
}

func (ra *RBACAuthorization) RequireRoleManage() func(http.Handler) http.Handler {
	return ra.RequireAny("roles.create", "roles.edit", "roles.delete")
}

func (ra *RBACAuthorization) RequireUserView() func(http.Handler) http.Handler {
	return ra.RequireAny("user.view", "users.view")
}
