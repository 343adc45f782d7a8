package auth

// The permission gate is fail-closed: a missing user, an empty permission
// set, or an unknown code all deny. It never returns an error. Note that a
// gate decision alone is not enforcement — every mutating service checks
// again on its own, so denial here is necessary but not sufficient.

// HasPermission reports whether the user holds the given permission code.
func HasPermission(u *User, code string) bool {
	if u == nil || code == "" {
		return false
	}
	for _, p := range u.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the user holds at least one of the codes.
func HasAnyPermission(u *User, codes ...string) bool {
	for _, code := range codes {
		if HasPermission(u, code) {
			return true
		}
	}
	return false
}

// PermissionChecker decides authorization from a raw permission-code set,
// for callers that carry codes rather than a *User.
type PermissionChecker interface {
	HasPermission(userPermissions []string, code string) bool
	HasAnyPermission(userPermissions []string, required []string) bool
	CanApproveExpenses(userPermissions []string) bool
	CanRejectExpenses(userPermissions []string) bool
	CanManageRoles(userPermissions []string) bool
	CanViewUsers(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) HasPermission(userPermissions []string, code string) bool {
	return c.HasAnyPermission(userPermissions, []string{code})
}

func (c *DefaultPermissionChecker) HasAnyPermission(userPermissions []string, required []string) bool {
	for _, userPerm := range userPermissions {
		for _, requiredPerm := range required {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) CanApproveExpenses(userPermissions []string) bool {
	return c.HasPermission(userPermissions, "office_expenses.approve")
}

func (c *DefaultPermissionChecker) CanRejectExpenses(userPermissions []string) bool {
	return c.HasPermission(userPermissions, "office_expenses.reject")
}

func (c *DefaultPermissionChecker) CanManageRoles(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"roles.create", "roles.edit", "roles.delete"})
}

func (c *DefaultPermissionChecker) CanViewUsers(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"user.view", "users.view"})
}
