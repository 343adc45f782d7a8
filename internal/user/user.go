package user

import (
	"errors"
	"time"

	userDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/user"
	"github.com/studiokita/ops-dashboard/internal/role"
)

// NoRoleName is displayed when every tier of role resolution comes up empty.
const NoRoleName = "No Role"

// User references a role rather than owning one. LegacyRole is the free-text
// label kept from before roles were first-class rows; it only matters when
// RoleID cannot be resolved.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Designation string     `json:"designation"`
	RoleID      *int64     `json:"role_id"`
	Role        *role.Role `json:"role,omitempty"`
	LegacyRole  string     `json:"legacy_role,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

var ErrNotFound = errors.New("user not found")

// EffectiveRole is the resolved display name plus the authoritative
// permission set for a user.
type EffectiveRole struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// ResolveEffectiveRole computes the user's display role and permission set
// from already-fetched data, in strict precedence order: the RoleID looked
// up against loadedRoles, then the joined role object, then the legacy
// label, then NoRoleName. Only a resolved Role contributes permissions; a
// stale id or a bare label yields an empty set, never an error. The
// function performs no I/O so it holds regardless of which of the two
// fetches (users, roles) finished first.
func ResolveEffectiveRole(u *User, loadedRoles []role.Role) EffectiveRole {
	if u == nil {
		return EffectiveRole{Name: NoRoleName, Permissions: []string{}}
	}

	if u.RoleID != nil {
		for i := range loadedRoles {
			if loadedRoles[i].ID == *u.RoleID {
				return EffectiveRole{
					Name:        loadedRoles[i].Name,
					Permissions: loadedRoles[i].PermissionCodes(),
				}
			}
		}
	}

	if u.Role != nil {
		return EffectiveRole{
			Name:        u.Role.Name,
			Permissions: u.Role.PermissionCodes(),
		}
	}

	if u.LegacyRole != "" {
		return EffectiveRole{Name: u.LegacyRole, Permissions: []string{}}
	}

	return EffectiveRole{Name: NoRoleName, Permissions: []string{}}
}

func FromDataModel(dm *userDatamodel.User) *User {
	u := &User{
		ID:          dm.ID,
		Email:       dm.Email,
		Name:        dm.Name,
		Designation: dm.Designation,
		RoleID:      dm.RoleID,
		LegacyRole:  dm.LegacyRole,
		IsActive:    dm.IsActive,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
	if dm.Role != nil {
		u.Role = role.FromDataModel(dm.Role)
	}
	return u
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Designation: u.Designation,
		RoleID:      u.RoleID,
		LegacyRole:  u.LegacyRole,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
