package role

import (
	"strings"

	"github.com/studiokita/ops-dashboard/internal"
)

type CreateRoleDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// Validate rejects empty or whitespace-only names before any repository call.
func (d CreateRoleDTO) Validate() *internal.AppError {
	if strings.TrimSpace(d.Name) == "" {
		return internal.ErrEmptyRoleName
	}
	return nil
}

// UpdateRoleDTO carries partial metadata updates. Nil means "leave unchanged";
// the permission grant set is replaced through SetPermissionsDTO, never here.
type UpdateRoleDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateRoleDTO) Validate() *internal.AppError {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.ErrEmptyRoleName
	}
	return nil
}

// SetPermissionsDTO replaces a role's entire grant set. An empty list is a
// valid request and clears all grants.
type SetPermissionsDTO struct {
	PermissionIDs []int64 `json:"permission_ids"`
}

type RolesResponse struct {
	Roles []Role `json:"roles"`
}
