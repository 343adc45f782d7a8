package role

import (
	"time"

	roleDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/role"
	"github.com/studiokita/ops-dashboard/internal/permission"
)

// Role is a named access bundle. System roles are seeded with the schema;
// they cannot be deleted and their name is locked, though the description
// stays editable. UserCount is derived at read time, never stored.
type Role struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsSystem    bool              `json:"is_system"`
	UserCount   int64             `json:"user_count"`
	Permissions []permission.Node `json:"permissions"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PermissionCodes returns the effective permission set granted by this role.
func (r *Role) PermissionCodes() []string {
	codes := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		codes = append(codes, p.Code)
	}
	return codes
}

// PermissionIDs returns the ids of the granted catalog nodes.
func (r *Role) PermissionIDs() []int64 {
	ids := make([]int64, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		ids = append(ids, p.ID)
	}
	return ids
}

func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

func FromDataModel(dm *roleDatamodel.Role) *Role {
	perms := make([]permission.Node, 0, len(dm.Permissions))
	for i := range dm.Permissions {
		perms = append(perms, permission.FromDataModel(&dm.Permissions[i]))
	}
	return &Role{
		ID:          dm.ID,
		Name:        dm.Name,
		Description: dm.Description,
		IsSystem:    dm.IsSystem,
		Permissions: perms,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
