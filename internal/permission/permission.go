package permission

import (
	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
)

// Node is a single grantable capability from the permission catalog.
// The code is a dotted "<module>.<action>" string; the catalog is read-only
// from the application's point of view, entries change only at deployment time.
type Node struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func FromDataModel(p *permissionDatamodel.Permission) Node {
	return Node{
		ID:          p.ID,
		Code:        p.Code,
		Description: p.Description,
	}
}

func ToDataModel(n Node) *permissionDatamodel.Permission {
	return &permissionDatamodel.Permission{
		ID:          n.ID,
		Code:        n.Code,
		Description: n.Description,
	}
}
