package role

import (
	"time"

	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
)

// Role is a named access bundle. System roles are seeded and protected:
// they cannot be deleted and their name cannot change.
type Role struct {
	ID          int64                            `gorm:"primaryKey"`
	Name        string                           `gorm:"column:name;uniqueIndex;not null"`
	Description string                           `gorm:"column:description"`
	IsSystem    bool                             `gorm:"column:is_system;default:false"`
	Permissions []permissionDatamodel.Permission `gorm:"many2many:role_permissions;"`
	CreatedAt   time.Time                        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}
