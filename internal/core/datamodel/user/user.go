package user

import (
	"time"

	roleDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/role"
)

// User carries an optional role reference plus the free-text legacy_role
// label kept from before roles became first-class rows. Effective role
// resolution prefers RoleID, then the joined Role, then LegacyRole.
type User struct {
	ID           int64              `gorm:"primaryKey"`
	Email        string             `gorm:"column:email;uniqueIndex;not null"`
	Name         string             `gorm:"column:name;not null"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Designation  string             `gorm:"column:designation"`
	RoleID       *int64             `gorm:"column:role_id"`
	Role         *roleDatamodel.Role `gorm:"foreignKey:RoleID"`
	LegacyRole   string             `gorm:"column:legacy_role"`
	IsActive     bool               `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
