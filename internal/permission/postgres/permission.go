package postgres

import (
	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
	"github.com/studiokita/ops-dashboard/internal/permission"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetAll() ([]*permissionDatamodel.Permission, error) {
	var perms []*permissionDatamodel.Permission
	err := r.db.Order("id ASC").Find(&perms).Error
	return perms, err
}
