package postgres

import (
	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
	roleDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/role"
	userDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/user"
	"github.com/studiokita/ops-dashboard/internal/role"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(id int64) (*roleDatamodel.Role, error) {
	var dr roleDatamodel.Role
	err := r.db.Preload("Permissions").Where("id = ?", id).First(&dr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dr, nil
}

func (r *RoleRepository) Create(dr *roleDatamodel.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		perms := dr.Permissions
		dr.Permissions = nil
		if err := tx.Create(dr).Error; err != nil {
			return err
		}
		if err := tx.Model(dr).Association("Permissions").Replace(perms); err != nil {
			return err
		}
		dr.Permissions = perms
		return nil
	})
}

func (r *RoleRepository) Update(dr *roleDatamodel.Role) error {
	return r.db.Model(&roleDatamodel.Role{ID: dr.ID}).
		Updates(map[string]interface{}{
			"name":        dr.Name,
			"description": dr.Description,
		}).Error
}

func (r *RoleRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		dr := roleDatamodel.Role{ID: id}
		if err := tx.Model(&dr).Association("Permissions").Clear(); err != nil {
			return err
		}
		return tx.Delete(&dr).Error
	})
}

// ReplacePermissions swaps the whole grant set in one association replace.
// An empty slice clears every grant for the role.
func (r *RoleRepository) ReplacePermissions(roleID int64, perms []permissionDatamodel.Permission) error {
	dr := roleDatamodel.Role{ID: roleID}
	return r.db.Model(&dr).Association("Permissions").Replace(perms)
}

func (r *RoleRepository) GetPermissionsByIDs(ids []int64) ([]permissionDatamodel.Permission, error) {
	var perms []permissionDatamodel.Permission
	err := r.db.Where("id IN ?", ids).Find(&perms).Error
	return perms, err
}

// UserCounts returns, per role id, how many users are currently bound to it.
func (r *RoleRepository) UserCounts() (map[int64]int64, error) {
	type roleCount struct {
		RoleID int64
		Count  int64
	}

	var rows []roleCount
	err := r.db.Model(&userDatamodel.User{}).
		Select("role_id AS role_id, COUNT(*) AS count").
		Where("role_id IS NOT NULL").
		Group("role_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.RoleID] = row.Count
	}
	return counts, nil
}
