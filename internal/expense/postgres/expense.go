package postgres

import (
	"time"

	expenseDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/expense"
	"github.com/studiokita/ops-dashboard/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(exp *expense.OfficeExpense) error {
	dm := expense.ToDataModel(exp)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	exp.ID = dm.ID
	return nil
}

func (r *ExpenseRepository) GetByID(id int64) (*expense.OfficeExpense, error) {
	var dm expenseDatamodel.OfficeExpense
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense.FromDataModel(&dm), nil
}

func (r *ExpenseRepository) GetByUserID(userID int64, limit, offset int) ([]*expense.OfficeExpense, error) {
	var dms []*expenseDatamodel.OfficeExpense
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return expense.FromDataModelSlice(dms), nil
}

func (r *ExpenseRepository) GetAll(limit, offset int) ([]*expense.OfficeExpense, error) {
	var dms []*expenseDatamodel.OfficeExpense
	err := r.db.Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return expense.FromDataModelSlice(dms), nil
}

func (r *ExpenseRepository) UpdateStatus(id int64, status string, processedAt time.Time, processedBy int64) error {
	return r.db.Model(&expenseDatamodel.OfficeExpense{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": processedAt,
			"processed_by": processedBy,
			"updated_at":   time.Now(),
		}).Error
}
