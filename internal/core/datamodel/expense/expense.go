package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfficeExpense struct {
	ID              int64           `gorm:"primaryKey"`
	UserID          int64           `gorm:"column:user_id;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null"`
	Description     string          `gorm:"column:description;not null"`
	Category        string          `gorm:"column:category"`
	ReceiptURL      *string         `gorm:"column:receipt_url"`
	ReceiptFileName *string         `gorm:"column:receipt_filename"`
	Status          string          `gorm:"column:status;default:pending_approval"`
	ExpenseDate     time.Time       `gorm:"column:expense_date;type:date"`
	SubmittedAt     time.Time       `gorm:"column:submitted_at"`
	ProcessedAt     *time.Time      `gorm:"column:processed_at"`
	ProcessedBy     *int64          `gorm:"column:processed_by"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (OfficeExpense) TableName() string {
	return "office_expenses"
}
