package expense

import (
	"time"

	"github.com/shopspring/decimal"
	expenseDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/expense"
)

// OfficeExpense is an operational expense submitted by a staff member and
// reviewed by someone holding the approve/reject permissions.
type OfficeExpense struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	ReceiptURL      *string         `json:"receipt_url,omitempty"`
	ReceiptFileName *string         `json:"receipt_filename,omitempty"`
	Status          string          `json:"status"`
	ExpenseDate     time.Time       `json:"expense_date"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	ProcessedBy     *int64          `json:"processed_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

func (e *OfficeExpense) CanBeApproved() bool {
	return e.Status == StatusPendingApproval
}

func (e *OfficeExpense) CanBeRejected() bool {
	return e.Status == StatusPendingApproval
}

func (e *OfficeExpense) Approve(reviewerID int64) {
	now := time.Now()
	e.Status = StatusApproved
	e.ProcessedAt = &now
	e.ProcessedBy = &reviewerID
	e.UpdatedAt = now
}

func (e *OfficeExpense) Reject(reviewerID int64) {
	now := time.Now()
	e.Status = StatusRejected
	e.ProcessedAt = &now
	e.ProcessedBy = &reviewerID
	e.UpdatedAt = now
}

func NewOfficeExpense(userID int64, dto CreateExpenseDTO) *OfficeExpense {
	now := time.Now()

	return &OfficeExpense{
		UserID:          userID,
		Amount:          dto.Amount,
		Description:     dto.Description,
		Category:        dto.Category,
		ReceiptURL:      dto.ReceiptURL,
		ReceiptFileName: dto.ReceiptFileName,
		Status:          StatusPendingApproval,
		ExpenseDate:     dto.ExpenseDate,
		SubmittedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func ToDataModel(e *OfficeExpense) *expenseDatamodel.OfficeExpense {
	return &expenseDatamodel.OfficeExpense{
		ID:              e.ID,
		UserID:          e.UserID,
		Amount:          e.Amount,
		Description:     e.Description,
		Category:        e.Category,
		ReceiptURL:      e.ReceiptURL,
		ReceiptFileName: e.ReceiptFileName,
		Status:          e.Status,
		ExpenseDate:     e.ExpenseDate,
		SubmittedAt:     e.SubmittedAt,
		ProcessedAt:     e.ProcessedAt,
		ProcessedBy:     e.ProcessedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.OfficeExpense) *OfficeExpense {
	return &OfficeExpense{
		ID:              e.ID,
		UserID:          e.UserID,
		Amount:          e.Amount,
		Description:     e.Description,
		Category:        e.Category,
		ReceiptURL:      e.ReceiptURL,
		ReceiptFileName: e.ReceiptFileName,
		Status:          e.Status,
		ExpenseDate:     e.ExpenseDate,
		SubmittedAt:     e.SubmittedAt,
		ProcessedAt:     e.ProcessedAt,
		ProcessedBy:     e.ProcessedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.OfficeExpense) []*OfficeExpense {
	result := make([]*OfficeExpense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
