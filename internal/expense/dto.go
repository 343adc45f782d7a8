package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/studiokita/ops-dashboard/internal/core/common/validation"
)

// CreateExpenseDTO is the request payload for submitting an office expense.
type CreateExpenseDTO struct {
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	ExpenseDate     time.Time       `json:"expense_date"`
	ReceiptURL      *string         `json:"receipt_url,omitempty"`
	ReceiptFileName *string         `json:"receipt_filename,omitempty"`
}

func (dto CreateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).Required().DecimalPositive()
	v.Field("description", dto.Description).Required().MaxLength(500)
	v.Field("category", dto.Category).Required()
	v.Field("expense_date", dto.ExpenseDate).Required().NotFuture()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// RejectExpenseDTO carries the reviewer's reason for rejecting.
type RejectExpenseDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectExpenseDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting an expense")
	}
	return nil
}

// ExpensesResponse is the paginated list payload.
type ExpensesResponse struct {
	Expenses []*OfficeExpense `json:"expenses"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
