package expense

import (
	"errors"
	"log/slog"
	"time"

	"github.com/studiokita/ops-dashboard/internal/auth"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to expense")
	ErrInvalidExpenseStatus = errors.New("invalid expense status for this operation")
)

// Repository defines the data access methods for office expenses.
type Repository interface {
	Create(expense *OfficeExpense) error
	GetByID(id int64) (*OfficeExpense, error)
	GetByUserID(userID int64, limit, offset int) ([]*OfficeExpense, error)
	GetAll(limit, offset int) ([]*OfficeExpense, error)
	UpdateStatus(id int64, status string, processedAt time.Time, processedBy int64) error
}

// Service handles office expense business logic. Mutating operations verify
// the caller's permissions again even though routes are already gated: the
// route gate only hides the action, it does not enforce it.
type Service struct {
	repo    Repository
	checker auth.PermissionChecker
	logger  *slog.Logger
}

func NewService(repo Repository, checker auth.PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		checker: checker,
		logger:  logger,
	}
}

// SubmitExpense records a new expense in pending_approval status.
func (s *Service) SubmitExpense(dto *CreateExpenseDTO, userID int64) (*OfficeExpense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	expense := NewOfficeExpense(userID, *dto)
	if err := s.repo.Create(expense); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("expense submitted",
		"expense_id", expense.ID,
		"user_id", userID,
		"amount", expense.Amount.String())

	return expense, nil
}

// GetExpenseByID retrieves an expense; non-reviewers can only see their own.
func (s *Service) GetExpenseByID(expenseID, userID int64, userPermissions []string) (*OfficeExpense, error) {
	expense, err := s.repo.GetByID(expenseID)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", expenseID)
		return nil, ErrExpenseNotFound
	}

	if expense.UserID != userID && !s.canReview(userPermissions) {
		s.logger.Warn("unauthorized access to expense",
			"expense_id", expenseID,
			"user_id", userID,
			"expense_user_id", expense.UserID)
		return nil, ErrUnauthorizedAccess
	}

	return expense, nil
}

// ListExpenses returns all expenses for reviewers, or only the caller's own
// submissions otherwise.
func (s *Service) ListExpenses(userID int64, userPermissions []string, limit, offset int) ([]*OfficeExpense, error) {
	if s.canReview(userPermissions) {
		return s.repo.GetAll(limit, offset)
	}
	return s.repo.GetByUserID(userID, limit, offset)
}

func (s *Service) ApproveExpense(expenseID, reviewerID int64, userPermissions []string) error {
	if !s.checker.CanApproveExpenses(userPermissions) {
		s.logger.Warn("approve expense denied: insufficient permissions",
			"expense_id", expenseID,
			"reviewer_id", reviewerID)
		return ErrUnauthorizedAccess
	}

	expense, err := s.repo.GetByID(expenseID)
	if err != nil {
		s.logger.Error("expense not found for approval", "error", err, "expense_id", expenseID)
		return ErrExpenseNotFound
	}

	if !expense.CanBeApproved() {
		s.logger.Warn("cannot approve expense in current status",
			"expense_id", expenseID,
			"current_status", expense.Status)
		return ErrInvalidExpenseStatus
	}

	processedAt := time.Now()
	if err := s.repo.UpdateStatus(expenseID, StatusApproved, processedAt, reviewerID); err != nil {
		s.logger.Error("failed to update expense status to approved", "error", err, "expense_id", expenseID)
		return err
	}

	s.logger.Info("expense approved",
		"expense_id", expenseID,
		"reviewer_id", reviewerID,
		"amount", expense.Amount.String())

	return nil
}

func (s *Service) RejectExpense(expenseID, reviewerID int64, reason string, userPermissions []string) error {
	if !s.checker.CanRejectExpenses(userPermissions) {
		s.logger.Warn("reject expense denied: insufficient permissions",
			"expense_id", expenseID,
			"reviewer_id", reviewerID)
		return ErrUnauthorizedAccess
	}

	expense, err := s.repo.GetByID(expenseID)
	if err != nil {
		s.logger.Error("expense not found for rejection", "error", err, "expense_id", expenseID)
		return ErrExpenseNotFound
	}

	if !expense.CanBeRejected() {
		s.logger.Warn("cannot reject expense in current status",
			"expense_id", expenseID,
			"current_status", expense.Status)
		return ErrInvalidExpenseStatus
	}

	processedAt := time.Now()
	if err := s.repo.UpdateStatus(expenseID, StatusRejected, processedAt, reviewerID); err != nil {
		s.logger.Error("failed to update expense status to rejected", "error", err, "expense_id", expenseID)
		return err
	}

	s.logger.Info("expense rejected",
		"expense_id", expenseID,
		"reviewer_id", reviewerID,
		"reason", reason)

	return nil
}

func (s *Service) canReview(userPermissions []string) bool {
	return s.checker.CanApproveExpenses(userPermissions) || s.checker.CanRejectExpenses(userPermissions)
}
