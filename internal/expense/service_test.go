package expense_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/studiokita/ops-dashboard/internal/auth"
	"github.com/studiokita/ops-dashboard/internal/expense"
)

func TestExpense(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Suite")
}

type mockExpenseRepository struct {
	expenses map[int64]*expense.OfficeExpense
	nextID   int64

	createError error
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expense.OfficeExpense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) Create(exp *expense.OfficeExpense) error {
	if m.createError != nil {
		return m.createError
	}
	exp.ID = m.nextID
	m.nextID++
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) GetByID(id int64) (*expense.OfficeExpense, error) {
	exp, ok := m.expenses[id]
	if !ok {
		return nil, expense.ErrExpenseNotFound
	}
	return exp, nil
}

func (m *mockExpenseRepository) GetByUserID(userID int64, limit, offset int) ([]*expense.OfficeExpense, error) {
	var out []*expense.OfficeExpense
	for _, exp := range m.expenses {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (m *mockExpenseRepository) GetAll(limit, offset int) ([]*expense.OfficeExpense, error) {
	out := make([]*expense.OfficeExpense, 0, len(m.expenses))
	for _, exp := range m.expenses {
		out = append(out, exp)
	}
	return out, nil
}

func (m *mockExpenseRepository) UpdateStatus(id int64, status string, processedAt time.Time, processedBy int64) error {
	if exp, ok := m.expenses[id]; ok {
		exp.Status = status
		exp.ProcessedAt = &processedAt
		exp.ProcessedBy = &processedBy
	}
	return nil
}

var _ = Describe("ExpenseService", func() {
	var (
		svc      *expense.Service
		mockRepo *mockExpenseRepository
	)

	reviewerPerms := []string{"office_expenses.view", "office_expenses.approve", "office_expenses.reject"}
	staffPerms := []string{"office_expenses.view", "office_expenses.create"}

	validDTO := func() *expense.CreateExpenseDTO {
		return &expense.CreateExpenseDTO{
			Amount:      decimal.NewFromInt(250000),
			Description: "Tinta printer kantor",
			Category:    "kantor",
			ExpenseDate: time.Now().Add(-24 * time.Hour),
		}
	}

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = expense.NewService(mockRepo, auth.NewPermissionChecker(), lg)
	})

	Describe("SubmitExpense", func() {
		It("records a pending expense", func() {
			exp, err := svc.SubmitExpense(validDTO(), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.Status).To(Equal(expense.StatusPendingApproval))
			Expect(exp.UserID).To(Equal(int64(10)))
		})

		It("rejects a non-positive amount", func() {
			dto := validDTO()
			dto.Amount = decimal.Zero
			_, err := svc.SubmitExpense(dto, 10)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a future expense date", func() {
			dto := validDTO()
			dto.ExpenseDate = time.Now().Add(48 * time.Hour)
			_, err := svc.SubmitExpense(dto, 10)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ApproveExpense", func() {
		var pending *expense.OfficeExpense

		BeforeEach(func() {
			var err error
			pending, err = svc.SubmitExpense(validDTO(), 10)
			Expect(err).NotTo(HaveOccurred())
		})

		It("approves a pending expense for a reviewer", func() {
			Expect(svc.ApproveExpense(pending.ID, 20, reviewerPerms)).To(Succeed())

			stored := mockRepo.expenses[pending.ID]
			Expect(stored.Status).To(Equal(expense.StatusApproved))
			Expect(*stored.ProcessedBy).To(Equal(int64(20)))
		})

		// The HTTP route is already gated on the same code; this proves the
		// service refuses even if a caller slips past that gate.
		It("denies a caller without the approve permission", func() {
			err := svc.ApproveExpense(pending.ID, 10, staffPerms)
			Expect(err).To(Equal(expense.ErrUnauthorizedAccess))
			Expect(mockRepo.expenses[pending.ID].Status).To(Equal(expense.StatusPendingApproval))
		})

		It("refuses to approve an already-processed expense", func() {
			Expect(svc.ApproveExpense(pending.ID, 20, reviewerPerms)).To(Succeed())

			err := svc.ApproveExpense(pending.ID, 20, reviewerPerms)
			Expect(err).To(Equal(expense.ErrInvalidExpenseStatus))
		})
	})

	Describe("RejectExpense", func() {
		var pending *expense.OfficeExpense

		BeforeEach(func() {
			var err error
			pending, err = svc.SubmitExpense(validDTO(), 10)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a pending expense with a reason", func() {
			Expect(svc.RejectExpense(pending.ID, 20, "no receipt", reviewerPerms)).To(Succeed())
			Expect(mockRepo.expenses[pending.ID].Status).To(Equal(expense.StatusRejected))
		})

		It("denies a caller without the reject permission", func() {
			err := svc.RejectExpense(pending.ID, 10, "no receipt", staffPerms)
			Expect(err).To(Equal(expense.ErrUnauthorizedAccess))
		})
	})

	Describe("ListExpenses", func() {
		BeforeEach(func() {
			_, err := svc.SubmitExpense(validDTO(), 10)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.SubmitExpense(validDTO(), 11)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns everything for reviewers", func() {
			all, err := svc.ListExpenses(20, reviewerPerms, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})

		It("returns only own submissions otherwise", func() {
			own, err := svc.ListExpenses(10, staffPerms, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(own).To(HaveLen(1))
			Expect(own[0].UserID).To(Equal(int64(10)))
		})
	})

	Describe("GetExpenseByID", func() {
		It("lets owners and reviewers read, denies everyone else", func() {
			exp, err := svc.SubmitExpense(validDTO(), 10)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.GetExpenseByID(exp.ID, 10, staffPerms)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.GetExpenseByID(exp.ID, 20, reviewerPerms)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.GetExpenseByID(exp.ID, 30, staffPerms)
			Expect(err).To(Equal(expense.ErrUnauthorizedAccess))
		})
	})
})
