package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/studiokita/ops-dashboard/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

var _ = Describe("Permission gate", func() {
	Describe("HasPermission", func() {
		It("grants when the code is in the user's set", func() {
			u := &auth.User{Permissions: []string{"projects.view", "roles.edit"}}
			Expect(auth.HasPermission(u, "roles.edit")).To(BeTrue())
		})

		It("denies a code outside the set", func() {
			u := &auth.User{Permissions: []string{"projects.view"}}
			Expect(auth.HasPermission(u, "roles.edit")).To(BeFalse())
		})

		It("denies on an empty permission set", func() {
			u := &auth.User{Permissions: nil}
			Expect(auth.HasPermission(u, "projects.view")).To(BeFalse())
		})

		It("denies on a nil user", func() {
			Expect(auth.HasPermission(nil, "projects.view")).To(BeFalse())
		})

		It("denies an empty code even for a permissive user", func() {
			u := &auth.User{Permissions: []string{"projects.view"}}
			Expect(auth.HasPermission(u, "")).To(BeFalse())
		})
	})

	Describe("HasAnyPermission", func() {
		It("grants when at least one code matches", func() {
			u := &auth.User{Permissions: []string{"roles.view"}}
			Expect(auth.HasAnyPermission(u, "roles.create", "roles.view")).To(BeTrue())
		})

		It("denies when none match", func() {
			u := &auth.User{Permissions: []string{"projects.view"}}
			Expect(auth.HasAnyPermission(u, "roles.create", "roles.view")).To(BeFalse())
		})

		It("denies with no codes requested", func() {
			u := &auth.User{Permissions: []string{"projects.view"}}
			Expect(auth.HasAnyPermission(u)).To(BeFalse())
		})
	})

	Describe("DefaultPermissionChecker", func() {
		checker := auth.NewPermissionChecker()

		It("matches exact codes only", func() {
			perms := []string{"office_expenses.view"}
			Expect(checker.HasPermission(perms, "office_expenses.view")).To(BeTrue())
			Expect(checker.HasPermission(perms, "office_expenses.approve")).To(BeFalse())
		})

		It("recognizes expense review permissions", func() {
			Expect(checker.CanApproveExpenses([]string{"office_expenses.approve"})).To(BeTrue())
			Expect(checker.CanRejectExpenses([]string{"office_expenses.approve"})).To(BeFalse())
			Expect(checker.CanRejectExpenses([]string{"office_expenses.reject"})).To(BeTrue())
		})

		It("recognizes role management through any of its codes", func() {
			Expect(checker.CanManageRoles([]string{"roles.delete"})).To(BeTrue())
			Expect(checker.CanManageRoles([]string{"roles.view"})).To(BeFalse())
		})

		It("denies everything on an empty set", func() {
			Expect(checker.CanApproveExpenses(nil)).To(BeFalse())
			Expect(checker.CanManageRoles(nil)).To(BeFalse())
			Expect(checker.CanViewUsers(nil)).To(BeFalse())
		})
	})
})

var _ = Describe("JWTTokenGenerator", func() {
	var gen *auth.JWTTokenGenerator

	BeforeEach(func() {
		gen = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	})

	It("round-trips an access token with its claims", func() {
		token, err := gen.GenerateAccessToken(42, "dewi@studiokita.id")
		Expect(err).NotTo(HaveOccurred())

		claims, err := gen.ValidateToken(token, auth.TokenTypeAccess)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal(int64(42)))
		Expect(claims.Email).To(Equal("dewi@studiokita.id"))
		Expect(claims.TokenType).To(Equal(auth.TokenTypeAccess))
	})

	It("rejects a refresh token presented as an access token", func() {
		refresh, err := gen.GenerateRefreshToken(42, "dewi@studiokita.id")
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateToken(refresh, auth.TokenTypeAccess)
		Expect(err).To(Equal(auth.ErrInvalidToken))

		_, err = gen.ValidateToken(refresh, auth.TokenTypeRefresh)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an access token presented as a refresh token", func() {
		access, err := gen.GenerateAccessToken(42, "dewi@studiokita.id")
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateToken(access, auth.TokenTypeRefresh)
		Expect(err).To(Equal(auth.ErrInvalidToken))
	})

	It("enforces the type claim even when both secrets are identical", func() {
		shared := auth.NewJWTTokenGenerator("same-secret", "same-secret", 15*time.Minute, 7*24*time.Hour)

		refresh, err := shared.GenerateRefreshToken(42, "dewi@studiokita.id")
		Expect(err).NotTo(HaveOccurred())

		_, err = shared.ValidateToken(refresh, auth.TokenTypeAccess)
		Expect(err).To(Equal(auth.ErrInvalidToken))
	})

	It("rejects tokens signed with a different secret", func() {
		other := auth.NewJWTTokenGenerator("someone-else", "someone-else-too", 15*time.Minute, 7*24*time.Hour)
		forged, err := other.GenerateAccessToken(42, "dewi@studiokita.id")
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateToken(forged, auth.TokenTypeAccess)
		Expect(err).To(Equal(auth.ErrInvalidToken))
	})
})
