package role_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
	roleDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/role"
	userDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/user"
	"github.com/studiokita/ops-dashboard/internal/role"
	rolePostgres "github.com/studiokita/ops-dashboard/internal/role/postgres"
	"github.com/studiokita/ops-dashboard/internal/transport"
)

var _ = Describe("Role Handler Integration", func() {
	var (
		db      *gorm.DB
		service *role.Service
		handler *role.Handler
		router  *chi.Mux

		viewPerm, createPerm, editPerm permissionDatamodel.Permission
		adminRole, estimatorRole       *roleDatamodel.Role
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&permissionDatamodel.Permission{},
			&roleDatamodel.Role{},
			&userDatamodel.User{},
		)
		Expect(err).NotTo(HaveOccurred())

		viewPerm = permissionDatamodel.Permission{Code: "projects.view", Description: "View projects"}
		createPerm = permissionDatamodel.Permission{Code: "projects.create", Description: "Create projects"}
		editPerm = permissionDatamodel.Permission{Code: "roles.edit", Description: "Edit roles"}
		for _, p := range []*permissionDatamodel.Permission{&viewPerm, &createPerm, &editPerm} {
			Expect(db.Create(p).Error).NotTo(HaveOccurred())
		}
		Expect(db.First(&viewPerm, "code = ?", "projects.view").Error).NotTo(HaveOccurred())
		Expect(db.First(&createPerm, "code = ?", "projects.create").Error).NotTo(HaveOccurred())
		Expect(db.First(&editPerm, "code = ?", "roles.edit").Error).NotTo(HaveOccurred())

		adminRole = &roleDatamodel.Role{
			Name:        "Administrator",
			Description: "Full access",
			IsSystem:    true,
			Permissions: []permissionDatamodel.Permission{viewPerm, createPerm, editPerm},
		}
		estimatorRole = &roleDatamodel.Role{
			Name:        "Estimator",
			Permissions: []permissionDatamodel.Permission{viewPerm},
		}
		repo := rolePostgres.NewRoleRepository(db)
		Expect(repo.Create(adminRole)).To(Succeed())
		Expect(repo.Create(estimatorRole)).To(Succeed())

		service = role.NewService(repo, nil, slogger)
		handler = role.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/roles", handler.GetRoles)
		router.Post("/roles", handler.CreateRole)
		router.Patch("/roles/{id}", handler.UpdateRole)
		router.Put("/roles/{id}/permissions", handler.SetPermissions)
		router.Delete("/roles/{id}", handler.DeleteRole)
	})

	It("lists roles with their grant sets", func() {
		req := httptest.NewRequest(http.MethodGet, "/roles", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response role.RolesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Roles).To(HaveLen(2))

		byName := map[string]role.Role{}
		for _, r := range response.Roles {
			byName[r.Name] = r
		}
		Expect(byName["Administrator"].IsSystem).To(BeTrue())
		Expect(byName["Administrator"].Permissions).To(HaveLen(3))
		estimator := byName["Estimator"]
		Expect(estimator.PermissionCodes()).To(ConsistOf("projects.view"))
	})

	It("creates a role through POST /roles", func() {
		body, _ := json.Marshal(role.CreateRoleDTO{
			Name:          "Site Manager",
			Description:   "Runs site operations",
			PermissionIDs: []int64{viewPerm.ID, createPerm.ID},
		})
		req := httptest.NewRequest(http.MethodPost, "/roles", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var created role.Role
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeZero())
		Expect(created.PermissionCodes()).To(ConsistOf("projects.view", "projects.create"))
	})

	It("returns 400 for a blank role name", func() {
		body, _ := json.Marshal(role.CreateRoleDTO{Name: "   "})
		req := httptest.NewRequest(http.MethodPost, "/roles", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("replaces a grant set through PUT and clears it with an empty list", func() {
		setPerms := func(ids []int64) int {
			body, _ := json.Marshal(role.SetPermissionsDTO{PermissionIDs: ids})
			req := httptest.NewRequest(http.MethodPut, "/roles/2/permissions", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		Expect(setPerms([]int64{createPerm.ID, editPerm.ID})).To(Equal(http.StatusNoContent))

		reloaded, err := service.GetRole(estimatorRole.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.PermissionCodes()).To(ConsistOf("projects.create", "roles.edit"))

		Expect(setPerms([]int64{})).To(Equal(http.StatusNoContent))

		cleared, err := service.GetRole(estimatorRole.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(cleared.Permissions).To(BeEmpty())
	})

	It("rejects renaming a system role but allows editing its description", func() {
		patch := func(payload map[string]string) *httptest.ResponseRecorder {
			body, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPatch, "/roles/1", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		Expect(patch(map[string]string{"name": "Root"}).Code).To(Equal(http.StatusForbidden))

		w := patch(map[string]string{"description": "Akses penuh"})
		Expect(w.Code).To(Equal(http.StatusOK))

		var updated role.Role
		Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
		Expect(updated.Description).To(Equal("Akses penuh"))
		Expect(updated.Name).To(Equal("Administrator"))
	})

	It("refuses to delete a system role but deletes custom roles", func() {
		req := httptest.NewRequest(http.MethodDelete, "/roles/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusForbidden))

		req = httptest.NewRequest(http.MethodDelete, "/roles/2", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		roles, err := service.ListRoles()
		Expect(err).NotTo(HaveOccurred())
		Expect(roles).To(HaveLen(1))
	})

	It("returns 404 for an unknown role", func() {
		req := httptest.NewRequest(http.MethodDelete, "/roles/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
