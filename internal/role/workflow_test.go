package role_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/studiokita/ops-dashboard/internal"
	"github.com/studiokita/ops-dashboard/internal/permission"
	"github.com/studiokita/ops-dashboard/internal/role"
)

// fakeAdminService records calls so tests can assert that checkbox toggles
// never reach the service before Save.
type fakeAdminService struct {
	roles []role.Role

	listError error

	createCalls  int
	lastCreate   role.CreateRoleDTO
	createError  error
	updateCalls  int
	lastUpdateID int64
	lastUpdate   role.UpdateRoleDTO
	setCalls     int
	lastSetID    int64
	lastSetIDs   []int64
	setError     error
}

func (f *fakeAdminService) ListRoles() ([]role.Role, error) {
	if f.listError != nil {
		return nil, f.listError
	}
	return f.roles, nil
}

func (f *fakeAdminService) CreateRole(dto role.CreateRoleDTO) (*role.Role, error) {
	f.createCalls++
	f.lastCreate = dto
	if f.createError != nil {
		return nil, f.createError
	}
	r := &role.Role{ID: 100, Name: dto.Name, Description: dto.Description}
	f.roles = append(f.roles, *r)
	return r, nil
}

func (f *fakeAdminService) UpdateRoleMeta(id int64, dto role.UpdateRoleDTO) (*role.Role, error) {
	f.updateCalls++
	f.lastUpdateID = id
	f.lastUpdate = dto
	return &role.Role{ID: id}, nil
}

func (f *fakeAdminService) SetRolePermissions(id int64, permissionIDs []int64) error {
	f.setCalls++
	f.lastSetID = id
	f.lastSetIDs = permissionIDs
	return f.setError
}

var _ = Describe("RoleWorkflow", func() {
	var (
		svc      *fakeAdminService
		workflow *role.Workflow
	)

	supervisorRole := role.Role{
		ID:          2,
		Name:        "Supervisor",
		Description: "Site oversight",
		Permissions: []permission.Node{
			{ID: 1, Code: "projects.view"},
			{ID: 5, Code: "office_expenses.approve"},
		},
	}

	BeforeEach(func() {
		svc = &fakeAdminService{roles: []role.Role{supervisorRole}}
		workflow = role.NewWorkflow(svc, permission.DefaultResolver())
		Expect(workflow.Refresh()).To(Succeed())
	})

	Describe("StartCreate", func() {
		It("opens an empty form with all modules collapsed", func() {
			workflow.StartCreate()

			Expect(workflow.State()).To(Equal(role.PanelCreating))
			Expect(workflow.GrantedIDs()).To(BeEmpty())
			Expect(workflow.ModuleExpanded("Project Management")).To(BeFalse())
		})
	})

	Describe("StartEdit", func() {
		It("pre-fills the form and pre-expands modules with granted nodes", func() {
			Expect(workflow.StartEdit(2)).To(Succeed())

			Expect(workflow.State()).To(Equal(role.PanelEditing))
			Expect(workflow.PermissionGranted(1)).To(BeTrue())
			Expect(workflow.PermissionGranted(5)).To(BeTrue())
			Expect(workflow.ModuleExpanded("Project Management")).To(BeTrue())
			Expect(workflow.ModuleExpanded("Office Expenses")).To(BeTrue())
			Expect(workflow.ModuleExpanded("Role Management")).To(BeFalse())
		})

		It("fails for a role not in the loaded list", func() {
			Expect(workflow.StartEdit(99)).To(Equal(internal.ErrRoleNotFound))
		})
	})

	Describe("TogglePermission", func() {
		It("only mutates the local grant set, never the service", func() {
			workflow.StartCreate()
			workflow.TogglePermission(1)
			workflow.TogglePermission(5)
			workflow.TogglePermission(5)

			Expect(workflow.PermissionGranted(1)).To(BeTrue())
			Expect(workflow.PermissionGranted(5)).To(BeFalse())
			Expect(svc.createCalls).To(BeZero())
			Expect(svc.setCalls).To(BeZero())
		})
	})

	Describe("ToggleModule", func() {
		It("flips expansion without touching grants", func() {
			workflow.StartCreate()
			workflow.ToggleModule("Settings")
			Expect(workflow.ModuleExpanded("Settings")).To(BeTrue())

			workflow.ToggleModule("Settings")
			Expect(workflow.ModuleExpanded("Settings")).To(BeFalse())
			Expect(workflow.GrantedIDs()).To(BeEmpty())
		})
	})

	Describe("Save", func() {
		It("creates a role from the form and closes the panel", func() {
			workflow.StartCreate()
			workflow.SetName("Estimator")
			workflow.SetDescription("Prepares estimates")
			workflow.TogglePermission(1)

			saved, err := workflow.Save()
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Name).To(Equal("Estimator"))
			Expect(svc.lastCreate.PermissionIDs).To(ConsistOf(int64(1)))
			Expect(workflow.State()).To(Equal(role.PanelClosed))
		})

		It("edits metadata and replaces the grant set in one save", func() {
			Expect(workflow.StartEdit(2)).To(Succeed())
			workflow.TogglePermission(1) // revoke projects.view
			workflow.TogglePermission(7) // grant something new

			_, err := workflow.Save()
			Expect(err).NotTo(HaveOccurred())
			Expect(svc.updateCalls).To(Equal(1))
			Expect(svc.lastUpdateID).To(Equal(int64(2)))
			Expect(svc.lastSetID).To(Equal(int64(2)))
			Expect(svc.lastSetIDs).To(ConsistOf(int64(5), int64(7)))
		})

		It("rejects a blank name and keeps the panel open", func() {
			workflow.StartCreate()
			workflow.SetName("   ")

			_, err := workflow.Save()
			Expect(err).To(Equal(internal.ErrEmptyRoleName))
			Expect(workflow.State()).To(Equal(role.PanelCreating))
			Expect(svc.createCalls).To(BeZero())
		})

		It("keeps form state when the service rejects the save", func() {
			svc.createError = errors.New("duplicate name")

			workflow.StartCreate()
			workflow.SetName("Estimator")
			workflow.TogglePermission(1)

			_, err := workflow.Save()
			Expect(err).To(HaveOccurred())
			Expect(workflow.State()).To(Equal(role.PanelCreating))
			Expect(workflow.PermissionGranted(1)).To(BeTrue())
		})

		It("fails when no panel is open", func() {
			_, err := workflow.Save()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Cancel", func() {
		It("discards all in-progress state without persistence", func() {
			Expect(workflow.StartEdit(2)).To(Succeed())
			workflow.SetName("Renamed")
			workflow.TogglePermission(9)

			workflow.Cancel()

			Expect(workflow.State()).To(Equal(role.PanelClosed))
			Expect(workflow.GrantedIDs()).To(BeEmpty())
			Expect(svc.updateCalls).To(BeZero())
			Expect(svc.setCalls).To(BeZero())
		})
	})

	Describe("Refresh", func() {
		It("keeps the previous list when the fetch fails", func() {
			svc.listError = errors.New("timeout")

			Expect(workflow.Refresh()).NotTo(Succeed())
			Expect(workflow.Roles()).To(HaveLen(1))
		})
	})
})
