package permission_test

import (
	"testing"

	"github.com/studiokita/ops-dashboard/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPermissionResolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Resolver Suite")
}

var _ = Describe("Module Grouping Resolver", func() {
	var resolver *permission.Resolver

	BeforeEach(func() {
		resolver = permission.DefaultResolver()
	})

	catalog := []permission.Node{
		{ID: 1, Code: "project.view", Description: "View projects"},
		{ID: 2, Code: "projects.archive", Description: "Archive projects"},
		{ID: 3, Code: "client.create", Description: "Create clients"},
		{ID: 4, Code: "roles.edit", Description: "Edit roles"},
		{ID: 5, Code: "office_expenses.approve", Description: "Approve office expenses"},
		{ID: 6, Code: "holiday.manage", Description: "Manage holidays"},
		{ID: 7, Code: "dashboard.view", Description: "View dashboard"},
	}

	Describe("GroupByModule", func() {
		It("should classify every node into exactly one group or the Other bucket", func() {
			groups, other := resolver.GroupByModule(catalog)

			total := len(other)
			for _, g := range groups {
				total += len(g.Nodes)
			}
			Expect(total).To(Equal(len(catalog)))
		})

		It("should assign nodes to their prefix-matched module", func() {
			groups, other := resolver.GroupByModule(catalog)

			byModule := make(map[string][]permission.Node)
			for _, g := range groups {
				byModule[g.Module] = g.Nodes
			}

			Expect(byModule["Project Management"]).To(HaveLen(2))
			Expect(byModule["Client Management"]).To(HaveLen(1))
			Expect(byModule["Role Management"]).To(HaveLen(1))
			Expect(byModule["Office Expenses"]).To(HaveLen(1))
			Expect(byModule["Settings"]).To(HaveLen(1))

			Expect(other).To(HaveLen(1))
			Expect(other[0].Code).To(Equal("dashboard.view"))
		})

		It("should omit modules with no matching nodes", func() {
			groups, _ := resolver.GroupByModule(catalog)

			for _, g := range groups {
				Expect(g.Nodes).NotTo(BeEmpty())
			}

			names := make([]string, 0, len(groups))
			for _, g := range groups {
				names = append(names, g.Module)
			}
			Expect(names).NotTo(ContainElement("User Management"))
			Expect(names).NotTo(ContainElement("Daily Reports"))
		})

		It("should preserve the declared module order in the result", func() {
			groups, _ := resolver.GroupByModule(catalog)

			names := make([]string, 0, len(groups))
			for _, g := range groups {
				names = append(names, g.Module)
			}
			Expect(names).To(Equal([]string{
				"Project Management",
				"Client Management",
				"Role Management",
				"Office Expenses",
				"Settings",
			}))
		})

		It("should yield identical groupings on repeated calls", func() {
			groupsA, otherA := resolver.GroupByModule(catalog)
			groupsB, otherB := resolver.GroupByModule(catalog)

			Expect(groupsA).To(Equal(groupsB))
			Expect(otherA).To(Equal(otherB))
		})

		It("should return no groups and no bucket for an empty input", func() {
			groups, other := resolver.GroupByModule(nil)

			Expect(groups).To(BeEmpty())
			Expect(other).To(BeEmpty())
		})
	})

	Describe("prefix precedence", func() {
		It("should resolve overlapping prefixes to the earlier-declared module", func() {
			overlapping := permission.NewResolver([]permission.ModuleDefinition{
				{Name: "Orders", Prefixes: []string{"order."}},
				{Name: "Order Reports", Prefixes: []string{"order.report", "order."}},
			})

			module, ok := overlapping.ModuleFor("order.report.export")
			Expect(ok).To(BeTrue())
			Expect(module).To(Equal("Orders"))
		})

		It("should scan a module's prefix list before moving to the next module", func() {
			module, ok := permission.DefaultResolver().ModuleFor("projects.archive")
			Expect(ok).To(BeTrue())
			Expect(module).To(Equal("Project Management"))
		})

		It("should report no module for an unmatched code", func() {
			_, ok := permission.DefaultResolver().ModuleFor("gantt.render")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("seeded catalog coverage", func() {
		// Mirrors the codes the seed command inserts. Every one of them must
		// land in a named module, never in the Other bucket.
		seededCodes := map[string]string{
			"projects.view":           "Project Management",
			"projects.create":         "Project Management",
			"projects.edit":           "Project Management",
			"projects.delete":         "Project Management",
			"clients.view":            "Client Management",
			"clients.create":          "Client Management",
			"clients.edit":            "Client Management",
			"users.view":              "User Management",
			"users.create":            "User Management",
			"users.edit":              "User Management",
			"users.deactivate":        "User Management",
			"roles.view":              "Role Management",
			"roles.create":            "Role Management",
			"roles.edit":              "Role Management",
			"roles.delete":            "Role Management",
			"office_expenses.view":    "Office Expenses",
			"office_expenses.create":  "Office Expenses",
			"office_expenses.approve": "Office Expenses",
			"office_expenses.reject":  "Office Expenses",
			"tasks.view":              "Task Scheduling",
			"tasks.assign":            "Task Scheduling",
			"daily_reports.view":      "Daily Reports",
			"daily_reports.create":    "Daily Reports",
			"settings.view":           "Settings",
			"settings.edit":           "Settings",
		}

		It("should resolve every seeded code to its named module", func() {
			for code, want := range seededCodes {
				module, ok := resolver.ModuleFor(code)
				Expect(ok).To(BeTrue(), "seeded code %q matched no module", code)
				Expect(module).To(Equal(want), "seeded code %q", code)
			}
		})

		It("should not rely on the singular daily_report prefix for the plural codes", func() {
			module, ok := resolver.ModuleFor("daily_reports.view")
			Expect(ok).To(BeTrue())
			Expect(module).To(Equal("Daily Reports"))
		})
	})
})
