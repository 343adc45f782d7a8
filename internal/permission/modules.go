package permission

import "strings"

// ModuleDefinition maps permission codes to a display module by prefix.
// Prefix lists carry singular and plural variants because the catalog grew
// both spellings over time.
type ModuleDefinition struct {
	Name     string
	Prefixes []string
}

// ModuleTable declares the dashboard's modules. Declaration order is
// precedence order: when two modules' prefixes both match a code, the
// earlier module wins. Codes matching no prefix land in the "Other" bucket.
var ModuleTable = []ModuleDefinition{
	{Name: "Project Management", Prefixes: []string{"project.", "projects."}},
	{Name: "Client Management", Prefixes: []string{"client.", "clients."}},
	{Name: "User Management", Prefixes: []string{"user.", "users."}},
	{Name: "Role Management", Prefixes: []string{"role.", "roles."}},
	{Name: "Office Expenses", Prefixes: []string{"office_expense.", "office_expenses."}},
	{Name: "Task Scheduling", Prefixes: []string{"task.", "tasks.", "calendar."}},
	{Name: "Daily Reports", Prefixes: []string{"report.", "reports.", "daily_report.", "daily_reports."}},
	{Name: "Settings", Prefixes: []string{"setting.", "settings.", "holiday.", "notification."}},
}

// OtherModuleName labels the bucket for codes no module prefix claims.
const OtherModuleName = "Other"

// ModuleGroup is one module's slice of the catalog, in input order.
type ModuleGroup struct {
	Module string `json:"module"`
	Nodes  []Node `json:"permissions"`
}

// Resolver classifies permission nodes into modules using a fixed table.
// It holds no other state, so grouping is deterministic for a given table.
type Resolver struct {
	table []ModuleDefinition
}

func NewResolver(table []ModuleDefinition) *Resolver {
	return &Resolver{table: table}
}

// DefaultResolver uses the dashboard's declared module table.
func DefaultResolver() *Resolver {
	return NewResolver(ModuleTable)
}

// GroupByModule partitions nodes into per-module groups plus an "Other"
// bucket. Modules with no matching node are omitted from the result.
// Every input node is classified exactly once, nothing is dropped.
func (r *Resolver) GroupByModule(nodes []Node) ([]ModuleGroup, []Node) {
	buckets := make(map[string][]Node)
	var other []Node

	for _, n := range nodes {
		name, ok := r.ModuleFor(n.Code)
		if !ok {
			other = append(other, n)
			continue
		}
		buckets[name] = append(buckets[name], n)
	}

	groups := make([]ModuleGroup, 0, len(r.table))
	for _, m := range r.table {
		if matched, ok := buckets[m.Name]; ok {
			groups = append(groups, ModuleGroup{Module: m.Name, Nodes: matched})
		}
	}
	return groups, other
}

// ModuleFor returns the owning module for a code. Modules are scanned in
// declared order and the first matching prefix wins, so an accidental
// prefix overlap between two modules resolves deterministically.
func (r *Resolver) ModuleFor(code string) (string, bool) {
	for _, m := range r.table {
		for _, prefix := range m.Prefixes {
			if strings.HasPrefix(code, prefix) {
				return m.Name, true
			}
		}
	}
	return "", false
}
