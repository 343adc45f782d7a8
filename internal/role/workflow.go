package role

import (
	"strings"

	"github.com/studiokita/ops-dashboard/internal"
	"github.com/studiokita/ops-dashboard/internal/permission"
)

// PanelState tracks which editor panel is open in the role administration
// screen. The per-module expand toggles and the in-progress grant set are
// orthogonal to it.
type PanelState int

const (
	PanelClosed PanelState = iota
	PanelCreating
	PanelEditing
)

// AdminService is the slice of the role service the workflow drives.
type AdminService interface {
	ListRoles() ([]Role, error)
	CreateRole(dto CreateRoleDTO) (*Role, error)
	UpdateRoleMeta(id int64, dto UpdateRoleDTO) (*Role, error)
	SetRolePermissions(id int64, permissionIDs []int64) error
}

// Workflow owns the role editor's form state. Checkbox toggles only mutate
// the local grant set; nothing reaches the service until Save, and a failed
// Save leaves the last-known-good role list untouched.
type Workflow struct {
	svc      AdminService
	resolver *permission.Resolver

	state       PanelState
	editingID   int64
	name        string
	description string
	granted     map[int64]struct{}
	expanded    map[string]bool

	roles []Role
}

func NewWorkflow(svc AdminService, resolver *permission.Resolver) *Workflow {
	return &Workflow{
		svc:      svc,
		resolver: resolver,
		state:    PanelClosed,
		granted:  make(map[int64]struct{}),
		expanded: make(map[string]bool),
	}
}

func (w *Workflow) State() PanelState {
	return w.state
}

// Roles returns the last successfully fetched role list.
func (w *Workflow) Roles() []Role {
	return w.roles
}

// Refresh re-fetches the full role list. On failure the previous list is kept.
func (w *Workflow) Refresh() error {
	roles, err := w.svc.ListRoles()
	if err != nil {
		return err
	}
	w.roles = roles
	return nil
}

// StartCreate opens an empty form: no grants, all modules collapsed.
func (w *Workflow) StartCreate() {
	w.state = PanelCreating
	w.editingID = 0
	w.name = ""
	w.description = ""
	w.granted = make(map[int64]struct{})
	w.expanded = make(map[string]bool)
}

// StartEdit pre-fills the form from the target role and pre-expands every
// module that contains at least one granted node.
func (w *Workflow) StartEdit(roleID int64) error {
	var target *Role
	for i := range w.roles {
		if w.roles[i].ID == roleID {
			target = &w.roles[i]
			break
		}
	}
	if target == nil {
		return internal.ErrRoleNotFound
	}

	w.state = PanelEditing
	w.editingID = target.ID
	w.name = target.Name
	w.description = target.Description

	w.granted = make(map[int64]struct{}, len(target.Permissions))
	w.expanded = make(map[string]bool)
	for _, p := range target.Permissions {
		w.granted[p.ID] = struct{}{}
		if module, ok := w.resolver.ModuleFor(p.Code); ok {
			w.expanded[module] = true
		} else {
			w.expanded[permission.OtherModuleName] = true
		}
	}
	return nil
}

func (w *Workflow) SetName(name string) {
	w.name = name
}

func (w *Workflow) SetDescription(description string) {
	w.description = description
}

// ToggleModule flips a module's expanded state in the editor.
func (w *Workflow) ToggleModule(module string) {
	w.expanded[module] = !w.expanded[module]
}

func (w *Workflow) ModuleExpanded(module string) bool {
	return w.expanded[module]
}

// TogglePermission flips a node in the local, unsaved grant set.
func (w *Workflow) TogglePermission(permissionID int64) {
	if _, ok := w.granted[permissionID]; ok {
		delete(w.granted, permissionID)
		return
	}
	w.granted[permissionID] = struct{}{}
}

func (w *Workflow) PermissionGranted(permissionID int64) bool {
	_, ok := w.granted[permissionID]
	return ok
}

// GrantedIDs returns the in-progress grant set.
func (w *Workflow) GrantedIDs() []int64 {
	ids := make([]int64, 0, len(w.granted))
	for id := range w.granted {
		ids = append(ids, id)
	}
	return ids
}

// Save persists the form. Create and edit both finish with a full grant-set
// replacement and a role-list refresh; only a fully successful save closes
// the panel.
func (w *Workflow) Save() (*Role, error) {
	if w.state == PanelClosed {
		return nil, internal.NewValidationError("no role editor is open", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(w.name) == "" {
		return nil, internal.ErrEmptyRoleName
	}

	var saved *Role
	var err error

	switch w.state {
	case PanelCreating:
		saved, err = w.svc.CreateRole(CreateRoleDTO{
			Name:          w.name,
			Description:   w.description,
			PermissionIDs: w.GrantedIDs(),
		})
		if err != nil {
			return nil, err
		}
	case PanelEditing:
		saved, err = w.svc.UpdateRoleMeta(w.editingID, UpdateRoleDTO{
			Name:        &w.name,
			Description: &w.description,
		})
		if err != nil {
			return nil, err
		}
		if err := w.svc.SetRolePermissions(w.editingID, w.GrantedIDs()); err != nil {
			return nil, err
		}
	}

	if err := w.Refresh(); err != nil {
		return nil, err
	}

	w.Cancel()
	return saved, nil
}

// Cancel discards all in-progress form state without any persistence call.
func (w *Workflow) Cancel() {
	w.state = PanelClosed
	w.editingID = 0
	w.name = ""
	w.description = ""
	w.granted = make(map[int64]struct{})
	w.expanded = make(map[string]bool)
}
