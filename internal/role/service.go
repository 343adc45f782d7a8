package role

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studiokita/ops-dashboard/internal"
	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
	roleDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/role"
	"github.com/studiokita/ops-dashboard/internal/core/events"
)

const (
	EventRoleCreated = "role.created"
	EventRoleUpdated = "role.updated"
	EventRoleDeleted = "role.deleted"
)

type RepositoryAPI interface {
	GetAll() ([]*roleDatamodel.Role, error)
	GetByID(id int64) (*roleDatamodel.Role, error)
	Create(role *roleDatamodel.Role) error
	Update(role *roleDatamodel.Role) error
	Delete(id int64) error
	ReplacePermissions(roleID int64, perms []permissionDatamodel.Permission) error
	GetPermissionsByIDs(ids []int64) ([]permissionDatamodel.Permission, error)
	UserCounts() (map[int64]int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ListRoles returns all roles with their grant sets and derived user counts.
func (s *Service) ListRoles() ([]Role, error) {
	dataRoles, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get roles from repository", "error", err)
		return nil, err
	}

	counts, err := s.repo.UserCounts()
	if err != nil {
		s.logger.Error("failed to count users per role", "error", err)
		return nil, err
	}

	roles := make([]Role, 0, len(dataRoles))
	for _, dr := range dataRoles {
		r := FromDataModel(dr)
		r.UserCount = counts[dr.ID]
		roles = append(roles, *r)
	}
	return roles, nil
}

// GetRole returns a single role or ErrRoleNotFound.
func (s *Service) GetRole(id int64) (*Role, error) {
	dr, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get role", "role_id", id, "error", err)
		return nil, err
	}
	if dr == nil {
		return nil, internal.ErrRoleNotFound
	}

	counts, err := s.repo.UserCounts()
	if err != nil {
		return nil, err
	}

	r := FromDataModel(dr)
	r.UserCount = counts[dr.ID]
	return r, nil
}

// CreateRole creates a custom role with the given grant set. An empty grant
// set is valid. System roles are never created through this path.
func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("role creation rejected", "error", err)
		return nil, err
	}

	perms, err := s.resolveGrantSet(dto.PermissionIDs)
	if err != nil {
		return nil, err
	}

	dr := &roleDatamodel.Role{
		Name:        dto.Name,
		Description: dto.Description,
		IsSystem:    false,
		Permissions: perms,
	}

	if err := s.repo.Create(dr); err != nil {
		s.logger.Error("failed to create role", "name", dto.Name, "error", err)
		return nil, err
	}

	s.publish(EventRoleCreated, dr.ID, dr.Name)
	s.logger.Info("role created", "role_id", dr.ID, "name", dr.Name, "grants", len(perms))
	return FromDataModel(dr), nil
}

// UpdateRoleMeta changes name and/or description. Renaming a system role is
// rejected; its description stays editable.
func (s *Service) UpdateRoleMeta(id int64, dto UpdateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dr, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dr == nil {
		return nil, internal.ErrRoleNotFound
	}

	if dto.Name != nil && *dto.Name != dr.Name {
		if dr.IsSystem {
			s.logger.Warn("rename of system role rejected", "role_id", id, "name", dr.Name)
			return nil, internal.ErrSystemRoleNameLocked
		}
		dr.Name = *dto.Name
	}
	if dto.Description != nil {
		dr.Description = *dto.Description
	}

	if err := s.repo.Update(dr); err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return nil, err
	}

	s.publish(EventRoleUpdated, dr.ID, dr.Name)
	return FromDataModel(dr), nil
}

// SetRolePermissions atomically replaces the role's entire grant set. An
// empty id list clears all grants; it is persisted, not treated as a no-op.
func (s *Service) SetRolePermissions(id int64, permissionIDs []int64) error {
	dr, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if dr == nil {
		return internal.ErrRoleNotFound
	}

	perms, err := s.resolveGrantSet(permissionIDs)
	if err != nil {
		return err
	}

	if err := s.repo.ReplacePermissions(id, perms); err != nil {
		s.logger.Error("failed to replace role permissions", "role_id", id, "error", err)
		return err
	}

	s.publish(EventRoleUpdated, dr.ID, dr.Name)
	s.logger.Info("role permissions replaced", "role_id", id, "grants", len(perms))
	return nil
}

// DeleteRole removes a custom role. System roles are protected here as well
// as at the HTTP layer; the UI confirmation alone is not trusted.
func (s *Service) DeleteRole(id int64) error {
	dr, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if dr == nil {
		return internal.ErrRoleNotFound
	}
	if dr.IsSystem {
		s.logger.Warn("deletion of system role rejected", "role_id", id, "name", dr.Name)
		return internal.ErrSystemRoleProtected
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete role", "role_id", id, "error", err)
		return err
	}

	s.publish(EventRoleDeleted, id, dr.Name)
	return nil
}

// resolveGrantSet dedupes the requested ids and resolves them against the
// catalog. Unknown ids fail the whole request rather than being dropped.
func (s *Service) resolveGrantSet(permissionIDs []int64) ([]permissionDatamodel.Permission, error) {
	ids := dedupeIDs(permissionIDs)
	if len(ids) == 0 {
		return []permissionDatamodel.Permission{}, nil
	}

	perms, err := s.repo.GetPermissionsByIDs(ids)
	if err != nil {
		s.logger.Error("failed to resolve permission ids", "error", err)
		return nil, err
	}
	if len(perms) != len(ids) {
		s.logger.Warn("grant request references unknown permissions",
			"requested", len(ids), "resolved", len(perms))
		return nil, internal.ErrPermissionNotFound
	}
	return perms, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *Service) publish(eventType string, roleID int64, name string) {
	if s.bus == nil {
		return
	}
	event := events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"role_id": roleID,
			"name":    name,
		},
	}
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish role event", "event_type", eventType, "error", err)
	}
}
