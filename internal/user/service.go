package user

import (
	"fmt"
	"log/slog"

	userDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/user"
	"github.com/studiokita/ops-dashboard/internal/role"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
}

type RoleLister interface {
	ListRoles() ([]role.Role, error)
}

type Service struct {
	repo   RepositoryAPI
	roles  RoleLister
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, roles RoleLister, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		roles:  roles,
		logger: logger,
	}
}

// GetByID returns a single user with its joined role, if any.
func (s *Service) GetByID(userID int64) (*User, error) {
	dm, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if dm == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(dm), nil
}

// ListUsers returns all users with their effective roles resolved against
// the current role set.
func (s *Service) ListUsers() ([]UserResponse, error) {
	dataUsers, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get users from repository", "error", err)
		return nil, err
	}

	loadedRoles, err := s.roles.ListRoles()
	if err != nil {
		s.logger.Error("failed to load roles for resolution", "error", err)
		return nil, err
	}

	responses := make([]UserResponse, 0, len(dataUsers))
	for _, dm := range dataUsers {
		u := FromDataModel(dm)
		effective := ResolveEffectiveRole(u, loadedRoles)
		responses = append(responses, UserResponse{
			ID:            u.ID,
			Email:         u.Email,
			Name:          u.Name,
			Designation:   u.Designation,
			RoleID:        u.RoleID,
			EffectiveRole: effective.Name,
			Permissions:   effective.Permissions,
			IsActive:      u.IsActive,
		})
	}

	s.logger.Info("listed users", "count", len(responses))
	return responses, nil
}
