package permission

import (
	"log/slog"

	permissionDatamodel "github.com/studiokita/ops-dashboard/internal/core/datamodel/permission"
)

type RepositoryAPI interface {
	GetAll() ([]*permissionDatamodel.Permission, error)
}

type Service struct {
	repo     RepositoryAPI
	resolver *Resolver
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, resolver *Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// ListPermissions returns the full catalog in stable (id) order.
func (s *Service) ListPermissions() ([]Node, error) {
	dataPerms, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get permission catalog from repository", "error", err)
		return nil, err
	}

	nodes := make([]Node, 0, len(dataPerms))
	for _, dp := range dataPerms {
		nodes = append(nodes, FromDataModel(dp))
	}
	return nodes, nil
}

// ListGrouped returns the catalog partitioned by module for the role editor.
func (s *Service) ListGrouped() ([]ModuleGroup, []Node, error) {
	nodes, err := s.ListPermissions()
	if err != nil {
		return nil, nil, err
	}

	groups, other := s.resolver.GroupByModule(nodes)
	s.logger.Info("grouped permission catalog", "modules", len(groups), "other", len(other))
	return groups, other, nil
}
