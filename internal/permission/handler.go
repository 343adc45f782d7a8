package permission

import (
	"net/http"

	"github.com/studiokita/ops-dashboard/internal/transport"
)

type ServiceAPI interface {
	ListPermissions() ([]Node, error)
	ListGrouped() ([]ModuleGroup, []Node, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type CatalogResponse struct {
	Permissions []Node `json:"permissions"`
}

type GroupedCatalogResponse struct {
	Modules []ModuleGroup `json:"modules"`
	Other   []Node        `json:"other,omitempty"`
}

// GetPermissions handles GET /permissions. With ?grouped=true the catalog
// is partitioned by module for the role editor.
func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grouped") == "true" {
		groups, other, err := h.Service.ListGrouped()
		if err != nil {
			h.Logger.Error("GetPermissions: failed to group catalog", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to get permissions")
			return
		}
		h.WriteJSON(w, http.StatusOK, GroupedCatalogResponse{Modules: groups, Other: other})
		return
	}

	nodes, err := h.Service.ListPermissions()
	if err != nil {
		h.Logger.Error("GetPermissions: failed to get catalog", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get permissions")
		return
	}

	h.WriteJSON(w, http.StatusOK, CatalogResponse{Permissions: nodes})
}
