package role

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/studiokita/ops-dashboard/internal/transport"
)

type ServiceAPI interface {
	ListRoles() ([]Role, error)
	GetRole(id int64) (*Role, error)
	CreateRole(dto CreateRoleDTO) (*Role, error)
	UpdateRoleMeta(id int64, dto UpdateRoleDTO) (*Role, error)
	SetRolePermissions(id int64, permissionIDs []int64) error
	DeleteRole(id int64) error
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

func (h *Handler) roleID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// GetRoles handles GET /roles.
func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles()
	if err != nil {
		h.Logger.Error("GetRoles: failed to list roles", "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RolesResponse{Roles: roles})
}

// CreateRole handles POST /roles.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateRole(dto)
	if err != nil {
		h.Logger.Error("CreateRole: failed", "name", dto.Name, "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

// UpdateRole handles PATCH /roles/{id}.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.roleID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateRoleMeta(id, dto)
	if err != nil {
		h.Logger.Error("UpdateRole: failed", "role_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

// SetPermissions handles PUT /roles/{id}/permissions. The grant set is
// replaced wholesale; an empty permission_ids list clears all grants.
func (h *Handler) SetPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.roleID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	var dto SetPermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetRolePermissions(id, dto.PermissionIDs); err != nil {
		h.Logger.Error("SetPermissions: failed", "role_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRole handles DELETE /roles/{id}. System roles are rejected here by
// the service; the client-side guard alone is not trusted.
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.roleID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	if err := h.Service.DeleteRole(id); err != nil {
		h.Logger.Error("DeleteRole: failed", "role_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
