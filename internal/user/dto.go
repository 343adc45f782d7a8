package user

// UserResponse is the transport shape for listing users; the effective role
// is resolved against the currently loaded role set before rendering.
type UserResponse struct {
	ID            int64    `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Designation   string   `json:"designation"`
	RoleID        *int64   `json:"role_id"`
	EffectiveRole string   `json:"effective_role"`
	Permissions   []string `json:"permissions"`
	IsActive      bool     `json:"is_active"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}
