package postgres

import (
	"database/sql"

	"github.com/studiokita/ops-dashboard/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, auth.ErrInvalidCredentials
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

// GetUserWithPermissions loads the principal and resolves its effective
// role: the joined role wins, then the legacy label, then "No Role". Only
// a resolved joined role contributes permission codes.
func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User
	var roleID sql.NullInt64
	var roleName sql.NullString
	var legacyRole sql.NullString

	query := `SELECT u.id, u.email, u.name, u.role_id, u.legacy_role, r.name
	          FROM users u
	          LEFT JOIN roles r ON r.id = u.role_id
	          WHERE u.id = ? AND u.is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &roleID, &legacyRole, &roleName); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserInactive
		}
		return nil, err
	}

	switch {
	case roleName.Valid:
		user.RoleName = roleName.String
	case legacyRole.Valid && legacyRole.String != "":
		user.RoleName = legacyRole.String
	default:
		user.RoleName = "No Role"
	}

	if !roleID.Valid || !roleName.Valid {
		return &user, nil
	}

	permQuery := `SELECT p.code
	              FROM permissions p
	              JOIN role_permissions rp ON p.id = rp.permission_id
	              WHERE rp.role_id = ?
	              ORDER BY p.id`

	rows, err := r.db.Raw(permQuery, roleID.Int64).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		permissions = append(permissions, code)
	}

	user.Permissions = permissions
	return &user, nil
}
