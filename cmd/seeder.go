package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type seedPermission struct {
	Code string
	Desc string
}

// The permission catalog mirrors what the dashboard frontend renders. Codes
// are dotted module.action pairs; prefixes decide which module section a
// permission lands in on the role editor.
var seedPermissions = []seedPermission{
	{"projects.view", "Melihat daftar proyek"},
	{"projects.create", "Membuat proyek baru"},
	{"projects.edit", "Mengubah data proyek"},
	{"projects.delete", "Menghapus proyek"},

	{"clients.view", "Melihat daftar klien"},
	{"clients.create", "Menambah klien"},
	{"clients.edit", "Mengubah data klien"},

	{"users.view", "Melihat daftar pengguna"},
	{"users.create", "Menambah pengguna"},
	{"users.edit", "Mengubah data pengguna"},
	{"users.deactivate", "Menonaktifkan pengguna"},

	{"roles.view", "Melihat peran dan izin"},
	{"roles.create", "Membuat peran baru"},
	{"roles.edit", "Mengubah peran dan izinnya"},
	{"roles.delete", "Menghapus peran"},

	{"office_expenses.view", "Melihat pengeluaran kantor"},
	{"office_expenses.create", "Mengajukan pengeluaran kantor"},
	{"office_expenses.approve", "Menyetujui pengeluaran kantor"},
	{"office_expenses.reject", "Menolak pengeluaran kantor"},

	{"tasks.view", "Melihat jadwal tugas"},
	{"tasks.assign", "Menugaskan pekerjaan"},

	{"daily_reports.view", "Melihat laporan harian"},
	{"daily_reports.create", "Membuat laporan harian"},

	{"settings.view", "Melihat pengaturan"},
	{"settings.edit", "Mengubah pengaturan"},
}

type seedRole struct {
	Name     string
	Desc     string
	IsSystem bool
	Grants   []string // empty means every permission
}

var seedRoles = []seedRole{
	{
		Name:     "Administrator",
		Desc:     "Akses penuh ke seluruh dashboard",
		IsSystem: true,
	},
	{
		Name:     "Supervisor",
		Desc:     "Mengawasi proyek dan menyetujui pengeluaran",
		IsSystem: true,
		Grants: []string{
			"projects.view", "projects.create", "projects.edit",
			"clients.view", "clients.create", "clients.edit",
			"users.view",
			"office_expenses.view", "office_expenses.create",
			"office_expenses.approve", "office_expenses.reject",
			"tasks.view", "tasks.assign",
			"daily_reports.view",
		},
	},
	{
		Name:     "Staff",
		Desc:     "Akses dasar untuk pekerjaan harian",
		IsSystem: true,
		Grants: []string{
			"projects.view",
			"clients.view",
			"office_expenses.view", "office_expenses.create",
			"tasks.view",
			"daily_reports.view", "daily_reports.create",
		},
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the permission catalog, system roles and sample users",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"role_permissions", "office_expenses"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing grant and expense data")
		}

		seedPermissionCatalog(db)
		seedSystemRoles(db)
		seedUsers(db, cfg.Security.BCryptCost)

		fmt.Println("Seeding completed")
	},
}

func seedPermissionCatalog(db *gorm.DB) {
	for _, p := range seedPermissions {
		var pid int64
		row := db.Raw("SELECT id FROM permissions WHERE code = ?", p.Code).Row()
		if err := row.Scan(&pid); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO permissions (code, description, created_at) VALUES (?, ?, now())", p.Code, p.Desc).Error; err != nil {
			log.Fatalf("failed to insert permission %s: %v", p.Code, err)
		}
	}
	fmt.Printf("Seeded %d permissions\n", len(seedPermissions))
}

func seedSystemRoles(db *gorm.DB) {
	for _, r := range seedRoles {
		var roleID int64
		row := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row()
		if err := row.Scan(&roleID); err != nil {
			if err := db.Exec(
				"INSERT INTO roles (name, description, is_system, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
				r.Name, r.Desc, r.IsSystem,
			).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", r.Name, err)
			}
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row().Scan(&roleID); err != nil {
				log.Fatalf("role not found after insert %s: %v", r.Name, err)
			}
		}

		grants := r.Grants
		if len(grants) == 0 {
			for _, p := range seedPermissions {
				grants = append(grants, p.Code)
			}
		}

		for _, code := range grants {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE code = ?", code).Row().Scan(&pid); err != nil {
				log.Fatalf("permission not found %s: %v", code, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", roleID, pid).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, pid).Error; err != nil {
				log.Fatalf("failed to grant %s to role %s: %v", code, r.Name, err)
			}
		}
		fmt.Printf("Seeded role %s with %d grants\n", r.Name, len(grants))
	}
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []struct {
		Email       string
		Name        string
		Designation string
		RoleName    string // empty means no joined role
		LegacyRole  string
	}{
		{"dewi@studiokita.id", "Dewi Lestari", "Operations Manager", "Administrator", ""},
		{"bagus@studiokita.id", "Bagus Prasetyo", "Site Supervisor", "Supervisor", ""},
		{"rina@studiokita.id", "Rina Wijaya", "Interior Designer", "Staff", ""},
		// Pre-RBAC account: no joined role, only the legacy label.
		{"agus@studiokita.id", "Agus Santoso", "Drafter", "", "Drafter"},
	}

	for _, u := range users {
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
			continue
		}

		var roleID interface{}
		if u.RoleName != "" {
			var rid int64
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", u.RoleName).Row().Scan(&rid); err != nil {
				log.Fatalf("role not found for seed user %s: %v", u.Email, err)
			}
			roleID = rid
		}

		if err := db.Exec(
			"INSERT INTO users (email, name, password_hash, designation, role_id, legacy_role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
			u.Email, u.Name, string(hash), u.Designation, roleID, u.LegacyRole,
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}
