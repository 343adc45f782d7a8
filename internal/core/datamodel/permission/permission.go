package permission

import "time"

// Permission is a catalog entry. Codes are dotted "<module>.<action>" strings,
// e.g. "project.edit" or "office_expenses.approve". The catalog is reference
// data: entries are seeded at deployment time and never mutated through the
// role administration surface.
type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}
