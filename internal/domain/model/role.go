package model

import "time"

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// UserRoleはユーザーに付くrole（1ユーザーに複数可）
type UserRole struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"index;not null;uniqueIndex:idx_user_role"`
	Role      Role  `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_role"`
	CreatedAt time.Time
}
