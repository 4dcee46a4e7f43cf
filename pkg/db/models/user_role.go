package models

import (
	"time"

	"github.com/tenuestore/tenue-backend/pkg/enums"
)

// UserRole binds an externally authenticated user id to a back-office role.
type UserRole struct {
	UserID    string         `gorm:"column:user_id;primaryKey"`
	Role      enums.UserRole `gorm:"column:role;type:user_role;not null;default:'user'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserRole) TableName() string { return "user_roles" }
