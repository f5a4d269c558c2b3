package entities

import (
	"time"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleWarehouse UserRole = "warehouse"
	RoleOperator  UserRole = "operator"
	RoleDriver    UserRole = "driver"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TelegramID int64  `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Username   string `gorm:"size:255;index" json:"username,omitempty"`
	FullName   string `gorm:"size:255;not null" json:"full_name"`
	Phone      string `gorm:"size:20" json:"phone,omitempty"`
	Password   string `gorm:"size:255" json:"-"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`
	IsOwner    bool   `gorm:"not null;default:false" json:"is_owner"`

	Roles []UserRoleAssignment `gorm:"foreignKey:UserID" json:"roles,omitempty"`

	Timestamp
}

type UserRoleAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_user_role,unique;not null" json:"user_id"`
	Role       UserRole  `gorm:"size:50;index:idx_user_role,unique;not null" json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy *uint     `json:"assigned_by,omitempty"`
}

// RoleNames returns the role tags carried by the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, a := range u.Roles {
		names = append(names, string(a.Role))
	}
	return names
}

func (u *User) HasRole(role UserRole) bool {
	for _, a := range u.Roles {
		if a.Role == role {
			return true
		}
	}
	return false
}
