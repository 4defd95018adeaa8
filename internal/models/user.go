package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleSuperviser UserRole = "Superviser" // spelling kept from the legacy route names
	RoleBanker     UserRole = "Banker"
	RoleUser       UserRole = "User"
)

func AllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleSuperviser, RoleBanker, RoleUser}
}

func ValidRole(r UserRole) bool {
	for _, v := range AllRoles() {
		if v == r {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"user_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
