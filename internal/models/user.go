package models

import "time"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleOrganizer Role = "Organizer"
	RoleUser      Role = "User"
)

// ValidRole reports whether r is one of the assignable roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:false" json:"is_active"`
	IsSuperuser  bool   `gorm:"not null;default:false" json:"is_superuser"`
	// Exactly one role per user; assignment replaces the previous one.
	Role      Role      `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
