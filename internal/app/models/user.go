package models

import (
	"time"
)

// User defines the auth principal model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                          // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"head@riverside.ac.ke"` // User's email address
	Password    string     `json:"-" db:"password"`                                 // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"Jane"`
	LastName    string     `json:"lastName" db:"last_name" example:"Wanjiru"`
	Role        RoleType   `json:"role" db:"role" example:"SUPERUSER"`
	SchoolID    int64      `json:"schoolId" db:"school_id" example:"1"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsSuperuser reports whether the user carries the superuser designation.
func (u *User) IsSuperuser() bool {
	return u.Role == RoleSuperuser
}
