package models

import (
	"time"
)

// User is an account on the service
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username       string    `gorm:"type:varchar(150);not null;uniqueIndex;column:username" json:"username"`
	Email          string    `gorm:"type:varchar(254);not null;uniqueIndex;column:email" json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	Bio            string    `gorm:"type:text;not null;default:'';column:bio" json:"bio"`
	ProfilePicture string    `gorm:"type:varchar(1024);not null;default:'';column:profile_picture" json:"profile_picture"`
	Role           string    `gorm:"type:varchar(20);not null;default:'member';column:role" json:"role"`
	CreatedAt      time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// User roles. Librarians curate the catalog, admins also manage libraries,
// staff and deletions.
const (
	RoleMember    = "member"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

// HasRole reports whether the user holds any of roles
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
