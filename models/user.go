package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a self-represented litigant (or an admin) using the platform
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Role         string `gorm:"not null;default:user;index" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	// Location (used for tribunal routing defaults)
	Province     string `gorm:"size:2;default:ON" json:"province"`
	Municipality string `gorm:"size:100" json:"municipality,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Cases        []Case        `gorm:"foreignKey:UserID" json:"cases,omitempty"`
	Entitlements []Entitlement `gorm:"foreignKey:UserID" json:"entitlements,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole checks if the role is valid
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
