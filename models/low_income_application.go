package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Low-income application status constants
const (
	LowIncomeStatusPending  = "PENDING"
	LowIncomeStatusApproved = "APPROVED"
	LowIncomeStatusDenied   = "DENIED"
)

// LowIncomeApplication is a fee-waiver request. Approval grants the
// low-income-access entitlement.
type LowIncomeApplication struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	HouseholdSize     int   `gorm:"not null" json:"household_size"`
	AnnualIncomeCents int64 `gorm:"not null" json:"annual_income_cents"`

	Status     string     `gorm:"not null;default:PENDING;index" json:"status"`
	ReviewedBy *string    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *LowIncomeApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LowIncomeApplication model
func (LowIncomeApplication) TableName() string {
	return "low_income_applications"
}

// IsPending checks if the application awaits review
func (a *LowIncomeApplication) IsPending() bool {
	return a.Status == LowIncomeStatusPending
}
