package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen     = "OPEN"
	CaseStatusAnalyzed = "ANALYZED"
	CaseStatusClosed   = "CLOSED"
)

// Merit score bounds. Every computed score is clamped to this range.
const (
	MeritScoreMin = 30
	MeritScoreMax = 95
)

// Case represents a legal matter submitted by a self-represented litigant
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner relationship
	UserID string `gorm:"type:uuid;not null;index:idx_case_user_status" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Intake fields
	Title        *string `json:"title,omitempty"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	Province     string  `gorm:"size:2;not null;default:ON" json:"province"`
	Municipality string  `gorm:"size:100" json:"municipality,omitempty"`
	LawSection   string  `gorm:"size:255" json:"law_section,omitempty"`

	// Analysis results. MeritScore stays nil until an analysis run completes.
	MeritScore *int   `json:"merit_score,omitempty"`
	Status     string `gorm:"not null;default:OPEN;index:idx_case_user_status" json:"status"`

	// Lifecycle. Cases are never structurally deleted, only status transitions.
	OpenedAt        time.Time  `gorm:"not null" json:"opened_at"`
	AnalyzedAt      *time.Time `json:"analyzed_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`

	// Relationships
	Evidence []Evidence     `gorm:"foreignKey:CaseID" json:"evidence,omitempty"`
	Pathways []LegalPathway `gorm:"foreignKey:CaseID" json:"pathways,omitempty"`
}

// BeforeCreate hook to generate UUID and set OpenedAt
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.OpenedAt.IsZero() {
		c.OpenedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsOpen checks if the case is open
func (c *Case) IsOpen() bool {
	return c.Status == CaseStatusOpen
}

// IsAnalyzed checks if the case has a completed analysis
func (c *Case) IsAnalyzed() bool {
	return c.Status == CaseStatusAnalyzed
}

// IsClosed checks if the case is closed
func (c *Case) IsClosed() bool {
	return c.Status == CaseStatusClosed
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	validStatuses := []string{
		CaseStatusOpen,
		CaseStatusAnalyzed,
		CaseStatusClosed,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}
