package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback status constants
const (
	FeedbackStatusNew      = "NEW"
	FeedbackStatusReviewed = "REVIEWED"
)

// UserFeedback represents a contact/feedback submission. UserID is nil for
// anonymous submissions from the public contact form.
type UserFeedback struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`

	Email   string `gorm:"not null" json:"email"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Rating  *int   `json:"rating,omitempty"` // 1-5, optional

	Status string `gorm:"not null;default:NEW;index" json:"status"`

	IPAddress string `gorm:"size:45" json:"-"`
	UserAgent string `gorm:"size:255" json:"-"`
}

// BeforeCreate hook to generate UUID
func (f *UserFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for UserFeedback model
func (UserFeedback) TableName() string {
	return "user_feedback"
}
