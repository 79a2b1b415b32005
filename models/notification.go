package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification type constants
const (
	NotificationTypeAnalysisReady = "analysis_ready"
	NotificationTypePayment       = "payment"
	NotificationTypeLowIncome     = "low_income"
	NotificationTypeSystem        = "system"
)

// Notification is an in-app notification, optionally mirrored by email
type Notification struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Type    string `gorm:"not null" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	ReadAt      *time.Time `json:"read_at,omitempty"`
	EmailSentAt *time.Time `json:"email_sent_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}

// IsRead checks if the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
