package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Evidence represents an uploaded evidence file attached to a case
type Evidence struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	// File metadata
	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `gorm:"not null" json:"file_original_name"`
	StorageKey       string `gorm:"not null" json:"-"`
	FileSize         int64  `gorm:"not null" json:"file_size"`
	MimeType         string `gorm:"size:100" json:"mime_type"`

	// Optional extracted text (OCR or plain text extraction)
	OCRText string `gorm:"type:text" json:"ocr_text,omitempty"`

	// Comma-separated tags, e.g. "lease,photos"
	Tags string `gorm:"size:255" json:"tags,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *Evidence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Evidence model
func (Evidence) TableName() string {
	return "evidence"
}

// TagList returns the tags as a slice
func (e *Evidence) TagList() []string {
	if e.Tags == "" {
		return nil
	}
	parts := strings.Split(e.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
