package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form represents a tribunal form in the catalog (e.g. LTB T2, HRTO Form 1)
type Form struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code         string `gorm:"not null;uniqueIndex" json:"code"`
	Title        string `gorm:"not null" json:"title"`
	TribunalName string `gorm:"not null" json:"tribunal_name"`
	PathwayType  string `gorm:"not null;index" json:"pathway_type"`
	Province     string `gorm:"size:2;not null;default:ON" json:"province"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Form model
func (Form) TableName() string {
	return "forms"
}

// FormPrefillData stores the extracted key-value pairs used to prefill a
// tribunal form for a case. One row per (case, form code), overwritten on
// each analysis run.
type FormPrefillData struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID string `gorm:"type:uuid;not null;uniqueIndex:idx_prefill_case_form" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	FormCode    string `gorm:"not null;uniqueIndex:idx_prefill_case_form" json:"form_code"`
	PathwayType string `gorm:"not null" json:"pathway_type"`
	Province    string `gorm:"size:2;not null" json:"province"`

	// JSON-encoded map of field name to value
	Fields string `gorm:"type:text;not null" json:"-"`
}

// BeforeCreate hook to generate UUID
func (p *FormPrefillData) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for FormPrefillData model
func (FormPrefillData) TableName() string {
	return "form_prefill_data"
}

// SetFields stores the field map as JSON
func (p *FormPrefillData) SetFields(fields map[string]string) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	p.Fields = string(data)
	return nil
}

// GetFields returns the decoded field map
func (p *FormPrefillData) GetFields() map[string]string {
	if p.Fields == "" {
		return map[string]string{}
	}
	var fields map[string]string
	if err := json.Unmarshal([]byte(p.Fields), &fields); err != nil {
		return map[string]string{}
	}
	return fields
}

// FormUsage is an audit record of a form generation
type FormUsage struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	CaseID   string `gorm:"type:uuid;not null;index" json:"case_id"`
	FormCode string `gorm:"not null" json:"form_code"`
	Format   string `gorm:"size:10;not null;default:pdf" json:"format"`
}

// BeforeCreate hook to generate UUID
func (u *FormUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for FormUsage model
func (FormUsage) TableName() string {
	return "form_usage"
}
