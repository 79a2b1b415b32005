package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status constants
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Product constants. Entitlements are granted per (user, product).
const (
	ProductBasicAnalysis   = "basic-analysis"
	ProductFullAnalysis    = "full-analysis"
	ProductFormsBundle     = "forms-bundle"
	ProductLowIncomeAccess = "low-income-access"
)

// Payment is an append-only record of a PayPal transaction.
// Status moves PENDING -> COMPLETED or PENDING -> FAILED; rows are never deleted.
type Payment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Product     string `gorm:"not null" json:"product"`
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Currency    string `gorm:"size:3;not null;default:CAD" json:"currency"`

	// PayPal identifiers
	ProviderOrderID   string  `gorm:"not null;uniqueIndex" json:"provider_order_id"`
	ProviderCaptureID *string `json:"provider_capture_id,omitempty"`

	Status      string     `gorm:"not null;default:PENDING;index" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// IsCompleted checks if the payment completed
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// PaymentAudit is an append-only event log for payment state transitions
type PaymentAudit struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PaymentID string `gorm:"type:uuid;not null;index" json:"payment_id"`
	Event     string `gorm:"not null" json:"event"`
	Detail    string `gorm:"type:text" json:"detail,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *PaymentAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for PaymentAudit model
func (PaymentAudit) TableName() string {
	return "payment_audit"
}

// Entitlement grants a user paid access to a product tier. The unique index
// on (user_id, product) makes grants idempotent: repeated capture calls for
// the same order cannot insert duplicates.
type Entitlement struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_entitlement_user_product" json:"user_id"`
	Product string `gorm:"not null;uniqueIndex:idx_entitlement_user_product" json:"product"`

	// Source of the grant: a completed payment, or nil for administrative
	// grants (e.g. approved low-income applications)
	SourcePaymentID *string   `gorm:"type:uuid" json:"source_payment_id,omitempty"`
	GrantedAt       time.Time `gorm:"not null" json:"granted_at"`
}

// BeforeCreate hook to generate UUID and set GrantedAt
func (e *Entitlement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.GrantedAt.IsZero() {
		e.GrantedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for Entitlement model
func (Entitlement) TableName() string {
	return "entitlements"
}

// IsValidProduct checks if the product identifier is known
func IsValidProduct(product string) bool {
	switch product {
	case ProductBasicAnalysis, ProductFullAnalysis, ProductFormsBundle, ProductLowIncomeAccess:
		return true
	}
	return false
}
