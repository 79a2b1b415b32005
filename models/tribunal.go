package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tribunal type constants
const (
	TribunalTypeLTB         = "LTB"
	TribunalTypeHRTO        = "HRTO"
	TribunalTypeSmallClaims = "SMALL_CLAIMS"
	TribunalTypeDivisional  = "DIVISIONAL"
)

// Tribunal represents a tribunal or court office location used by the locator
type Tribunal struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Type     string `gorm:"not null;index" json:"type"`
	Address  string `gorm:"not null" json:"address"`
	City     string `gorm:"size:100;not null" json:"city"`
	Province string `gorm:"size:2;not null;default:ON" json:"province"`
	Postal   string `gorm:"size:10" json:"postal,omitempty"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	Phone   string `gorm:"size:30" json:"phone,omitempty"`
	Website string `gorm:"size:255" json:"website,omitempty"`
}

// BeforeCreate hook to generate UUID
func (t *Tribunal) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Tribunal model
func (Tribunal) TableName() string {
	return "tribunals"
}

// TribunalTypeForPathway maps a classifier pathway tag to the tribunal type
// that hears that kind of matter
func TribunalTypeForPathway(pathway string) string {
	switch pathway {
	case PathwayLandlordTenant:
		return TribunalTypeLTB
	case PathwayHumanRights, PathwayHumanRightsWorkplace:
		return TribunalTypeHRTO
	case PathwayCivil, PathwayEmployment:
		return TribunalTypeSmallClaims
	default:
		return TribunalTypeDivisional
	}
}
