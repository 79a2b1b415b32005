package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pathway type constants. Ordered by classifier precedence: criminal matches
// first, civil is the fallback.
const (
	PathwayCriminal             = "criminal"
	PathwayLandlordTenant       = "landlord-tenant"
	PathwayHumanRightsWorkplace = "human-rights-workplace"
	PathwayHumanRights          = "human-rights"
	PathwayEmployment           = "employment"
	PathwayCivil                = "civil"
)

// Pathway source constants
const (
	PathwaySourceHeuristic = "heuristic"
	PathwaySourceAI        = "ai"
)

// LegalPathway holds a recommended tribunal/venue route for a case,
// produced by one analysis run. Re-analysis replaces the rows for a case.
type LegalPathway struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	PathwayType     string  `gorm:"not null;index" json:"pathway_type"`
	Recommendation  string  `gorm:"type:text;not null" json:"recommendation"`
	ConfidenceScore float64 `gorm:"not null" json:"confidence_score"`

	// JSON-encoded string slices
	NextSteps    string `gorm:"type:text" json:"-"`
	RelevantLaws string `gorm:"type:text" json:"-"`

	Source string `gorm:"not null;default:heuristic" json:"source"`
}

// BeforeCreate hook to generate UUID
func (p *LegalPathway) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LegalPathway model
func (LegalPathway) TableName() string {
	return "legal_pathways"
}

// SetNextSteps stores the next steps list as JSON
func (p *LegalPathway) SetNextSteps(steps []string) error {
	data, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	p.NextSteps = string(data)
	return nil
}

// GetNextSteps returns the decoded next steps list
func (p *LegalPathway) GetNextSteps() []string {
	if p.NextSteps == "" {
		return nil
	}
	var steps []string
	if err := json.Unmarshal([]byte(p.NextSteps), &steps); err != nil {
		return nil
	}
	return steps
}

// SetRelevantLaws stores the relevant laws list as JSON
func (p *LegalPathway) SetRelevantLaws(laws []string) error {
	data, err := json.Marshal(laws)
	if err != nil {
		return err
	}
	p.RelevantLaws = string(data)
	return nil
}

// GetRelevantLaws returns the decoded relevant laws list
func (p *LegalPathway) GetRelevantLaws() []string {
	if p.RelevantLaws == "" {
		return nil
	}
	var laws []string
	if err := json.Unmarshal([]byte(p.RelevantLaws), &laws); err != nil {
		return nil
	}
	return laws
}

// IsValidPathwayType checks if the pathway tag is one the classifier can emit
func IsValidPathwayType(pathway string) bool {
	switch pathway {
	case PathwayCriminal, PathwayLandlordTenant, PathwayHumanRightsWorkplace,
		PathwayHumanRights, PathwayEmployment, PathwayCivil:
		return true
	}
	return false
}
