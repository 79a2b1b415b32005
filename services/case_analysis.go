package services

import (
	"errors"
	"fmt"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

var (
	ErrCaseNotFound = errors.New("case not found")
	ErrCaseClosed   = errors.New("case is closed")
)

// AnalysisResult is the outcome of one analysis run
type AnalysisResult struct {
	Case       *models.Case
	Pathway    *models.LegalPathway
	Strengths  []string
	Weaknesses []string
}

// pathwayGuidance holds the static recommendation content per pathway tag
type pathwayGuidance struct {
	Recommendation string
	NextSteps      []string
	RelevantLaws   []string
}

var pathwayGuidanceTable = map[string]pathwayGuidance{
	models.PathwayLandlordTenant: {
		Recommendation: "Your matter falls under the Landlord and Tenant Board (LTB). Most tenant applications are filed on a T-series form with a filing fee, and hearings are typically held by video.",
		NextSteps: []string{
			"Gather your lease, rent receipts and any written communication with your landlord",
			"Identify the correct LTB application form for your issue",
			"File the application with the Landlord and Tenant Board",
			"Prepare your evidence package before the hearing date",
		},
		RelevantLaws: []string{"Residential Tenancies Act, 2006, S.O. 2006, c. 17"},
	},
	models.PathwayHumanRights: {
		Recommendation: "Your matter can be brought before the Human Rights Tribunal of Ontario (HRTO). Applications must generally be filed within one year of the last incident of discrimination.",
		NextSteps: []string{
			"Write down each incident with dates and the people involved",
			"Complete HRTO Form 1 (Application)",
			"File within one year of the last incident",
			"Consider contacting the Human Rights Legal Support Centre",
		},
		RelevantLaws: []string{"Human Rights Code, R.S.O. 1990, c. H.19"},
	},
	models.PathwayHumanRightsWorkplace: {
		Recommendation: "Workplace discrimination can be pursued at the Human Rights Tribunal of Ontario, and some claims may also support an employment law action. You cannot recover twice for the same harm, so the venue choice matters.",
		NextSteps: []string{
			"Document each workplace incident with dates and witnesses",
			"Request your personnel file from your employer",
			"Complete HRTO Form 1 (Application)",
			"Get advice on whether a civil claim is a better route before filing",
		},
		RelevantLaws: []string{
			"Human Rights Code, R.S.O. 1990, c. H.19",
			"Employment Standards Act, 2000, S.O. 2000, c. 41",
		},
	},
	models.PathwayEmployment: {
		Recommendation: "Employment disputes over wages or termination can go to the Ministry of Labour or Small Claims Court (claims up to $35,000). Small Claims is usually faster for severance and unpaid wage claims.",
		NextSteps: []string{
			"Collect your employment contract, pay stubs and termination letter",
			"Calculate what you are owed including notice and vacation pay",
			"File a Plaintiff's Claim in Small Claims Court or a Ministry of Labour claim",
		},
		RelevantLaws: []string{"Employment Standards Act, 2000, S.O. 2000, c. 41"},
	},
	models.PathwayCriminal: {
		Recommendation: "This appears to be a criminal matter. Criminal proceedings are heard in the Ontario Court of Justice; you have the right to counsel and should contact duty counsel or Legal Aid Ontario before your first appearance.",
		NextSteps: []string{
			"Contact Legal Aid Ontario or duty counsel immediately",
			"Request disclosure from the Crown",
			"Do not discuss your case with anyone except your lawyer",
			"Attend every court date",
		},
		RelevantLaws: []string{"Criminal Code, R.S.C. 1985, c. C-46"},
	},
	models.PathwayCivil: {
		Recommendation: "Your matter looks like a general civil dispute. Claims up to $35,000 are heard in Small Claims Court, which is designed for self-represented litigants.",
		NextSteps: []string{
			"Gather contracts, invoices and correspondence related to the dispute",
			"Send a demand letter before filing",
			"File a Plaintiff's Claim in Small Claims Court",
		},
		RelevantLaws: []string{"Courts of Justice Act, R.S.O. 1990, c. C.43"},
	},
}

// AnalyzeCase runs the heuristic analysis pipeline for a case: classify the
// pathway, compute the merit score, and persist the results. The case update,
// pathway replacement and form prefill writes happen in a single transaction
// so a partial failure cannot leave the case half-analyzed.
func AnalyzeCase(db *gorm.DB, caseID string) (*AnalysisResult, error) {
	var kase models.Case
	if err := db.First(&kase, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	if kase.IsClosed() {
		return nil, ErrCaseClosed
	}

	evidenceCount, err := CountCaseEvidence(db, caseID)
	if err != nil {
		return nil, err
	}

	pathwayType := ClassifyPathway(kase.Description)
	merit := ScoreMerit(MeritInput{
		CaseID:        kase.ID,
		Description:   kase.Description,
		EvidenceCount: int(evidenceCount),
		LawSection:    kase.LawSection,
		Province:      kase.Province,
		PathwayType:   pathwayType,
	})

	guidance := pathwayGuidanceTable[pathwayType]

	pathway := &models.LegalPathway{
		CaseID:          kase.ID,
		PathwayType:     pathwayType,
		Recommendation:  guidance.Recommendation,
		ConfidenceScore: float64(merit.Score) / 100.0,
		Source:          models.PathwaySourceHeuristic,
	}
	if err := pathway.SetNextSteps(guidance.NextSteps); err != nil {
		return nil, fmt.Errorf("failed to encode next steps: %w", err)
	}
	if err := pathway.SetRelevantLaws(guidance.RelevantLaws); err != nil {
		return nil, fmt.Errorf("failed to encode relevant laws: %w", err)
	}

	if err := persistAnalysis(db, &kase, pathway, merit.Score); err != nil {
		return nil, err
	}

	return &AnalysisResult{
		Case:       &kase,
		Pathway:    pathway,
		Strengths:  merit.Strengths,
		Weaknesses: merit.Weaknesses,
	}, nil
}

// persistAnalysis writes one analysis run atomically: case score + status,
// pathway rows replaced, form prefill data overwritten.
func persistAnalysis(db *gorm.DB, kase *models.Case, pathway *models.LegalPathway, score int) error {
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Case{}).
			Where("id = ?", kase.ID).
			Updates(map[string]interface{}{
				"merit_score":       score,
				"status":            models.CaseStatusAnalyzed,
				"analyzed_at":       now,
				"status_changed_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update case score: %w", err)
		}

		// Re-analysis replaces prior pathway rows rather than accumulating them
		if err := tx.Where("case_id = ?", kase.ID).Delete(&models.LegalPathway{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous pathways: %w", err)
		}
		if err := tx.Create(pathway).Error; err != nil {
			return fmt.Errorf("failed to create pathway: %w", err)
		}

		if err := UpsertFormPrefill(tx, kase, pathway.PathwayType); err != nil {
			return err
		}

		// Reflect new values on the in-memory case
		kase.MeritScore = &score
		kase.Status = models.CaseStatusAnalyzed
		kase.AnalyzedAt = &now
		kase.StatusChangedAt = &now
		return nil
	})
}
