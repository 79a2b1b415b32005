package services

import (
	"errors"
	"fmt"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrNoPrefillForForm  = errors.New("no prefill data for this form; run analysis first")
	ErrFormNotForPathway = errors.New("form does not apply to this case's pathway")
)

// formCatalogSeed is the built-in set of Ontario tribunal forms. SeedForms
// inserts these on startup; codes are stable identifiers.
var formCatalogSeed = []models.Form{
	{
		Code:         "LTB-T2",
		Title:        "Application About Tenant Rights",
		TribunalName: "Landlord and Tenant Board",
		PathwayType:  models.PathwayLandlordTenant,
		Description:  "For tenants whose rights under the Residential Tenancies Act have been violated by a landlord.",
	},
	{
		Code:         "LTB-T6",
		Title:        "Tenant Application About Maintenance",
		TribunalName: "Landlord and Tenant Board",
		PathwayType:  models.PathwayLandlordTenant,
		Description:  "For tenants whose landlord has not met maintenance or repair obligations.",
	},
	{
		Code:         "HRTO-F1",
		Title:        "Form 1: Application",
		TribunalName: "Human Rights Tribunal of Ontario",
		PathwayType:  models.PathwayHumanRights,
		Description:  "Application alleging discrimination under the Ontario Human Rights Code.",
	},
	{
		Code:         "SCC-7A",
		Title:        "Plaintiff's Claim (Form 7A)",
		TribunalName: "Small Claims Court",
		PathwayType:  models.PathwayCivil,
		Description:  "Claim for money or personal property valued at $35,000 or less.",
	},
	{
		Code:         "SCC-7A-EMP",
		Title:        "Plaintiff's Claim (Form 7A)",
		TribunalName: "Small Claims Court",
		PathwayType:  models.PathwayEmployment,
		Description:  "Claim for unpaid wages, termination or severance pay up to $35,000.",
	},
}

// SeedForms inserts the form catalog, skipping codes that already exist
func SeedForms(db *gorm.DB) error {
	for i := range formCatalogSeed {
		form := formCatalogSeed[i]
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&form).Error
		if err != nil {
			return fmt.Errorf("failed to seed form %s: %w", form.Code, err)
		}
	}
	return nil
}

// FormCodesForPathway returns the catalog codes applicable to a pathway.
// The workplace human-rights pathway shares the HRTO application form.
func FormCodesForPathway(pathwayType string) []string {
	switch pathwayType {
	case models.PathwayLandlordTenant:
		return []string{"LTB-T2", "LTB-T6"}
	case models.PathwayHumanRights, models.PathwayHumanRightsWorkplace:
		return []string{"HRTO-F1"}
	case models.PathwayEmployment:
		return []string{"SCC-7A-EMP"}
	case models.PathwayCivil:
		return []string{"SCC-7A"}
	default:
		return nil
	}
}

// ListForms returns active catalog forms, optionally filtered by pathway
func ListForms(db *gorm.DB, pathwayType string) ([]models.Form, error) {
	query := db.Where("is_active = ?", true)
	if pathwayType != "" {
		query = query.Where("pathway_type = ?", pathwayType)
	}

	var forms []models.Form
	err := query.Order("code ASC").Find(&forms).Error
	return forms, err
}

// GetFormByCode fetches a single catalog form
func GetFormByCode(db *gorm.DB, code string) (*models.Form, error) {
	var form models.Form
	err := db.First(&form, "code = ? AND is_active = ?", code, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to fetch form: %w", err)
	}
	return &form, nil
}

// buildPrefillFields extracts the field values a tribunal form shares across
// the catalog: applicant details come from the user, matter details from the
// case. Field names are form-neutral; the document renderer maps them onto
// each form's layout.
func buildPrefillFields(kase *models.Case, user *models.User) map[string]string {
	fields := map[string]string{
		"applicant_name":  user.FullName(),
		"applicant_email": user.Email,
		"province":        kase.Province,
		"description":     kase.Description,
		"filing_date":     time.Now().Format("2006-01-02"),
	}
	if kase.Municipality != "" {
		fields["municipality"] = kase.Municipality
	}
	if kase.LawSection != "" {
		fields["law_section"] = kase.LawSection
	}
	if kase.Title != nil && *kase.Title != "" {
		fields["matter_title"] = *kase.Title
	}
	return fields
}

// UpsertFormPrefill writes prefill rows for every form applicable to the
// case's pathway. Runs inside the analysis transaction; re-analysis
// overwrites the previous run's fields for the same (case, form) pair.
func UpsertFormPrefill(tx *gorm.DB, kase *models.Case, pathwayType string) error {
	codes := FormCodesForPathway(pathwayType)
	if len(codes) == 0 {
		return nil
	}

	var user models.User
	if err := tx.First(&user, "id = ?", kase.UserID).Error; err != nil {
		return fmt.Errorf("failed to load case owner: %w", err)
	}

	fields := buildPrefillFields(kase, &user)

	for _, code := range codes {
		prefill := models.FormPrefillData{
			CaseID:      kase.ID,
			FormCode:    code,
			PathwayType: pathwayType,
			Province:    kase.Province,
		}
		if err := prefill.SetFields(fields); err != nil {
			return fmt.Errorf("failed to encode prefill fields: %w", err)
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "case_id"}, {Name: "form_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"fields", "pathway_type", "province", "updated_at"}),
		}).Create(&prefill).Error
		if err != nil {
			return fmt.Errorf("failed to upsert prefill for %s: %w", code, err)
		}
	}
	return nil
}

// GetCasePrefill returns the prefill row for a case and form code, verifying
// case ownership first
func GetCasePrefill(db *gorm.DB, userID, caseID, formCode string) (*models.FormPrefillData, error) {
	if _, err := GetUserCase(db, userID, caseID); err != nil {
		return nil, err
	}

	var prefill models.FormPrefillData
	err := db.First(&prefill, "case_id = ? AND form_code = ?", caseID, formCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPrefillForForm
		}
		return nil, fmt.Errorf("failed to fetch prefill data: %w", err)
	}
	return &prefill, nil
}

// RecordFormUsage writes an audit row for a form generation
func RecordFormUsage(db *gorm.DB, userID, caseID, formCode, format string) error {
	usage := &models.FormUsage{
		UserID:   userID,
		CaseID:   caseID,
		FormCode: formCode,
		Format:   format,
	}
	return db.Create(usage).Error
}
