package services

import (
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFormTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(
		&models.User{},
		&models.Case{},
		&models.Evidence{},
		&models.LegalPathway{},
		&models.Form{},
		&models.FormPrefillData{},
		&models.FormUsage{},
	)
	return db
}

func TestSeedFormsIdempotent(t *testing.T) {
	db := setupFormTestDB()
	assert.NoError(t, SeedForms(db))
	assert.NoError(t, SeedForms(db))

	var count int64
	db.Model(&models.Form{}).Count(&count)
	assert.Equal(t, int64(len(formCatalogSeed)), count)
}

func TestFormCodesForPathway(t *testing.T) {
	assert.Equal(t, []string{"LTB-T2", "LTB-T6"}, FormCodesForPathway(models.PathwayLandlordTenant))
	assert.Equal(t, []string{"HRTO-F1"}, FormCodesForPathway(models.PathwayHumanRights))
	assert.Equal(t, []string{"HRTO-F1"}, FormCodesForPathway(models.PathwayHumanRightsWorkplace))
	assert.Equal(t, []string{"SCC-7A"}, FormCodesForPathway(models.PathwayCivil))
	assert.Equal(t, []string{"SCC-7A-EMP"}, FormCodesForPathway(models.PathwayEmployment))
	// No standard tribunal form for criminal matters
	assert.Nil(t, FormCodesForPathway(models.PathwayCriminal))
}

func TestListFormsByPathway(t *testing.T) {
	db := setupFormTestDB()
	assert.NoError(t, SeedForms(db))

	forms, err := ListForms(db, models.PathwayLandlordTenant)
	assert.NoError(t, err)
	assert.Len(t, forms, 2)
	for _, form := range forms {
		assert.Equal(t, "Landlord and Tenant Board", form.TribunalName)
	}

	all, err := ListForms(db, "")
	assert.NoError(t, err)
	assert.Len(t, all, len(formCatalogSeed))
}

func TestGetFormByCode(t *testing.T) {
	db := setupFormTestDB()
	assert.NoError(t, SeedForms(db))

	form, err := GetFormByCode(db, "HRTO-F1")
	assert.NoError(t, err)
	assert.Equal(t, "Human Rights Tribunal of Ontario", form.TribunalName)

	_, err = GetFormByCode(db, "NOPE-99")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestGetCasePrefillRequiresAnalysis(t *testing.T) {
	db := setupFormTestDB()
	user := &models.User{Email: "u@example.com", PasswordHash: "h", Role: models.RoleUser, IsActive: true}
	db.Create(user)
	kase := &models.Case{UserID: user.ID, Description: "d", Province: "ON", Status: models.CaseStatusOpen}
	db.Create(kase)

	_, err := GetCasePrefill(db, user.ID, kase.ID, "LTB-T2")
	assert.ErrorIs(t, err, ErrNoPrefillForForm)
}

func TestRecordFormUsage(t *testing.T) {
	db := setupFormTestDB()
	assert.NoError(t, RecordFormUsage(db, "user-1", "case-1", "LTB-T2", "pdf"))

	var usage models.FormUsage
	assert.NoError(t, db.First(&usage).Error)
	assert.Equal(t, "LTB-T2", usage.FormCode)
	assert.Equal(t, "pdf", usage.Format)
}
