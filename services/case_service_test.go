package services

import (
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCaseTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Case{}, &models.Evidence{}, &models.LegalPathway{})
	return db
}

func createCaseTestUser(db *gorm.DB, email string) *models.User {
	user := &models.User{Email: email, PasswordHash: "h", Role: models.RoleUser, IsActive: true, Province: "ON"}
	db.Create(user)
	return user
}

func TestCreateCase(t *testing.T) {
	db := setupCaseTestDB()
	user := createCaseTestUser(db, "a@example.com")

	kase, err := CreateCase(db, user.ID, CaseIntake{
		Title:        "Deposit dispute",
		Description:  "  My landlord kept my deposit.  ",
		Province:     "on",
		Municipality: "Hamilton",
	})
	assert.NoError(t, err)
	assert.Equal(t, "My landlord kept my deposit.", kase.Description)
	assert.Equal(t, "ON", kase.Province)
	assert.Equal(t, models.CaseStatusOpen, kase.Status)
	assert.Nil(t, kase.MeritScore)
	assert.False(t, kase.OpenedAt.IsZero())
}

func TestCreateCaseRequiresDescription(t *testing.T) {
	db := setupCaseTestDB()
	user := createCaseTestUser(db, "a@example.com")

	_, err := CreateCase(db, user.ID, CaseIntake{Description: "   "})
	assert.ErrorIs(t, err, ErrDescriptionRequired)
}

func TestGetUserCaseOwnership(t *testing.T) {
	db := setupCaseTestDB()
	owner := createCaseTestUser(db, "owner@example.com")
	stranger := createCaseTestUser(db, "stranger@example.com")

	kase, err := CreateCase(db, owner.ID, CaseIntake{Description: "dispute"})
	assert.NoError(t, err)

	fetched, err := GetUserCase(db, owner.ID, kase.ID)
	assert.NoError(t, err)
	assert.Equal(t, kase.ID, fetched.ID)

	_, err = GetUserCase(db, stranger.ID, kase.ID)
	assert.ErrorIs(t, err, ErrNotCaseOwner)

	_, err = GetUserCase(db, owner.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestListUserCases(t *testing.T) {
	db := setupCaseTestDB()
	user := createCaseTestUser(db, "a@example.com")
	other := createCaseTestUser(db, "b@example.com")

	CreateCase(db, user.ID, CaseIntake{Description: "one"})
	CreateCase(db, user.ID, CaseIntake{Description: "two"})
	CreateCase(db, other.ID, CaseIntake{Description: "three"})

	cases, err := ListUserCases(db, user.ID)
	assert.NoError(t, err)
	assert.Len(t, cases, 2)
}

func TestUpdateCaseStatus(t *testing.T) {
	db := setupCaseTestDB()
	user := createCaseTestUser(db, "a@example.com")
	kase, _ := CreateCase(db, user.ID, CaseIntake{Description: "dispute"})

	closed, err := UpdateCaseStatus(db, user.ID, kase.ID, models.CaseStatusClosed)
	assert.NoError(t, err)
	assert.Equal(t, models.CaseStatusClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)
	assert.NotNil(t, closed.StatusChangedAt)

	_, err = UpdateCaseStatus(db, user.ID, kase.ID, "BOGUS")
	assert.ErrorIs(t, err, ErrInvalidCaseStatus)
}
