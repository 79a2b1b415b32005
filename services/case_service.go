package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

var (
	ErrDescriptionRequired = errors.New("case description is required")
	ErrInvalidCaseStatus   = errors.New("invalid case status")
	ErrNotCaseOwner        = errors.New("case does not belong to user")
)

// CaseIntake carries the intake form fields for a new case
type CaseIntake struct {
	Title        string
	Description  string
	Province     string
	Municipality string
	LawSection   string
}

// CreateCase records a new case for a user
func CreateCase(db *gorm.DB, userID string, intake CaseIntake) (*models.Case, error) {
	description := strings.TrimSpace(intake.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	province := strings.ToUpper(strings.TrimSpace(intake.Province))
	if province == "" {
		province = "ON"
	}

	kase := &models.Case{
		UserID:       userID,
		Description:  description,
		Province:     province,
		Municipality: strings.TrimSpace(intake.Municipality),
		LawSection:   strings.TrimSpace(intake.LawSection),
		Status:       models.CaseStatusOpen,
	}
	if title := strings.TrimSpace(intake.Title); title != "" {
		kase.Title = &title
	}

	if err := db.Create(kase).Error; err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return kase, nil
}

// GetUserCase fetches a case and verifies ownership
func GetUserCase(db *gorm.DB, userID, caseID string) (*models.Case, error) {
	var kase models.Case
	err := db.Preload("Evidence").Preload("Pathways").First(&kase, "id = ?", caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}
	if kase.UserID != userID {
		return nil, ErrNotCaseOwner
	}
	return &kase, nil
}

// ListUserCases returns all cases for a user, newest first
func ListUserCases(db *gorm.DB, userID string) ([]models.Case, error) {
	var cases []models.Case
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

// UpdateCaseStatus transitions a case's status. Cases are never deleted;
// closing is the terminal transition.
func UpdateCaseStatus(db *gorm.DB, userID, caseID, status string) (*models.Case, error) {
	if !models.IsValidCaseStatus(status) {
		return nil, ErrInvalidCaseStatus
	}

	kase, err := GetUserCase(db, userID, caseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            status,
		"status_changed_at": now,
	}
	if status == models.CaseStatusClosed {
		updates["closed_at"] = now
	}

	if err := db.Model(&models.Case{}).Where("id = ?", kase.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update case status: %w", err)
	}

	kase.Status = status
	kase.StatusChangedAt = &now
	if status == models.CaseStatusClosed {
		kase.ClosedAt = &now
	}
	return kase, nil
}

// GetCasePathways returns the pathway rows from the most recent analysis
func GetCasePathways(db *gorm.DB, userID, caseID string) ([]models.LegalPathway, error) {
	if _, err := GetUserCase(db, userID, caseID); err != nil {
		return nil, err
	}

	var pathways []models.LegalPathway
	err := db.Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&pathways).Error
	return pathways, err
}
