package services

import (
	"errors"
	"fmt"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound   = errors.New("low-income application not found")
	ErrApplicationNotPending = errors.New("application has already been reviewed")
	ErrPendingApplication    = errors.New("a pending application already exists")
	ErrInvalidHouseholdSize  = errors.New("household size must be at least 1")
	ErrInvalidIncome         = errors.New("annual income cannot be negative")
)

// lowIncomeThresholds holds the qualifying annual income ceiling in CAD
// cents per household size, based on Ontario's Low-Income Measure. Sizes
// beyond the table add a fixed increment per extra person.
var lowIncomeThresholds = map[int]int64{
	1: 2700000,
	2: 3800000,
	3: 4700000,
	4: 5400000,
	5: 6000000,
}

const perExtraPersonCents = 600000

// QualifyingIncomeCeiling returns the annual income ceiling in cents for a
// household size
func QualifyingIncomeCeiling(householdSize int) int64 {
	if householdSize < 1 {
		householdSize = 1
	}
	if ceiling, ok := lowIncomeThresholds[householdSize]; ok {
		return ceiling
	}
	extra := householdSize - 5
	return lowIncomeThresholds[5] + int64(extra)*perExtraPersonCents
}

// MeetsLowIncomeThreshold checks an income against the qualifying ceiling
func MeetsLowIncomeThreshold(householdSize int, annualIncomeCents int64) bool {
	return annualIncomeCents <= QualifyingIncomeCeiling(householdSize)
}

// ApplyForLowIncomeAccess records a fee-waiver application. One pending
// application per user at a time.
func ApplyForLowIncomeAccess(db *gorm.DB, userID string, householdSize int, annualIncomeCents int64) (*models.LowIncomeApplication, error) {
	if householdSize < 1 {
		return nil, ErrInvalidHouseholdSize
	}
	if annualIncomeCents < 0 {
		return nil, ErrInvalidIncome
	}

	var pending int64
	err := db.Model(&models.LowIncomeApplication{}).
		Where("user_id = ? AND status = ?", userID, models.LowIncomeStatusPending).
		Count(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check pending applications: %w", err)
	}
	if pending > 0 {
		return nil, ErrPendingApplication
	}

	application := &models.LowIncomeApplication{
		UserID:            userID,
		HouseholdSize:     householdSize,
		AnnualIncomeCents: annualIncomeCents,
		Status:            models.LowIncomeStatusPending,
	}
	if err := db.Create(application).Error; err != nil {
		return nil, fmt.Errorf("failed to record application: %w", err)
	}
	return application, nil
}

// ReviewLowIncomeApplication settles a pending application. Approval grants
// the low-income-access entitlement in the same transaction; the threshold
// check informs the reviewer but the decision is theirs.
func ReviewLowIncomeApplication(db *gorm.DB, applicationID, reviewerID string, approve bool, notes string) (*models.LowIncomeApplication, error) {
	var application models.LowIncomeApplication
	err := db.First(&application, "id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if !application.IsPending() {
		return nil, ErrApplicationNotPending
	}

	now := time.Now()
	status := models.LowIncomeStatusDenied
	if approve {
		status = models.LowIncomeStatusApproved
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
			"notes":       notes,
		}
		if err := tx.Model(&application).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		if approve {
			return GrantEntitlement(tx, application.UserID, models.ProductLowIncomeAccess, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	application.Status = status
	application.ReviewedBy = &reviewerID
	application.ReviewedAt = &now
	application.Notes = notes
	return &application, nil
}

// ListLowIncomeApplications returns applications for admin review, pending first
func ListLowIncomeApplications(db *gorm.DB, status string) ([]models.LowIncomeApplication, error) {
	query := db.Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.LowIncomeApplication
	err := query.Find(&applications).Error
	return applications, err
}

// GetUserLowIncomeApplication returns a user's most recent application
func GetUserLowIncomeApplication(db *gorm.DB, userID string) (*models.LowIncomeApplication, error) {
	var application models.LowIncomeApplication
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &application, nil
}
