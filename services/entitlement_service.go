package services

import (
	"fmt"

	"justice_bot_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HasEntitlement reports whether the user holds the product, directly or via
// the low-income tier which unlocks every paid product
func HasEntitlement(db *gorm.DB, userID, product string) (bool, error) {
	var count int64
	err := db.Model(&models.Entitlement{}).
		Where("user_id = ? AND product IN ?", userID, []string{product, models.ProductLowIncomeAccess}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check entitlement: %w", err)
	}
	return count > 0, nil
}

// GrantEntitlement records a product grant. Idempotent: a second grant for
// the same (user, product) pair is a no-op thanks to the unique index.
func GrantEntitlement(db *gorm.DB, userID, product string, sourcePaymentID *string) error {
	entitlement := models.Entitlement{
		UserID:          userID,
		Product:         product,
		SourcePaymentID: sourcePaymentID,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product"}},
		DoNothing: true,
	}).Create(&entitlement).Error
	if err != nil {
		return fmt.Errorf("failed to grant entitlement: %w", err)
	}
	return nil
}

// ListEntitlements returns all product grants held by a user
func ListEntitlements(db *gorm.DB, userID string) ([]models.Entitlement, error) {
	var entitlements []models.Entitlement
	err := db.Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&entitlements).Error
	return entitlements, err
}
