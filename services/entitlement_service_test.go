package services

import (
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEntitlementTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Entitlement{})
	return db
}

func TestGrantEntitlementIdempotent(t *testing.T) {
	db := setupEntitlementTestDB()
	paymentID := "payment-1"

	assert.NoError(t, GrantEntitlement(db, "user-1", models.ProductFullAnalysis, &paymentID))
	assert.NoError(t, GrantEntitlement(db, "user-1", models.ProductFullAnalysis, &paymentID))

	var count int64
	db.Model(&models.Entitlement{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHasEntitlement(t *testing.T) {
	db := setupEntitlementTestDB()

	entitled, err := HasEntitlement(db, "user-1", models.ProductFullAnalysis)
	assert.NoError(t, err)
	assert.False(t, entitled)

	assert.NoError(t, GrantEntitlement(db, "user-1", models.ProductFullAnalysis, nil))

	entitled, err = HasEntitlement(db, "user-1", models.ProductFullAnalysis)
	assert.NoError(t, err)
	assert.True(t, entitled)

	// Grants do not leak across users or products
	entitled, _ = HasEntitlement(db, "user-2", models.ProductFullAnalysis)
	assert.False(t, entitled)
	entitled, _ = HasEntitlement(db, "user-1", models.ProductFormsBundle)
	assert.False(t, entitled)
}

func TestLowIncomeAccessUnlocksAllProducts(t *testing.T) {
	db := setupEntitlementTestDB()
	assert.NoError(t, GrantEntitlement(db, "user-1", models.ProductLowIncomeAccess, nil))

	for _, product := range []string{
		models.ProductBasicAnalysis,
		models.ProductFullAnalysis,
		models.ProductFormsBundle,
	} {
		entitled, err := HasEntitlement(db, "user-1", product)
		assert.NoError(t, err)
		assert.True(t, entitled, product)
	}
}
