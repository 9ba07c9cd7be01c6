package engine

import (
	"fmt"
	"testing"

	"loyalty-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database with the tenant tables
// migrated. Each test gets its own named memory database so state never
// leaks between tests sharing the connection pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.Redemption{},
		&models.RedemptionItem{},
		&models.PointsHistory{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, earned, redeemed int) models.Customer {
	t.Helper()

	customer := models.Customer{
		Name:           "Test Customer",
		Email:          fmt.Sprintf("%s@example.com", t.Name()),
		PointsEarned:   earned,
		PointsRedeemed: redeemed,
		CurrentPoints:  earned - redeemed,
		Active:         true,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name, category string, unitPrice float64, pointsPerUnit, pointsRequired int) models.Product {
	t.Helper()

	product := models.Product{
		Name:           name,
		Category:       category,
		UnitPrice:      unitPrice,
		PointsPerUnit:  pointsPerUnit,
		PointsRequired: pointsRequired,
		Active:         true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func reloadCustomer(t *testing.T, db *gorm.DB, id uint) models.Customer {
	t.Helper()

	var customer models.Customer
	require.NoError(t, db.First(&customer, id).Error)
	return customer
}
