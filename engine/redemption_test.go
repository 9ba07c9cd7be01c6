package engine

import (
	"testing"
	"time"

	"loyalty-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRedemptionGate_NoCustomer(t *testing.T) {
	db := newTestDB(t)

	err := CheckRedemptionEligibility(db, 0, []RedemptionItemInput{{ProductID: "x", Quantity: 1}})
	assert.ErrorIs(t, err, ErrNoCustomer)
}

func TestRedemptionGate_EmptyItems(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 100, 0)

	err := CheckRedemptionEligibility(db, customer.Id, nil)
	assert.ErrorIs(t, err, ErrEmptyItems)
}

func TestRedemptionGate_InsufficientPoints(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	product := seedProduct(t, db, "Mug", "merch", 0, 0, 350)

	err := CheckRedemptionEligibility(db, customer.Id, []RedemptionItemInput{
		{ProductID: product.Id, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestRedemptionGate_UnsettledInvoiceBlocks(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 1000, 0)
	product := seedProduct(t, db, "Mug", "merch", 50, 0, 10)

	// An overdue invoice blocks any redemption, regardless of point balance.
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	_, err := CreateInvoice(db, CreateInvoiceInput{
		CustomerID:    customer.Id,
		Items:         []InvoiceItemInput{{ProductID: product.Id, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCredit,
		DueDate:       &yesterday,
	})
	require.NoError(t, err)

	err = CheckRedemptionEligibility(db, customer.Id, []RedemptionItemInput{
		{ProductID: product.Id, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrUnsettledInvoices)
}

func TestCreateRedemption_ChargesPoints(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	product := seedProduct(t, db, "Mug", "merch", 0, 0, 150)

	redemption, err := CreateRedemption(db, customer.Id, []RedemptionItemInput{
		{ProductID: product.Id, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 300, redemption.TotalPointsRedeemed)
	assert.Equal(t, models.RedemptionStatusCompleted, redemption.Status)

	reloaded := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 300, reloaded.PointsRedeemed)
	assert.Equal(t, 0, reloaded.CurrentPoints)
}

func TestCreateRedemption_RejectsJustOverBalance(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	product := seedProduct(t, db, "Mug", "merch", 0, 0, 350)

	_, err := CreateRedemption(db, customer.Id, []RedemptionItemInput{
		{ProductID: product.Id, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Nothing was charged.
	reloaded := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 0, reloaded.PointsRedeemed)
	assert.Equal(t, 300, reloaded.CurrentPoints)
}

// Editing hands the redemption's points back before validating the new total:
// current 100 + held 200 = 300 effective, so raising the total to 280 passes.
func TestUpdateRedemption_EffectiveAvailable(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	small := seedProduct(t, db, "Mug", "merch", 0, 0, 100)
	large := seedProduct(t, db, "Hoodie", "merch", 0, 0, 140)

	redemption, err := CreateRedemption(db, customer.Id, []RedemptionItemInput{
		{ProductID: small.Id, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, reloadCustomer(t, db, customer.Id).CurrentPoints)

	updated, err := UpdateRedemption(db, redemption.ID, []RedemptionItemInput{
		{ProductID: large.Id, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 280, updated.TotalPointsRedeemed)

	reloaded := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 280, reloaded.PointsRedeemed)
	assert.Equal(t, 20, reloaded.CurrentPoints)

	// Old item rows are gone, replaced by the new list.
	var items []models.RedemptionItem
	require.NoError(t, db.Where("redemption_id = ?", redemption.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, large.Id, items[0].ProductID)
	assert.Equal(t, 280, items[0].TotalPointsRequired)
}

func TestUpdateRedemption_RejectsBeyondEffectiveAvailable(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	small := seedProduct(t, db, "Mug", "merch", 0, 0, 100)
	huge := seedProduct(t, db, "TV", "merch", 0, 0, 700)

	redemption, err := CreateRedemption(db, customer.Id, []RedemptionItemInput{
		{ProductID: small.Id, Quantity: 2},
	})
	require.NoError(t, err)

	_, err = UpdateRedemption(db, redemption.ID, []RedemptionItemInput{
		{ProductID: huge.Id, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// The rejected edit left nothing behind.
	reloaded := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 200, reloaded.PointsRedeemed)
	assert.Equal(t, 100, reloaded.CurrentPoints)

	var stored models.Redemption
	require.NoError(t, db.First(&stored, redemption.ID).Error)
	assert.Equal(t, 200, stored.TotalPointsRedeemed)
}

func TestDeleteRedemption_RestoresPoints(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	product := seedProduct(t, db, "Mug", "merch", 0, 0, 100)

	redemption, err := CreateRedemption(db, customer.Id, []RedemptionItemInput{
		{ProductID: product.Id, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, reloadCustomer(t, db, customer.Id).CurrentPoints)

	require.NoError(t, DeleteRedemption(db, redemption.ID))

	reloaded := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 0, reloaded.PointsRedeemed)
	assert.Equal(t, 300, reloaded.CurrentPoints)

	var itemCount int64
	require.NoError(t, db.Model(&models.RedemptionItem{}).
		Where("redemption_id = ?", redemption.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	var redemptionCount int64
	require.NoError(t, db.Model(&models.Redemption{}).
		Where("id = ?", redemption.ID).Count(&redemptionCount).Error)
	assert.Equal(t, int64(0), redemptionCount)
}

// The gate hands its resolved item list to the create path, so each product
// is fetched from the catalog exactly once per redemption.
func TestCreateRedemption_ResolvesEachProductOnce(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 300, 0)
	product := seedProduct(t, db, "Mug", "merch", 0, 0, 100)

	var productSelects int
	require.NoError(t, db.Callback().Query().After("gorm:query").
		Register("count_product_selects", func(tx *gorm.DB) {
			if tx.Statement.Table == "products" {
				productSelects++
			}
		}))

	_, err := CreateRedemption(db, customer.Id, []RedemptionItemInput{
		{ProductID: product.Id, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, productSelects)
}

func TestDeleteRedemption_Missing(t *testing.T) {
	db := newTestDB(t)
	assert.ErrorIs(t, DeleteRedemption(db, 9999), ErrRedemptionNotFound)
}
