package engine

import (
	"testing"

	"loyalty-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Create followed immediately by delete must restore points earned and credit
// balance exactly: the two paths apply one shared effect with opposite signs.
func TestDeleteInvoice_RestoresBalances(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 120, 20)
	product := seedProduct(t, db, "Coffee", "drinks", 250, 4, 0)

	before := reloadCustomer(t, db, customer.Id)

	invoice, err := CreateInvoice(db, CreateInvoiceInput{
		CustomerID:    customer.Id,
		Items:         []InvoiceItemInput{{ProductID: product.Id, Quantity: 2}},
		PaymentMethod: models.PaymentMethodCredit,
	})
	require.NoError(t, err)

	afterCreate := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, before.PointsEarned+8, afterCreate.PointsEarned)
	assert.InDelta(t, before.CreditBalance+500, afterCreate.CreditBalance, 0.001)

	require.NoError(t, DeleteInvoice(db, invoice.ID))

	afterDelete := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, before.PointsEarned, afterDelete.PointsEarned)
	assert.Equal(t, before.CurrentPoints, afterDelete.CurrentPoints)
	assert.InDelta(t, before.CreditBalance, afterDelete.CreditBalance, 0.001)

	// Line items were cascade-deleted with the invoice.
	var itemCount int64
	require.NoError(t, db.Model(&models.InvoiceItem{}).
		Where("invoice_id = ?", invoice.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestDeleteInvoice_CashInvoiceLeavesCreditAlone(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 0, 0)
	product := seedProduct(t, db, "Coffee", "drinks", 250, 4, 0)

	invoice, err := CreateInvoice(db, CreateInvoiceInput{
		CustomerID:    customer.Id,
		Items:         []InvoiceItemInput{{ProductID: product.Id, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	afterCreate := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 4, afterCreate.PointsEarned)
	assert.Equal(t, 0.0, afterCreate.CreditBalance)

	require.NoError(t, DeleteInvoice(db, invoice.ID))

	afterDelete := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 0, afterDelete.PointsEarned)
	assert.Equal(t, 0.0, afterDelete.CreditBalance)
}

func TestDeleteInvoice_SettledCreditInvoice(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 0, 0)
	product := seedProduct(t, db, "Coffee", "drinks", 100, 1, 0)

	invoice, err := CreateInvoice(db, CreateInvoiceInput{
		CustomerID:    customer.Id,
		Items:         []InvoiceItemInput{{ProductID: product.Id, Quantity: 3}},
		PaymentMethod: models.PaymentMethodCredit,
	})
	require.NoError(t, err)

	_, err = RecordPayment(db, invoice.ID, PaymentInput{
		Amount: 300, Type: models.PaymentTypePayment,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloadCustomer(t, db, customer.Id).CreditBalance)

	// A settled invoice carries no credit effect; only the points reverse.
	require.NoError(t, DeleteInvoice(db, invoice.ID))

	afterDelete := reloadCustomer(t, db, customer.Id)
	assert.Equal(t, 0, afterDelete.PointsEarned)
	assert.Equal(t, 0.0, afterDelete.CreditBalance)
}

func TestDeleteInvoice_Missing(t *testing.T) {
	db := newTestDB(t)
	assert.ErrorIs(t, DeleteInvoice(db, 404), ErrInvoiceNotFound)
}
