package engine

import (
	"testing"
	"time"

	"loyalty-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creditInvoice(total float64, dueDate *time.Time) *models.Invoice {
	return &models.Invoice{
		TotalAmount:   total,
		PaymentMethod: models.PaymentMethodCredit,
		DueDate:       dueDate,
	}
}

func TestResolveStatus_PartialThenPaid(t *testing.T) {
	now := time.Now().UTC()
	invoice := creditInvoice(1000, nil)

	payments := []models.Payment{
		{Amount: 600, Type: models.PaymentTypePayment},
	}
	assert.Equal(t, models.InvoiceStatusPartiallyPaid, ResolveStatus(invoice, payments, now))

	payments = append(payments, models.Payment{Amount: 400, Type: models.PaymentTypePayment})
	assert.Equal(t, models.InvoiceStatusPaid, ResolveStatus(invoice, payments, now))
}

func TestResolveStatus_OverdueCreditInvoice(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	invoice := creditInvoice(500, &yesterday)

	assert.Equal(t, models.InvoiceStatusOverdue, ResolveStatus(invoice, nil, now))
}

func TestResolveStatus_OverdueOverridesPartial(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	invoice := creditInvoice(1000, &yesterday)

	payments := []models.Payment{{Amount: 600, Type: models.PaymentTypePayment}}
	assert.Equal(t, models.InvoiceStatusOverdue, ResolveStatus(invoice, payments, now))
}

func TestResolveStatus_PaidBeatsPastDueDate(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	invoice := creditInvoice(1000, &yesterday)

	payments := []models.Payment{{Amount: 1000, Type: models.PaymentTypePayment}}
	assert.Equal(t, models.InvoiceStatusPaid, ResolveStatus(invoice, payments, now))
}

func TestResolveStatus_ZeroPayments(t *testing.T) {
	now := time.Now().UTC()

	cash := &models.Invoice{TotalAmount: 100, PaymentMethod: models.PaymentMethodCash}
	assert.Equal(t, models.InvoiceStatusPaid, ResolveStatus(cash, nil, now),
		"cash sale with no recorded payments settles at creation")

	credit := creditInvoice(100, nil)
	assert.Equal(t, models.InvoiceStatusUnpaid, ResolveStatus(credit, nil, now))
}

func TestResolveStatus_RefundMovesStatusBackwards(t *testing.T) {
	now := time.Now().UTC()
	invoice := creditInvoice(1000, nil)

	payments := []models.Payment{{Amount: 1000, Type: models.PaymentTypePayment}}
	assert.Equal(t, models.InvoiceStatusPaid, ResolveStatus(invoice, payments, now))

	payments = append(payments, models.Payment{Amount: 400, Type: models.PaymentTypeRefund})
	assert.Equal(t, models.InvoiceStatusPartiallyPaid, ResolveStatus(invoice, payments, now))

	payments = append(payments, models.Payment{Amount: 600, Type: models.PaymentTypeRefund})
	assert.Equal(t, models.InvoiceStatusUnpaid, ResolveStatus(invoice, payments, now))
}

func TestResolveStatus_Idempotent(t *testing.T) {
	now := time.Now().UTC()
	invoice := creditInvoice(1000, nil)
	payments := []models.Payment{{Amount: 250, Type: models.PaymentTypePayment}}

	first := ResolveStatus(invoice, payments, now)
	second := ResolveStatus(invoice, payments, now)
	assert.Equal(t, first, second)
}

func TestRefreshInvoiceStatus_Persists(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 0, 0)
	product := seedProduct(t, db, "Coffee", "drinks", 500, 5, 0)

	invoice, err := CreateInvoice(db, CreateInvoiceInput{
		CustomerID:    customer.Id,
		Items:         []InvoiceItemInput{{ProductID: product.Id, Quantity: 2}},
		PaymentMethod: models.PaymentMethodCredit,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)

	_, err = RecordPayment(db, invoice.ID, PaymentInput{
		Amount: 400, Type: models.PaymentTypePayment,
	})
	require.NoError(t, err)

	var stored models.Invoice
	require.NoError(t, db.First(&stored, invoice.ID).Error)
	assert.Equal(t, models.InvoiceStatusPartiallyPaid, stored.Status)

	_, err = RecordPayment(db, invoice.ID, PaymentInput{
		Amount: 600, Type: models.PaymentTypePayment,
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&stored, invoice.ID).Error)
	assert.Equal(t, models.InvoiceStatusPaid, stored.Status)
}

func TestRefreshInvoiceStatus_MissingInvoice(t *testing.T) {
	db := newTestDB(t)

	_, err := RefreshInvoiceStatus(db, 12345, time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
