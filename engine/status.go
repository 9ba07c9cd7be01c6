package engine

import (
	"errors"
	"time"

	"loyalty-backend/models"

	"gorm.io/gorm"
)

// SignedTotal sums a payment set with PAYMENT counting positive and REFUND
// counting negative.
func SignedTotal(payments []models.Payment) float64 {
	total := 0.0
	for _, p := range payments {
		total += p.SignedAmount()
	}
	return total
}

// ResolveStatus derives an invoice's status from its full payment history.
// It is a pure recomputation: no previous status is consulted and there is no
// terminal state, so payments being added, edited or removed can move the
// status in any direction.
//
// A CASH invoice with zero recorded payments is treated as settled at
// creation; a CREDIT invoice in the same position is UNPAID. A past due date
// with an outstanding amount forces OVERDUE regardless of the other branches.
func ResolveStatus(invoice *models.Invoice, payments []models.Payment, now time.Time) models.InvoiceStatus {
	total := SignedTotal(payments)

	if invoice.DueDate != nil && invoice.DueDate.Before(now) && total < invoice.TotalAmount {
		return models.InvoiceStatusOverdue
	}

	switch {
	case total >= invoice.TotalAmount:
		return models.InvoiceStatusPaid
	case total > 0:
		return models.InvoiceStatusPartiallyPaid
	case invoice.PaymentMethod == models.PaymentMethodCredit:
		return models.InvoiceStatusUnpaid
	default:
		return models.InvoiceStatusPaid
	}
}

// RefreshInvoiceStatus reloads the invoice's payments, resolves the status
// from scratch and persists it.
func RefreshInvoiceStatus(tx *gorm.DB, invoiceID uint, now time.Time) (models.Invoice, error) {
	var invoice models.Invoice
	if err := tx.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice, ErrInvoiceNotFound
		}
		return invoice, err
	}

	payments, err := paymentsForInvoice(tx, invoiceID)
	if err != nil {
		return invoice, err
	}

	status := ResolveStatus(&invoice, payments, now)
	if status != invoice.Status {
		if err := tx.Model(&invoice).Update("status", status).Error; err != nil {
			return invoice, err
		}
	}
	invoice.Status = status
	return invoice, nil
}

func paymentsForInvoice(tx *gorm.DB, invoiceID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
