package engine

import (
	"loyalty-backend/models"
	"loyalty-backend/utils"

	"gorm.io/gorm"
)

var unsettledStatuses = []models.InvoiceStatus{
	models.InvoiceStatusUnpaid,
	models.InvoiceStatusPartiallyPaid,
	models.InvoiceStatusOverdue,
}

// Outstanding returns the unpaid remainder of a single invoice given its
// payment history.
func Outstanding(invoice models.Invoice, payments []models.Payment) float64 {
	return invoice.TotalAmount - SignedTotal(payments)
}

// RecomputeCreditBalance rebuilds the customer's outstanding credit from
// every unsettled invoice and persists it. Always a full recomputation, never
// an incremental delta, so a missed trigger path cannot leave drift behind.
// The result is clamped at zero.
func RecomputeCreditBalance(tx *gorm.DB, customerID uint) (float64, error) {
	var invoices []models.Invoice
	if err := tx.Where("customer_id = ? AND status IN ?", customerID, unsettledStatuses).
		Find(&invoices).Error; err != nil {
		return 0, err
	}

	total := 0.0
	for _, invoice := range invoices {
		payments, err := paymentsForInvoice(tx, invoice.ID)
		if err != nil {
			return 0, err
		}
		total += Outstanding(invoice, payments)
	}
	if total < 0 {
		total = 0
	}
	total = utils.Round2(total)

	if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Update("credit_balance", total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
