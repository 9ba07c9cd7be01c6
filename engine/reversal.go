package engine

import (
	"errors"

	"loyalty-backend/models"
	"loyalty-backend/utils"

	"gorm.io/gorm"
)

// balanceEffect describes how one invoice moves the customer's balances.
// Creation applies it with sign +1 and deletion with sign -1, so the two
// paths are literal inverses of a single description and cannot drift apart
// through independently written code.
type balanceEffect struct {
	pointsEarned int
	credit       float64
}

func invoiceEffect(invoice *models.Invoice) balanceEffect {
	eff := balanceEffect{pointsEarned: invoice.PointsEarned}
	if invoice.PaymentMethod == models.PaymentMethodCredit && invoice.Status.Unsettled() {
		eff.credit = invoice.TotalAmount
	}
	return eff
}

// applyEffect adds sign*effect to the customer's counters, clamping points
// and credit at zero, and persists the touched columns.
func applyEffect(tx *gorm.DB, customer *models.Customer, eff balanceEffect, sign int) error {
	customer.PointsEarned += sign * eff.pointsEarned
	if customer.PointsEarned < 0 {
		customer.PointsEarned = 0
	}
	credit := customer.CreditBalance + float64(sign)*eff.credit
	if credit < 0 {
		credit = 0
	}
	customer.CreditBalance = utils.Round2(credit)

	return tx.Model(customer).Updates(map[string]any{
		"points_earned":  customer.PointsEarned,
		"credit_balance": customer.CreditBalance,
	}).Error
}

// DeleteInvoice reverses the invoice's balance effect on its customer, then
// cascade-deletes the line items and the invoice record, all in one
// transaction. Create followed immediately by delete restores points earned
// and credit balance exactly.
func DeleteInvoice(db *gorm.DB, invoiceID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		customer, err := lockCustomer(tx, invoice.CustomerID)
		if err != nil {
			return err
		}

		if err := applyEffect(tx, &customer, invoiceEffect(&invoice), -1); err != nil {
			return err
		}

		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&invoice).Error; err != nil {
			return err
		}

		// The invoice is gone from the fact set now; the full recomputation is
		// the authoritative credit figure (it equals the clamped subtraction
		// above unless payments were recorded in between).
		if _, err := RecomputeCreditBalance(tx, customer.Id); err != nil {
			return err
		}
		_, err = ProjectCustomer(tx, customer.Id)
		return err
	})
}
