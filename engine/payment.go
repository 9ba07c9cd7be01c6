package engine

import (
	"errors"
	"time"

	"loyalty-backend/models"

	"gorm.io/gorm"
)

type PaymentInput struct {
	Amount    float64            `json:"amount" validate:"required,gt=0"`
	Type      models.PaymentType `json:"type" validate:"required,oneof=PAYMENT REFUND"`
	Method    string             `json:"method"`
	Reference string             `json:"reference"`
	Note      string             `json:"note"`
	PaidAt    *time.Time         `json:"paid_at"`
}

func validatePaymentInput(in PaymentInput) error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if in.Type != models.PaymentTypePayment && in.Type != models.PaymentTypeRefund {
		return ErrInvalidPaymentType
	}
	return nil
}

// RecordPayment inserts a payment against an invoice and runs the full
// recomputation chain (status, credit, snapshot) in the same transaction.
func RecordPayment(db *gorm.DB, invoiceID uint, in PaymentInput) (models.Payment, error) {
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := validatePaymentInput(in); err != nil {
			return err
		}

		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		if _, err := lockCustomer(tx, invoice.CustomerID); err != nil {
			return err
		}

		payment = models.Payment{
			CustomerID: invoice.CustomerID,
			InvoiceID:  &invoice.ID,
			Amount:     in.Amount,
			Type:       in.Type,
			Method:     in.Method,
			Reference:  in.Reference,
			Note:       in.Note,
			PaidAt:     paidAtOrNow(in.PaidAt),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return settleAfterPaymentChange(tx, invoice.CustomerID, &invoice.ID)
	})
	return payment, err
}

// RecordCustomerPayment inserts an on-account payment that is not linked to
// any invoice. It cannot move an invoice status, but the customer snapshot is
// still reprojected.
func RecordCustomerPayment(db *gorm.DB, customerID uint, in PaymentInput) (models.Payment, error) {
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := validatePaymentInput(in); err != nil {
			return err
		}

		customer, err := lockCustomer(tx, customerID)
		if err != nil {
			return err
		}

		payment = models.Payment{
			CustomerID: customer.Id,
			Amount:     in.Amount,
			Type:       in.Type,
			Method:     in.Method,
			Reference:  in.Reference,
			Note:       in.Note,
			PaidAt:     paidAtOrNow(in.PaidAt),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return settleAfterPaymentChange(tx, customer.Id, nil)
	})
	return payment, err
}

// UpdatePayment edits a recorded payment. Relinking to another invoice is not
// supported; amount, type and metadata can change, and the chain reruns for
// the payment's invoice.
func UpdatePayment(db *gorm.DB, paymentID uint, in PaymentInput) (models.Payment, error) {
	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := validatePaymentInput(in); err != nil {
			return err
		}

		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if _, err := lockCustomer(tx, payment.CustomerID); err != nil {
			return err
		}

		payment.Amount = in.Amount
		payment.Type = in.Type
		payment.Method = in.Method
		payment.Reference = in.Reference
		payment.Note = in.Note
		if in.PaidAt != nil {
			payment.PaidAt = in.PaidAt.UTC()
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		return settleAfterPaymentChange(tx, payment.CustomerID, payment.InvoiceID)
	})
	return payment, err
}

// DeletePayment removes a payment and reruns the chain; the invoice status
// can move backwards (PAID to PARTIALLY_PAID or UNPAID) as a result.
func DeletePayment(db *gorm.DB, paymentID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if _, err := lockCustomer(tx, payment.CustomerID); err != nil {
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		return settleAfterPaymentChange(tx, payment.CustomerID, payment.InvoiceID)
	})
}

// settleAfterPaymentChange is the recomputation chain for one payment
// mutation: refresh the invoice status (when linked), rebuild the customer's
// credit balance from scratch, then write the projected snapshot. It must run
// in the same transaction as the mutation itself.
func settleAfterPaymentChange(tx *gorm.DB, customerID uint, invoiceID *uint) error {
	if invoiceID != nil {
		if _, err := RefreshInvoiceStatus(tx, *invoiceID, time.Now().UTC()); err != nil {
			return err
		}
	}
	if _, err := RecomputeCreditBalance(tx, customerID); err != nil {
		return err
	}
	_, err := ProjectCustomer(tx, customerID)
	return err
}

func paidAtOrNow(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
