package models

import "time"

type PaymentType string

const (
	PaymentTypePayment PaymentType = "PAYMENT"
	PaymentTypeRefund  PaymentType = "REFUND"
)

// Payment is a recorded fact against a customer, optionally linked to an
// invoice. A REFUND contributes its amount negatively wherever payments are
// summed.
type Payment struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	CustomerID uint        `json:"customer_id" gorm:"not null;index"`
	InvoiceID  *uint       `json:"invoice_id" gorm:"index:idx_payments_invoice_paid_at,priority:1"`
	Amount     float64     `json:"amount" gorm:"type:numeric(12,2)"`
	Type       PaymentType `json:"type" gorm:"type:VARCHAR(10)"`
	Method     string      `json:"method"`
	Reference  string      `json:"reference"`
	Note       string      `json:"note"`
	PaidAt     time.Time   `json:"paid_at" gorm:"index:idx_payments_invoice_paid_at,priority:2"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SignedAmount is +amount for PAYMENT and -amount for REFUND.
func (p Payment) SignedAmount() float64 {
	if p.Type == PaymentTypeRefund {
		return -p.Amount
	}
	return p.Amount
}
