package engine

import "errors"

// Validation errors are detected before any mutation; the operation fails with
// no partial state change and the message is surfaced verbatim to the caller.
var (
	ErrNoCustomer           = errors.New("no customer selected")
	ErrNoInvoiceItems       = errors.New("invoice requires at least one item")
	ErrEmptyItems           = errors.New("redemption requires at least one item")
	ErrInsufficientPoints   = errors.New("insufficient points for redemption")
	ErrUnsettledInvoices    = errors.New("customer has unpaid or overdue invoices")
	ErrInvalidAmount        = errors.New("payment amount must be greater than zero")
	ErrInvalidPaymentType   = errors.New("payment type must be PAYMENT or REFUND")
	ErrInvalidPaymentMethod = errors.New("payment method must be CASH or CREDIT")
	ErrInvalidQuantity      = errors.New("item quantity must be greater than zero")
	ErrAdjustmentOutOfRange = errors.New("adjustment would drive a points counter negative")
)

// Referential errors: a record the operation depends on is missing.
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrRedemptionNotFound = errors.New("redemption not found")
)

// IsValidationError reports whether err belongs to the validation taxonomy.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNoCustomer, ErrNoInvoiceItems, ErrEmptyItems, ErrInsufficientPoints,
		ErrUnsettledInvoices, ErrInvalidAmount, ErrInvalidPaymentType,
		ErrInvalidPaymentMethod, ErrInvalidQuantity, ErrAdjustmentOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err belongs to the referential taxonomy.
func IsNotFoundError(err error) bool {
	for _, target := range []error{
		ErrCustomerNotFound, ErrProductNotFound, ErrInvoiceNotFound,
		ErrPaymentNotFound, ErrRedemptionNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
