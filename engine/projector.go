package engine

import (
	"errors"
	"time"

	"loyalty-backend/models"
	"loyalty-backend/utils"

	"gorm.io/gorm"
)

// ProjectCustomer writes the consolidated balance snapshot after a mutation:
// current points are re-derived from the earned/redeemed counters and the
// customer's last-active timestamp is bumped. The customer row is the single
// source of truth for the four balance fields once this returns.
func ProjectCustomer(tx *gorm.DB, customerID uint) (models.Customer, error) {
	var customer models.Customer
	if err := tx.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer, ErrCustomerNotFound
		}
		return customer, err
	}

	now := time.Now().UTC()
	customer.CurrentPoints = customer.PointsEarned - customer.PointsRedeemed
	customer.LastActive = &now

	err := tx.Model(&customer).Updates(map[string]any{
		"current_points": customer.CurrentPoints,
		"last_active":    customer.LastActive,
	}).Error
	return customer, err
}

// Snapshot holds the four derived customer fields.
type Snapshot struct {
	PointsEarned   int     `json:"points_earned"`
	PointsRedeemed int     `json:"points_redeemed"`
	CurrentPoints  int     `json:"current_points"`
	CreditBalance  float64 `json:"credit_balance"`
}

// RecomputeFromFacts rebuilds the snapshot from the full fact set: every
// invoice, payment, redemption and manual adjustment for the customer. At
// rest it must equal the incrementally maintained customer row; that
// equivalence is the engine's primary correctness property and is surfaced by
// the balance endpoint so drift is visible instead of silent.
//
// Statuses are resolved fresh from payment history at `now`, so the credit
// figure does not depend on stored invoice statuses being up to date.
func RecomputeFromFacts(tx *gorm.DB, customerID uint, now time.Time) (Snapshot, error) {
	var snap Snapshot

	var invoices []models.Invoice
	if err := tx.Where("customer_id = ?", customerID).Find(&invoices).Error; err != nil {
		return snap, err
	}

	credit := 0.0
	for _, invoice := range invoices {
		snap.PointsEarned += invoice.PointsEarned

		payments, err := paymentsForInvoice(tx, invoice.ID)
		if err != nil {
			return snap, err
		}
		if ResolveStatus(&invoice, payments, now).Unsettled() {
			credit += Outstanding(invoice, payments)
		}
	}

	var redemptions []models.Redemption
	if err := tx.Where("customer_id = ? AND status <> ?", customerID, models.RedemptionStatusCancelled).
		Find(&redemptions).Error; err != nil {
		return snap, err
	}
	for _, redemption := range redemptions {
		snap.PointsRedeemed += redemption.TotalPointsRedeemed
	}

	// Manual adjustments are facts too; without them the recomputation could
	// never match a manually adjusted customer.
	var history []models.PointsHistory
	if err := tx.Where("customer_id = ?", customerID).Find(&history).Error; err != nil {
		return snap, err
	}
	for _, row := range history {
		snap.PointsEarned += row.EarnedDelta
		snap.PointsRedeemed += row.RedeemedDelta
	}

	if snap.PointsEarned < 0 {
		snap.PointsEarned = 0
	}
	if snap.PointsRedeemed < 0 {
		snap.PointsRedeemed = 0
	}
	snap.CurrentPoints = snap.PointsEarned - snap.PointsRedeemed
	if credit < 0 {
		credit = 0
	}
	snap.CreditBalance = utils.Round2(credit)
	return snap, nil
}
