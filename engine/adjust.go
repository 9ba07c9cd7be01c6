package engine

import (
	"loyalty-backend/models"

	"gorm.io/gorm"
)

type PointsAdjustmentInput struct {
	EarnedDelta   int    `json:"earned_delta"`
	RedeemedDelta int    `json:"redeemed_delta"`
	Reason        string `json:"reason" validate:"required"`
	AdjustedBy    string `json:"-"`
}

// AdjustPoints applies a manual point adjustment exactly once to the customer
// and records the append-only audit row, then reprojects the snapshot. The
// audit row is what lets RecomputeFromFacts reproduce manually adjusted
// balances, so an adjustment that would drive either counter negative is
// rejected outright: a clamped write would record a delta that was never
// fully applied and the replay could no longer match.
func AdjustPoints(db *gorm.DB, customerID uint, in PointsAdjustmentInput) (models.Customer, error) {
	var customer models.Customer
	err := db.Transaction(func(tx *gorm.DB) error {
		if customerID == 0 {
			return ErrNoCustomer
		}
		locked, err := lockCustomer(tx, customerID)
		if err != nil {
			return err
		}
		customer = locked

		newEarned := customer.PointsEarned + in.EarnedDelta
		newRedeemed := customer.PointsRedeemed + in.RedeemedDelta
		if newEarned < 0 || newRedeemed < 0 {
			return ErrAdjustmentOutOfRange
		}
		customer.PointsEarned = newEarned
		customer.PointsRedeemed = newRedeemed

		if err := tx.Model(&customer).Updates(map[string]any{
			"points_earned":   customer.PointsEarned,
			"points_redeemed": customer.PointsRedeemed,
		}).Error; err != nil {
			return err
		}

		history := models.PointsHistory{
			CustomerID:     customer.Id,
			EarnedDelta:    in.EarnedDelta,
			RedeemedDelta:  in.RedeemedDelta,
			Reason:         in.Reason,
			AdjustedByUser: in.AdjustedBy,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		projected, err := ProjectCustomer(tx, customer.Id)
		if err != nil {
			return err
		}
		customer = projected
		return nil
	})
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}
