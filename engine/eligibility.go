package engine

import (
	"errors"

	"loyalty-backend/models"

	"gorm.io/gorm"
)

type RedemptionItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CheckRedemptionEligibility evaluates the gate preconditions for a new
// redemption. Each precondition is checked independently and fails with its
// own distinct error so the caller can surface the exact reason:
//
//  1. a customer must be selected,
//  2. the item list must be non-empty,
//  3. the total points required must not exceed the customer's current points,
//  4. the customer must have no unsettled invoice.
//
// The verdict is never cached: callers re-run the gate on every evaluation.
func CheckRedemptionEligibility(tx *gorm.DB, customerID uint, items []RedemptionItemInput) error {
	_, _, err := evaluateRedemption(tx, customerID, items)
	return err
}

// evaluateRedemption runs the gate and hands back the resolved item list with
// its points total so the caller does not hit the product catalog a second
// time. The customer row stays locked for the rest of the transaction, which
// keeps the points check and the later charge from racing a concurrent
// redemption.
func evaluateRedemption(tx *gorm.DB, customerID uint, items []RedemptionItemInput) ([]models.RedemptionItem, int, error) {
	if customerID == 0 {
		return nil, 0, ErrNoCustomer
	}

	customer, err := lockCustomer(tx, customerID)
	if err != nil {
		return nil, 0, err
	}

	if len(items) == 0 {
		return nil, 0, ErrEmptyItems
	}

	built, required, err := buildRedemptionItems(tx, items)
	if err != nil {
		return nil, 0, err
	}
	if required > customer.CurrentPoints {
		return nil, 0, ErrInsufficientPoints
	}

	var unsettled int64
	if err := tx.Model(&models.Invoice{}).
		Where("customer_id = ? AND status IN ?", customerID, unsettledStatuses).
		Count(&unsettled).Error; err != nil {
		return nil, 0, err
	}
	if unsettled > 0 {
		return nil, 0, ErrUnsettledInvoices
	}

	return built, required, nil
}

// buildRedemptionItems resolves each input against the product catalog and
// returns the items plus the grand total of points required.
func buildRedemptionItems(tx *gorm.DB, inputs []RedemptionItemInput) ([]models.RedemptionItem, int, error) {
	items := make([]models.RedemptionItem, 0, len(inputs))
	total := 0

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, 0, ErrInvalidQuantity
		}

		var product models.Product
		if err := tx.Where("id = ?", in.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrProductNotFound
			}
			return nil, 0, err
		}

		itemTotal := product.PointsRequired * in.Quantity
		total += itemTotal

		items = append(items, models.RedemptionItem{
			ProductID:           product.Id,
			Quantity:            in.Quantity,
			PointsRequired:      product.PointsRequired,
			TotalPointsRequired: itemTotal,
		})
	}
	return items, total, nil
}
