package engine

import (
	"encoding/json"
	"errors"

	"loyalty-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateRedemption runs the eligibility gate, persists the redemption and
// charges the points against the customer, all in one transaction.
func CreateRedemption(db *gorm.DB, customerID uint, items []RedemptionItemInput) (models.Redemption, error) {
	var redemption models.Redemption
	err := db.Transaction(func(tx *gorm.DB) error {
		recItems, total, err := evaluateRedemption(tx, customerID, items)
		if err != nil {
			return err
		}

		snapshot, err := itemSnapshot(recItems)
		if err != nil {
			return err
		}

		redemption = models.Redemption{
			CustomerID:          customerID,
			Items:               recItems,
			TotalPointsRedeemed: total,
			Status:              models.RedemptionStatusCompleted,
			Snapshot:            snapshot,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}

		if err := applyRedeemedDelta(tx, customerID, total); err != nil {
			return err
		}
		_, err = ProjectCustomer(tx, customerID)
		return err
	})
	return redemption, err
}

// UpdateRedemption replaces the item list of an existing redemption. The
// points already held by the redemption are handed back before validating the
// new total: the effective available balance is current points plus the old
// total, and the edit is rejected when the total's increase exceeds it.
func UpdateRedemption(db *gorm.DB, redemptionID uint, items []RedemptionItemInput) (models.Redemption, error) {
	var redemption models.Redemption
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&redemption, redemptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRedemptionNotFound
			}
			return err
		}

		customer, err := lockCustomer(tx, redemption.CustomerID)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			return ErrEmptyItems
		}

		newItems, newTotal, err := buildRedemptionItems(tx, items)
		if err != nil {
			return err
		}

		oldTotal := redemption.TotalPointsRedeemed
		diff := newTotal - oldTotal
		effectiveAvailable := customer.CurrentPoints + oldTotal
		if diff > effectiveAvailable {
			return ErrInsufficientPoints
		}

		if err := tx.Where("redemption_id = ?", redemption.ID).
			Delete(&models.RedemptionItem{}).Error; err != nil {
			return err
		}
		for i := range newItems {
			newItems[i].RedemptionID = redemption.ID
		}
		if err := tx.Create(&newItems).Error; err != nil {
			return err
		}

		snapshot, err := itemSnapshot(newItems)
		if err != nil {
			return err
		}
		redemption.Items = newItems
		redemption.TotalPointsRedeemed = newTotal
		redemption.Snapshot = snapshot
		if err := tx.Model(&redemption).Updates(map[string]any{
			"total_points_redeemed": newTotal,
			"snapshot":              snapshot,
		}).Error; err != nil {
			return err
		}

		if err := applyRedeemedDelta(tx, customer.Id, diff); err != nil {
			return err
		}
		_, err = ProjectCustomer(tx, customer.Id)
		return err
	})
	return redemption, err
}

// DeleteRedemption restores the redeemed points to the customer,
// cascade-deletes the item records and removes the redemption itself.
func DeleteRedemption(db *gorm.DB, redemptionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var redemption models.Redemption
		if err := tx.First(&redemption, redemptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRedemptionNotFound
			}
			return err
		}

		if _, err := lockCustomer(tx, redemption.CustomerID); err != nil {
			return err
		}

		if err := applyRedeemedDelta(tx, redemption.CustomerID, -redemption.TotalPointsRedeemed); err != nil {
			return err
		}

		if err := tx.Where("redemption_id = ?", redemption.ID).
			Delete(&models.RedemptionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&redemption).Error; err != nil {
			return err
		}

		_, err := ProjectCustomer(tx, redemption.CustomerID)
		return err
	})
}

func applyRedeemedDelta(tx *gorm.DB, customerID uint, delta int) error {
	return tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Update("points_redeemed", gorm.Expr("points_redeemed + ?", delta)).Error
}

func itemSnapshot(items []models.RedemptionItem) (datatypes.JSON, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
