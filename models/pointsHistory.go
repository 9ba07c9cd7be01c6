package models

import "time"

// PointsHistory is an append-only audit row for manual point adjustments.
// It is consumed for reporting; the engine only requires that an adjustment
// was applied exactly once to the customer before projection.
type PointsHistory struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CustomerID     uint      `json:"customer_id" gorm:"not null;index"`
	EarnedDelta    int       `json:"earned_delta"`
	RedeemedDelta  int       `json:"redeemed_delta"`
	Reason         string    `json:"reason"`
	AdjustedByUser string    `json:"adjusted_by_user" gorm:"size:128"`
	CreatedAt      time.Time `json:"created_at"`
}
