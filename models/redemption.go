package models

import (
	"time"

	"gorm.io/datatypes"
)

type RedemptionStatus string

const (
	RedemptionStatusCompleted RedemptionStatus = "COMPLETED"
	RedemptionStatusPending   RedemptionStatus = "PENDING"
	RedemptionStatusCancelled RedemptionStatus = "CANCELLED"
)

type Redemption struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	CustomerID uint     `json:"customer_id" gorm:"not null;index"`
	Customer   Customer `json:"-" gorm:"foreignKey:CustomerID;references:Id"`

	Items               []RedemptionItem `json:"items" gorm:"foreignKey:RedemptionID;constraint:OnDelete:CASCADE"`
	TotalPointsRedeemed int              `json:"total_points_redeemed"`
	Status              RedemptionStatus `json:"status" gorm:"type:VARCHAR(20)"`

	// Snapshot of the item list at the last mutation, kept for auditing.
	Snapshot datatypes.JSON `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RedemptionItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	RedemptionID uint    `json:"-" gorm:"index"`
	ProductID    string  `json:"product_id" gorm:"not null;index"`
	Product      Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	Quantity            int `json:"quantity"`
	PointsRequired      int `json:"points_required"`       // per unit
	TotalPointsRequired int `json:"total_points_required"` // points_required * quantity
}
