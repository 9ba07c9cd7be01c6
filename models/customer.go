package models

import "time"

// Customer carries the four ledger-style balance fields maintained by the
// engine package. CurrentPoints and CreditBalance are derived: they must be
// recomputable from the customer's invoices, payments and redemptions.
type Customer struct {
	Id             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null"`
	Email          string     `json:"email" gorm:"unique;not null"`
	PhoneNumber    string     `json:"phone_number"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	PointsEarned   int        `json:"points_earned" gorm:"not null;default:0"`
	PointsRedeemed int        `json:"points_redeemed" gorm:"not null;default:0"`
	CurrentPoints  int        `json:"current_points" gorm:"not null;default:0"`
	CreditBalance  float64    `json:"credit_balance" gorm:"type:numeric(12,2);not null;default:0"`
	LastActive     *time.Time `json:"last_active"`
	Active         bool       `json:"-"`
}
