package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Category    string  `json:"category" gorm:"not null;index"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	// PointsPerUnit is accrued per unit sold; PointsRequired is the redemption
	// cost per unit.
	PointsPerUnit  int  `json:"points_per_unit"`
	PointsRequired int  `json:"points_required"`
	Active         bool `json:"-"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}
