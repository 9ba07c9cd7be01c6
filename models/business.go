package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the tenant: one loyalty program operator with its own schema.
type Business struct {
	Id         string `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;unique"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Zip        string `json:"zip"`
	UserId     string `json:"-"`
	User       User   `json:"user" gorm:"foreignKey:UserId;references:Id"`
	SchemaName string `json:"-"`
}

func (business *Business) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	business.Id = uuid.NewString()
	return
}
