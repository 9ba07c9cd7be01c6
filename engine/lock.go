package engine

import (
	"errors"

	"loyalty-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row-level lock to the query on dialects that support it.
// SQLite has no FOR UPDATE syntax and allows only one writer at a time, so
// the clause is skipped there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockCustomer loads the customer row under FOR UPDATE. Every engine mutation
// starts here so two operations on the same customer serialize on the row
// instead of interleaving their read-modify-write steps.
func lockCustomer(tx *gorm.DB, customerID uint) (models.Customer, error) {
	var customer models.Customer
	if err := forUpdate(tx).First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer, ErrCustomerNotFound
		}
		return customer, err
	}
	return customer, nil
}
