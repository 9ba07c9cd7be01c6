package engine

import (
	"testing"

	"loyalty-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// A dry-run postgres session is enough to inspect the SQL the lock helper
// emits; nothing connects.
func TestForUpdateEmitsRowLockOnPostgres(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=localhost user=loyalty dbname=loyalty"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var customer models.Customer
	stmt := forUpdate(db).Where("id = ?", 1).Find(&customer).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestForUpdateSkipsSQLite(t *testing.T) {
	db := newTestDB(t)

	var customer models.Customer
	stmt := forUpdate(db.Session(&gorm.Session{DryRun: true})).
		Where("id = ?", 1).Find(&customer).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestLockCustomerMissing(t *testing.T) {
	db := newTestDB(t)
	_, err := lockCustomer(db, 42)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
