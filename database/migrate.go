package database

import (
	"fmt"

	"loyalty-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (payments, invoice_items, redemption_items)
// - Foreign keys: invoice_items.product_id / redemption_items.product_id → products.id
// - Basic CHECK constraints on the balance columns
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Product{},
			&models.Customer{},
			&models.Invoice{},
			&models.InvoiceItem{},
			&models.Payment{},
			&models.Redemption{},
			&models.RedemptionItem{},
			&models.PointsHistory{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products       ALTER COLUMN unit_price     TYPE numeric(12,2)`,
			`ALTER TABLE customers      ALTER COLUMN credit_balance TYPE numeric(12,2)`,
			`ALTER TABLE invoices       ALTER COLUMN total_amount   TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items  ALTER COLUMN unit_price     TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items  ALTER COLUMN line_total     TYPE numeric(12,2)`,
			`ALTER TABLE payments       ALTER COLUMN amount         TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_invoice_paid_at ON payments (invoice_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_payments_customer ON payments (customer_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_customer_status ON invoices (customer_id, status)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_redemption_items_redemption ON redemption_items (redemption_id)`,
			`CREATE INDEX IF NOT EXISTS idx_points_histories_customer ON points_histories (customer_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys to the product catalog (RESTRICT/RESTRICT) ---
		fks := []string{
			`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'invoice_items'::regclass
		  AND conname  = 'fk_invoice_items_product'
	) THEN
		ALTER TABLE invoice_items
		ADD CONSTRAINT fk_invoice_items_product
		FOREIGN KEY (product_id)
		REFERENCES products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
			`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'redemption_items'::regclass
		  AND conname  = 'fk_redemption_items_product'
	) THEN
		ALTER TABLE redemption_items
		ADD CONSTRAINT fk_redemption_items_product
		FOREIGN KEY (product_id)
		REFERENCES products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`,
		}
		for _, stmt := range fks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed: %w", err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Earned/redeemed counters never negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'customers'::regclass
					  AND conname  = 'chk_customers_points_nonneg'
				) THEN
					ALTER TABLE customers
					ADD CONSTRAINT chk_customers_points_nonneg
					CHECK (points_earned >= 0 AND points_redeemed >= 0);
				END IF;
			END $$;`,
			// Credit balance clamped at zero by the engine; enforce it here too
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'customers'::regclass
					  AND conname  = 'chk_customers_credit_nonneg'
				) THEN
					ALTER TABLE customers
					ADD CONSTRAINT chk_customers_credit_nonneg
					CHECK (credit_balance >= 0);
				END IF;
			END $$;`,
			// Payments.amount > 0 (sign lives in the type column)
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_pos'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_pos
					CHECK (amount > 0);
				END IF;
			END $$;`,
			// Invoice items: quantity > 0
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'chk_invoice_items_quantity_pos'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT chk_invoice_items_quantity_pos
					CHECK (quantity > 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
