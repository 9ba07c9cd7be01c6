// Package engine keeps a customer's derived balance fields (points earned,
// points redeemed, current points, outstanding credit) correct and reversible
// as invoices, payments and redemptions are created, edited and deleted.
//
// Every public mutation runs its full recomputation chain inside a single
// GORM transaction, so concurrent operations on the same customer cannot
// interleave into an inconsistent snapshot. When a caller already holds a
// transaction (e.g. the per-request tenant TX), GORM nests via savepoints.
package engine

import "loyalty-backend/models"

// AccruePoints returns the total points earned for a set of invoice line
// items: sum of points-per-unit times quantity.
func AccruePoints(items []models.InvoiceItem) int {
	total := 0
	for _, item := range items {
		total += item.PointsPerUnit * item.Quantity
	}
	return total
}

// CountCategories returns the number of distinct product categories among the
// items.
func CountCategories(items []models.InvoiceItem) int {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[item.Category] = struct{}{}
	}
	return len(seen)
}

// DiversityMultiplier maps a distinct-category count to the incentive
// fraction shown to the user: 0, 0.25, 0.5, 0.75, capped at 1.0 for four or
// more categories.
//
// The multiplier is display-only. It never scales accrued points; AccruePoints
// is the sole accrual rule.
func DiversityMultiplier(categoriesCount int) float64 {
	switch {
	case categoriesCount <= 0:
		return 0
	case categoriesCount >= 4:
		return 1.0
	default:
		return float64(categoriesCount) * 0.25
	}
}
