package engine

import (
	"testing"

	"loyalty-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestAccruePoints(t *testing.T) {
	items := []models.InvoiceItem{
		{PointsPerUnit: 10, Quantity: 3},
		{PointsPerUnit: 5, Quantity: 2},
		{PointsPerUnit: 0, Quantity: 7},
	}
	assert.Equal(t, 40, AccruePoints(items))
	assert.Equal(t, 0, AccruePoints(nil))
}

func TestCountCategories(t *testing.T) {
	items := []models.InvoiceItem{
		{Category: "drinks"},
		{Category: "snacks"},
		{Category: "drinks"},
		{Category: "bakery"},
	}
	assert.Equal(t, 3, CountCategories(items))
	assert.Equal(t, 0, CountCategories(nil))
}

func TestDiversityMultiplier(t *testing.T) {
	cases := []struct {
		categories int
		want       float64
	}{
		{0, 0},
		{1, 0.25},
		{2, 0.5},
		{3, 0.75},
		{4, 1.0},
		{9, 1.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DiversityMultiplier(tc.categories), "categories=%d", tc.categories)
	}
}

// The multiplier is an incentive label only. Accrual must stay the plain sum
// of per-unit points regardless of how many categories the invoice spans.
func TestDiversityMultiplierDoesNotScaleAccrual(t *testing.T) {
	items := []models.InvoiceItem{
		{Category: "a", PointsPerUnit: 10, Quantity: 1},
		{Category: "b", PointsPerUnit: 10, Quantity: 1},
		{Category: "c", PointsPerUnit: 10, Quantity: 1},
		{Category: "d", PointsPerUnit: 10, Quantity: 1},
	}
	assert.Equal(t, 1.0, DiversityMultiplier(CountCategories(items)))
	assert.Equal(t, 40, AccruePoints(items))
}
