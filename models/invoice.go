package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

// Unsettled reports whether the status still carries an outstanding amount.
func (s InvoiceStatus) Unsettled() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPartiallyPaid || s == InvoiceStatusOverdue
}

// Invoice is the current/live state of a sale. Status is never authoritative
// on its own: it is a function of the invoice's full payment history and is
// recomputed from scratch after every payment mutation.
type Invoice struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	CustomerID uint     `json:"customer_id" gorm:"not null;index"`
	Customer   Customer `json:"customer" gorm:"foreignKey:CustomerID;references:Id"`

	Items       []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	TotalAmount float64       `json:"total_amount" gorm:"type:numeric(12,2)"`

	// Loyalty rollups computed at creation.
	CategoriesCount int `json:"categories_count"`
	PointsEarned    int `json:"points_earned"`
	PointsRedeemed  int `json:"points_redeemed"`

	Status        InvoiceStatus `json:"status" gorm:"type:VARCHAR(20);index"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:VARCHAR(10)"`
	DueDate       *time.Time    `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
}

type InvoiceItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	InvoiceID uint    `json:"-" gorm:"index"`
	ProductID string  `json:"product_id" gorm:"not null;index"` // FK to products.id (see migrator)
	Product   Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	PointsPerUnit int     `json:"points_per_unit"`
	LineTotal     float64 `json:"line_total" gorm:"type:numeric(12,2)"`
}
