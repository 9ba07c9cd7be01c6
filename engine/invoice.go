package engine

import (
	"errors"
	"time"

	"loyalty-backend/models"
	"loyalty-backend/utils"

	"gorm.io/gorm"
)

type InvoiceItemInput struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Description string `json:"description"`
}

type CreateInvoiceInput struct {
	CustomerID    uint                 `json:"customer_id" validate:"required"`
	Items         []InvoiceItemInput   `json:"items" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH CREDIT"`
	DueDate       *time.Time           `json:"due_date"`
}

// CreateInvoice persists the invoice with its loyalty rollups (total, points
// earned, distinct category count) and applies the creation side of the
// balance effect to the customer, all in one transaction.
func CreateInvoice(db *gorm.DB, in CreateInvoiceInput) (models.Invoice, error) {
	var invoice models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.CustomerID == 0 {
			return ErrNoCustomer
		}
		if len(in.Items) == 0 {
			return ErrNoInvoiceItems
		}
		if in.PaymentMethod != models.PaymentMethodCash && in.PaymentMethod != models.PaymentMethodCredit {
			return ErrInvalidPaymentMethod
		}

		customer, err := lockCustomer(tx, in.CustomerID)
		if err != nil {
			return err
		}

		items, totalAmount, err := buildInvoiceItems(tx, in.Items)
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			CustomerID:      customer.Id,
			Items:           items,
			TotalAmount:     totalAmount,
			CategoriesCount: CountCategories(items),
			PointsEarned:    AccruePoints(items),
			PaymentMethod:   in.PaymentMethod,
			DueDate:         in.DueDate,
		}
		invoice.Status = ResolveStatus(&invoice, nil, time.Now().UTC())

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		if err := applyEffect(tx, &customer, invoiceEffect(&invoice), +1); err != nil {
			return err
		}
		if _, err := RecomputeCreditBalance(tx, customer.Id); err != nil {
			return err
		}
		_, err = ProjectCustomer(tx, customer.Id)
		return err
	})
	return invoice, err
}

// buildInvoiceItems resolves each input against the product catalog and
// prices the line.
func buildInvoiceItems(tx *gorm.DB, inputs []InvoiceItemInput) ([]models.InvoiceItem, float64, error) {
	items := make([]models.InvoiceItem, 0, len(inputs))
	total := 0.0

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, 0, ErrInvalidQuantity
		}

		var product models.Product
		if err := tx.Where("id = ?", in.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrProductNotFound
			}
			return nil, 0, err
		}

		lineTotal := utils.Round2(product.UnitPrice * float64(in.Quantity))
		total += lineTotal

		description := in.Description
		if description == "" {
			description = product.Name
		}

		items = append(items, models.InvoiceItem{
			ProductID:     product.Id,
			Description:   description,
			Category:      product.Category,
			Quantity:      in.Quantity,
			UnitPrice:     product.UnitPrice,
			PointsPerUnit: product.PointsPerUnit,
			LineTotal:     lineTotal,
		})
	}
	return items, utils.Round2(total), nil
}
