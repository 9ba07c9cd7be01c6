package controllers

import (
	"strconv"

	"loyalty-backend/database"
	"loyalty-backend/engine"
	"loyalty-backend/middlewares"
	"loyalty-backend/models"
	"loyalty-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateInvoice(c *fiber.Ctx) error {
	var input engine.CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	invoice, err := engine.CreateInvoice(tenantDB, input)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"invoice": invoice,
		// Display-only incentive signal tied to the distinct category count.
		"diversity_multiplier": engine.DiversityMultiplier(invoice.CategoriesCount),
	})
}

func GetInvoices(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	query := tenantDB.Model(&models.Invoice{}).Preload("Items")
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 100)

	var invoices []models.Invoice
	query.Order("created_at DESC").Limit(limit).Find(&invoices)
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var invoice models.Invoice
	if err := tenantDB.Preload("Items").Preload("Customer").First(&invoice, id).Error; err != nil {
		return engine.ErrInvoiceNotFound
	}

	return c.JSON(fiber.Map{
		"invoice":              invoice,
		"diversity_multiplier": engine.DiversityMultiplier(invoice.CategoriesCount),
	})
}

// DeleteInvoice reverses the invoice's effect on the customer balance before
// removing the record; see engine.DeleteInvoice.
func DeleteInvoice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	if err := engine.DeleteInvoice(tenantDB, uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
