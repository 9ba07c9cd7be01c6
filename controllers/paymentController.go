package controllers

import (
	"strconv"

	"loyalty-backend/database"
	"loyalty-backend/engine"
	"loyalty-backend/middlewares"
	"loyalty-backend/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePayment records a payment against an invoice. Status, credit balance
// and the customer snapshot are recomputed in the same transaction.
func CreatePayment(c *fiber.Ctx) error {
	invoiceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	var input engine.PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	payment, err := engine.RecordPayment(tenantDB, uint(invoiceID), input)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(payment)
}

// CreateCustomerPayment records an on-account payment with no invoice link.
func CreateCustomerPayment(c *fiber.Ctx) error {
	customerID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	var input engine.PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	payment, err := engine.RecordCustomerPayment(tenantDB, uint(customerID), input)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(payment)
}

func ListPayments(c *fiber.Ctx) error {
	invoiceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var payments []models.Payment
	tenantDB.Where("invoice_id = ?", invoiceID).Order("paid_at").Find(&payments)
	return c.JSON(fiber.Map{
		"payments": payments,
		"message":  "success",
	})
}

func UpdatePayment(c *fiber.Ctx) error {
	paymentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	var input engine.PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	payment, err := engine.UpdatePayment(tenantDB, uint(paymentID), input)
	if err != nil {
		return err
	}
	return c.JSON(payment)
}

func DeletePayment(c *fiber.Ctx) error {
	paymentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	if err := engine.DeletePayment(tenantDB, uint(paymentID)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
