package controllers

import (
	"strconv"

	"loyalty-backend/database"
	"loyalty-backend/engine"
	"loyalty-backend/middlewares"
	"loyalty-backend/models"

	"github.com/gofiber/fiber/v2"
)

type RedemptionInput struct {
	CustomerID uint                         `json:"customer_id" validate:"required"`
	Items      []engine.RedemptionItemInput `json:"items"`
}

type RedemptionUpdateInput struct {
	Items []engine.RedemptionItemInput `json:"items"`
}

// CreateRedemption submits a redemption through the eligibility gate. Each
// failing precondition is surfaced to the caller as its own distinct reason.
func CreateRedemption(c *fiber.Ctx) error {
	var input RedemptionInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	redemption, err := engine.CreateRedemption(tenantDB, input.CustomerID, input.Items)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(redemption)
}

func GetRedemptions(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	query := tenantDB.Model(&models.Redemption{}).Preload("Items")
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var redemptions []models.Redemption
	query.Order("created_at DESC").Find(&redemptions)
	return c.JSON(fiber.Map{
		"redemptions": redemptions,
		"message":     "success",
	})
}

func GetRedemption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid redemption id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var redemption models.Redemption
	if err := tenantDB.Preload("Items").First(&redemption, id).Error; err != nil {
		return engine.ErrRedemptionNotFound
	}
	return c.JSON(redemption)
}

func UpdateRedemption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid redemption id")
	}

	var input RedemptionUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	redemption, err := engine.UpdateRedemption(tenantDB, uint(id), input.Items)
	if err != nil {
		return err
	}
	return c.JSON(redemption)
}

func DeleteRedemption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid redemption id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	if err := engine.DeleteRedemption(tenantDB, uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
