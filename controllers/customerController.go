package controllers

import (
	"strconv"
	"time"

	"loyalty-backend/database"
	"loyalty-backend/engine"
	"loyalty-backend/middlewares"
	"loyalty-backend/models"
	"loyalty-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CustomerInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

// CustomerPatch uses pointer fields so omitted keys stay untouched.
type CustomerPatch struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
}

func CreateCustomer(c *fiber.Ctx) error {
	var input CustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	customer := models.Customer{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		City:        input.City,
		Active:      true,
	}

	if err := tenantDB.Create(&customer).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(customer)
}

func UpdateCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	var patch CustomerPatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&patch)

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	var customer models.Customer
	if err := tenantDB.First(&customer, id).Error; err != nil {
		return engine.ErrCustomerNotFound
	}
	if err := tenantDB.Model(&customer).Updates(updates).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var customers []models.Customer
	tenantDB.Model(&models.Customer{}).Find(&customers)
	return c.JSON(fiber.Map{
		"customers": customers,
		"message":   "success",
	})
}

func GetCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var customer models.Customer
	if err := tenantDB.First(&customer, id).Error; err != nil {
		return engine.ErrCustomerNotFound
	}
	return c.JSON(customer)
}

// GetCustomerBalance returns the stored snapshot next to a fresh
// recomputation from the fact set, so any drift between the two is visible
// to the caller instead of hidden.
func GetCustomerBalance(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var customer models.Customer
	if err := tenantDB.First(&customer, id).Error; err != nil {
		return engine.ErrCustomerNotFound
	}

	recomputed, err := engine.RecomputeFromFacts(tenantDB, customer.Id, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"snapshot": engine.Snapshot{
			PointsEarned:   customer.PointsEarned,
			PointsRedeemed: customer.PointsRedeemed,
			CurrentPoints:  customer.CurrentPoints,
			CreditBalance:  customer.CreditBalance,
		},
		"recomputed": recomputed,
	})
}

// AdjustCustomerPoints applies a manual point adjustment and records the
// audit row.
func AdjustCustomerPoints(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid customer id")
	}

	var input engine.PointsAdjustmentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)
	input.AdjustedBy = userID

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	customer, err := engine.AdjustPoints(tenantDB, uint(id), input)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}
