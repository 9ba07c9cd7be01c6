package controllers

import (
	"fmt"

	"loyalty-backend/database"
	"loyalty-backend/middlewares"
	"loyalty-backend/models"
	"loyalty-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductInput struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	Category       string  `json:"category" validate:"required"`
	UnitPrice      float64 `json:"unit_price" validate:"gte=0"`
	PointsPerUnit  int     `json:"points_per_unit" validate:"gte=0"`
	PointsRequired int     `json:"points_required" validate:"gte=0"`
}

type ProductPatch struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	UnitPrice      *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	PointsPerUnit  *int     `json:"points_per_unit" validate:"omitempty,gte=0"`
	PointsRequired *int     `json:"points_required" validate:"omitempty,gte=0"`
}

func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no products supplied")
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var created []models.Product
	for i := range inputs {
		// Slices need per-element validation (see BindAndValidate note).
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		product := models.Product{
			Name:           inputs[i].Name,
			Description:    inputs[i].Description,
			Category:       inputs[i].Category,
			UnitPrice:      inputs[i].UnitPrice,
			PointsPerUnit:  inputs[i].PointsPerUnit,
			PointsRequired: inputs[i].PointsRequired,
			Active:         true,
		}
		if err := tenantDB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError,
				fmt.Sprintf("could not create product at index %d", i))
		}
		created = append(created, product)
	}

	return c.Status(201).JSON(created)
}

func GetProducts(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}

	var products []models.Product
	tenantDB.Model(&models.Product{}).Find(&products)
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch ProductPatch
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

	var product models.Product
	if err := tenantDB.Where("id = ?", id).First(&product).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	if err := tenantDB.Model(&product).Updates(updates).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}
