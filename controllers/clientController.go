package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quickpay-backend/middlewares"
	"quickpay-backend/models"
	"quickpay-backend/utils"
)

type clientDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type clientPatchDTO struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// clientWithStats augments a client with the invoice-count rollup derived
// from the collection.
type clientWithStats struct {
	models.Client
	TotalInvoices int64 `json:"totalInvoices"`
}

func (ctl *Controllers) CreateClient(c *fiber.Ctx) error {
	var dto clientDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	client := models.Client{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Address: dto.Address,
		Active:  true,
	}

	tx := ctl.DB.Begin()
	if err := tx.Create(&client).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create client",
			"error":   err.Error(),
		})
	}
	tx.Commit()
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (ctl *Controllers) GetClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := ctl.DB.Order("id").Find(&clients).Error; err != nil {
		return err
	}

	out := make([]clientWithStats, 0, len(clients))
	for _, client := range clients {
		var count int64
		ctl.DB.Model(&models.Invoice{}).Where("client = ?", client.Name).Count(&count)
		out = append(out, clientWithStats{Client: client, TotalInvoices: count})
	}
	return c.JSON(fiber.Map{
		"clients": out,
		"message": "success",
	})
}

func (ctl *Controllers) GetClient(c *fiber.Ctx) error {
	var client models.Client
	if err := ctl.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "client", ID: c.Params("id")}
		}
		return err
	}

	var count int64
	ctl.DB.Model(&models.Invoice{}).Where("client = ?", client.Name).Count(&count)
	return c.JSON(clientWithStats{Client: client, TotalInvoices: count})
}

func (ctl *Controllers) UpdateClient(c *fiber.Ctx) error {
	var dto clientPatchDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(fiber.Map{"message": "nothing to update"})
	}

	tx := ctl.DB.Begin()
	res := tx.Model(&models.Client{}).Where("id = ?", c.Params("id")).Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update client",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return &utils.NotFoundError{Resource: "client", ID: c.Params("id")}
	}
	tx.Commit()

	var client models.Client
	ctl.DB.First(&client, "id = ?", c.Params("id"))
	return c.JSON(client)
}
