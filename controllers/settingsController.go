package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quickpay-backend/models"
	"quickpay-backend/utils"
)

type profilePatchDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Avatar    *string `json:"avatar"`
}

func (ctl *Controllers) GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "user", ID: userID}
		}
		return err
	}
	return c.JSON(user)
}

func (ctl *Controllers) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto profilePatchDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(fiber.Map{"message": "nothing to update"})
	}

	res := ctl.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update profile",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return &utils.NotFoundError{Resource: "user", ID: userID}
	}

	var user models.User
	ctl.DB.First(&user, "id = ?", userID)
	return c.JSON(user)
}
