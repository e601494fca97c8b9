package controllers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay-backend/models"
	"quickpay-backend/utils"
)

func (ctl *Controllers) GetNotifications(c *fiber.Ctx) error {
	var notifications []models.Notification
	if err := ctl.DB.Order("timestamp desc").Find(&notifications).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"message":       "success",
	})
}

func (ctl *Controllers) MarkNotificationRead(c *fiber.Ctx) error {
	res := ctl.DB.Model(&models.Notification{}).
		Where("id = ?", c.Params("id")).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &utils.NotFoundError{Resource: "notification", ID: c.Params("id")}
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (ctl *Controllers) ClearNotifications(c *fiber.Ctx) error {
	if err := ctl.DB.Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
