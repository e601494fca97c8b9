package controllers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay-backend/middlewares"
	"quickpay-backend/store"
	"quickpay-backend/utils"
)

func (ctl *Controllers) CreateInvoice(c *fiber.Ctx) error {
	var draft store.InvoiceDraft
	if err := middlewares.BindAndValidate(c, &draft); err != nil {
		return err
	}

	invoice, err := ctl.Store.Create(draft)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetInvoices returns one page of the filtered/sorted projection. Query
// params: q (search), status (All/Paid/Pending/Overdue), sort, page.
func (ctl *Controllers) GetInvoices(c *fiber.Ctx) error {
	query := store.ListQuery{
		Search: c.Query("q"),
		Status: c.Query("status", "All"),
		Sort:   c.Query("sort", "date-desc"),
		Page:   utils.ParseIntDefault(c.Query("page"), 0),
	}

	page, err := ctl.Store.List(query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoices":    page.Invoices,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_pages": page.TotalPages,
		"total":       page.Total,
	})
}

func (ctl *Controllers) GetInvoice(c *fiber.Ctx) error {
	invoice, err := ctl.Store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func (ctl *Controllers) UpdateInvoice(c *fiber.Ctx) error {
	var patch store.InvoiceUpdate
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	invoice, err := ctl.Store.Update(c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func (ctl *Controllers) DeleteInvoice(c *fiber.Ctx) error {
	if err := ctl.Store.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// SelectInvoice marks the detail-view target; ClearSelection closes it.
func (ctl *Controllers) SelectInvoice(c *fiber.Ctx) error {
	invoice, err := ctl.Store.SelectByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func (ctl *Controllers) ClearSelection(c *fiber.Ctx) error {
	ctl.Store.ClearSelection()
	return c.JSON(fiber.Map{"message": "success"})
}

func (ctl *Controllers) GetSelectedInvoice(c *fiber.Ctx) error {
	selected := ctl.Store.Selected()
	if selected == nil {
		return c.JSON(fiber.Map{"invoice": nil})
	}
	return c.JSON(fiber.Map{"invoice": selected})
}
