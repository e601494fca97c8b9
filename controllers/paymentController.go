package controllers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay-backend/middlewares"
	"quickpay-backend/payments"
)

// PayInvoice triggers the payment initiation flow for one invoice.
func (ctl *Controllers) PayInvoice(c *fiber.Ctx) error {
	resp, err := ctl.Store.ProcessPayment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StkPush is the standalone mock STK endpoint: it validates the input and
// returns a canned Daraja acknowledgement. No real transaction happens.
func (ctl *Controllers) StkPush(c *fiber.Ctx) error {
	var req payments.STKPushRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" || req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Phone number and amount are required",
		})
	}
	if err := middlewares.ValidateStruct(&req); err != nil {
		return err
	}

	gateway := &payments.MockGateway{}
	resp, err := gateway.InitiateSTKPush(c.Context(), req)
	if err != nil {
		return err
	}
	ctl.log.Info().Str("phone", req.Phone).Float64("amount", req.Amount).Msg("mock stk push accepted")
	return c.JSON(resp)
}

type paymentCallbackDTO struct {
	InvoiceID string `json:"invoiceId" validate:"required"`
	Reference string `json:"reference"`
}

// PaymentCallback is the out-of-band confirmation from the provider that
// funds were received; it completes pending_payment -> paid.
func (ctl *Controllers) PaymentCallback(c *fiber.Ctx) error {
	var cb paymentCallbackDTO
	if err := middlewares.BindAndValidate(c, &cb); err != nil {
		return err
	}

	invoice, err := ctl.Store.ConfirmPayment(cb.InvoiceID)
	if err != nil {
		return err
	}
	ctl.log.Info().Str("invoice", cb.InvoiceID).Str("reference", cb.Reference).Msg("payment callback processed")
	return c.JSON(invoice)
}
