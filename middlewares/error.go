package middlewares

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"quickpay-backend/utils"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Typed errors map to their status: validation 422, not-found 404 (the
// operation was a no-op), remote-call failure 502.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		vErr  *utils.ValidationError
		nfErr *utils.NotFoundError
		rcErr *utils.RemoteCallFailure
	)
	switch {
	case errors.As(err, &vErr):
		body := fiber.Map{"message": vErr.Msg}
		if len(vErr.Fields) > 0 {
			body["errors"] = vErr.Fields
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
	case errors.As(err, &nfErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": nfErr.Error()})
	case errors.As(err, &rcErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": rcErr.Error()})
	}

	// Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// Validation errors from the request binder (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// Unknown errors (500)
	log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
