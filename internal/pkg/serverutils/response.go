package serverutils

import (
	"errors"

	"ai-helpdesk-be/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type ResponseEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) ResponseEnvelope {
	return ResponseEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

// ErrorHandlerMiddleware converts domain errors bubbling out of controllers
// into JSON envelopes with the right status code.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs validator.ValidationErrors
		var denied *dto.AccessDeniedError

		switch {
		case errors.As(err, &validationErrs):
			return ctx.Status(fiber.StatusBadRequest).JSON(ResponseEnvelope{
				Success: false,
				Message: "Validation failed: " + validationErrs.Error(),
			})
		case errors.As(err, &denied):
			return ctx.Status(fiber.StatusForbidden).JSON(ResponseEnvelope{
				Success: false,
				Message: denied.Reason,
			})
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return ctx.Status(fiberErr.Code).JSON(ResponseEnvelope{
					Success: false,
					Message: fiberErr.Message,
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ResponseEnvelope{
				Success: false,
				Message: "Internal server error",
			})
		}
	}
}
