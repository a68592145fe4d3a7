package serverutils

import (
	"errors"

	"insight-center-be/internal/repository/contract"
	"insight-center-be/pkg/navigation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns handler errors into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error()
	}

	switch {
	case errors.Is(err, navigation.ErrInvalidInput):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, navigation.ErrDataUnavailable), errors.Is(err, contract.ErrSessionStoreUnavailable):
		return fiber.StatusServiceUnavailable, err.Error()
	}

	return fiber.StatusInternalServerError, err.Error()
}
