package serverutils

import (
	"errors"

	"knotpad-be/internal/dto"
	"knotpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"success": false, "message": ...}.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	if failure, ok := service.AsFailure(err); ok {
		status = statusForKind(failure.Kind)
		message = failure.Message
	} else {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}
	}

	return ctx.Status(status).JSON(dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}

func statusForKind(kind service.FailureKind) int {
	switch kind {
	case service.KindNotAuthenticated:
		return fiber.StatusUnauthorized
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// NoStore marks API responses as uncacheable by browsers and proxies.
func NoStore() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderCacheControl, "no-store")
		return ctx.Next()
	}
}
