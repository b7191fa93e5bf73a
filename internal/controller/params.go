package controller

import (
	"knotpad-be/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// checkOwner allows a body user_id only when it names the caller. Over HTTP a
// notebook can never be created for, or handed to, another user.
func checkOwner(ctx *fiber.Ctx, userId *uuid.UUID) error {
	if userId == nil || *userId == uuid.Nil {
		return nil
	}
	caller, ok := session.UserID(ctx.UserContext())
	if !ok || caller != *userId {
		return fiber.NewError(fiber.StatusForbidden, "Cannot assign a notebook to another user")
	}
	return nil
}
