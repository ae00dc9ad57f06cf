package utils

import (
	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// ResponseAppError maps a service error onto the wire. Partial success (207)
// uses a message body since the canonical row could not be returned.
func ResponseAppError(ctx *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	if status == fiber.StatusMultiStatus {
		return ctx.Status(status).JSON(fiber.Map{
			"message": apperr.Message(err),
		})
	}
	return ResponseError(ctx, status, apperr.Message(err))
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}
