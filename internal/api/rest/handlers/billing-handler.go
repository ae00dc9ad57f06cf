package handlers

import (
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper/utils"
	"github.com/CrossCheckCME/case_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BillingHandler struct {
	svc services.BillingService
}

func NewBillingHandler(svc services.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

func (h *BillingHandler) SetupRoutes(api fiber.Router) {
	billing := api.Group("/billing")
	billing.Get("/subscriptions", h.ListSubscriptions)
	billing.Post("/portal", h.CreatePortalSession)
}

func (h *BillingHandler) ListSubscriptions(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	subs, err := h.svc.ListSubscriptions(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(subs)
}

func (h *BillingHandler) CreatePortalSession(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	url, err := h.svc.CreatePortalSession(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(dto.PortalSessionResponse{URL: url})
}
