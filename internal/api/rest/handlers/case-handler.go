package handlers

import (
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper/utils"
	"github.com/CrossCheckCME/case_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CaseHandler struct {
	svc services.CaseService
}

func NewCaseHandler(svc services.CaseService) *CaseHandler {
	return &CaseHandler{svc: svc}
}

// SetupRoutes registers the authenticated case, terms and availability
// routes on the /api group.
func (h *CaseHandler) SetupRoutes(api fiber.Router) {
	cases := api.Group("/cases")

	cases.Get("/", h.ListCases)
	cases.Post("/", h.CreateCase)
	cases.Get("/:caseId", h.GetCase)
	cases.Delete("/:caseId", h.DeleteCase)
	cases.Put("/:caseId/instructions", h.UpdateInstructions)
	cases.Post("/:caseId/set-current-step", h.SetCurrentStep)
	cases.Post("/:caseId/agree-terms", h.AgreeTerms)

	api.Get("/terms/latest", h.LatestTerms)
	api.Get("/availability", h.Availability)
}

func (h *CaseHandler) ListCases(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	cases, err := h.svc.ListCases(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(cases)
}

func (h *CaseHandler) GetCase(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	c, err := h.svc.GetCase(userID, caseID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(c)
}

func (h *CaseHandler) CreateCase(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreateCaseRequest
	if err := ctx.BodyParser(&body); err != nil && len(ctx.Body()) > 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	c, err := h.svc.CreateCase(userID, body)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(c)
}

func (h *CaseHandler) DeleteCase(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	if err := h.svc.DeleteCase(userID, caseID); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(dto.MessageResponse{
		Message: "Case deleted successfully",
	})
}

func (h *CaseHandler) UpdateInstructions(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	var body dto.UpdateInstructionsRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Instructions must be a string")
	}

	c, err := h.svc.UpdateInstructions(userID, caseID, body.Instructions)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(c)
}

func (h *CaseHandler) SetCurrentStep(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	var body dto.SetCurrentStepRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Invalid request body")
	}

	c, err := h.svc.SetCurrentStep(userID, caseID, body.StepID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(c)
}

func (h *CaseHandler) AgreeTerms(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	caseID := ctx.Params("caseId")
	if caseID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Case ID is required")
	}

	var body dto.AgreeTermsRequest
	if err := ctx.BodyParser(&body); err != nil || body.Agreed == nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest,
			"Invalid agreement status: 'agreed' must be a boolean.")
	}

	c, err := h.svc.AgreeToTerms(userID, caseID, body.TermsID, *body.Agreed)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(c)
}

func (h *CaseHandler) LatestTerms(ctx *fiber.Ctx) error {
	if _, ok := currentUserID(ctx); !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	terms, err := h.svc.LatestTerms()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(terms)
}

func (h *CaseHandler) Availability(ctx *fiber.Ctx) error {
	if _, ok := currentUserID(ctx); !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	settings, err := h.svc.Availability()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(settings)
}

// currentUserID reads the session user id placed by the auth middleware.
func currentUserID(ctx *fiber.Ctx) (string, bool) {
	id, ok := ctx.Locals("userID").(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
