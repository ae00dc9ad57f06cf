package handlers

import (
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper/utils"
	"github.com/CrossCheckCME/case_service/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc      services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// SetupPublicRoutes registers the routes reachable without a session.
func (h *AuthHandler) SetupPublicRoutes(api fiber.Router) {
	user := api.Group("/user")
	user.Post("/register", h.Register)
	user.Post("/login", h.Login)
}

// SetupProtectedRoutes registers the routes behind the auth middleware.
func (h *AuthHandler) SetupProtectedRoutes(api fiber.Router) {
	api.Get("/user/me", h.Me)
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if err := h.validate.Struct(body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(body)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var body dto.UserLogin
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}
	if err := h.validate.Struct(body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	token, _, err := h.svc.Login(body)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{Token: token})
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}
