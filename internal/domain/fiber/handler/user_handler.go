package handler

import (
	"time"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	uc *usecase.AuthUsecase
}

func NewUserHandler(uc *usecase.AuthUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App, protect fiber.Handler) {
	users := app.Group("/api/users")
	users.Post("/admin/register", middleware.RateLimiter(5, time.Minute), h.RegisterAdmin)
	users.Post("/login", middleware.RateLimiter(10, time.Minute), h.Login)
	users.Post("/faculty", protect, middleware.AdminOnly(), h.RegisterFaculty)
	users.Get("/faculty", protect, middleware.AdminOnly(), h.ListFaculty)
	users.Post("/student/register", protect, h.RegisterStudent)
	users.Post("/evaluator/register", protect, h.RegisterEvaluator)
	users.Get("/test", h.Test)
}

func (h *UserHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req dto.RegisterAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	user, err := h.uc.RegisterAdmin(req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success register admin",
		Data:    user,
	})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	user, err := h.uc.Login(req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success login",
		Data:    user,
	})
}

func (h *UserHandler) RegisterFaculty(c *fiber.Ctx) error {
	return h.registerScoped(c, model.RoleFaculty)
}

func (h *UserHandler) RegisterStudent(c *fiber.Ctx) error {
	return h.registerScoped(c, model.RoleStudent)
}

func (h *UserHandler) RegisterEvaluator(c *fiber.Ctx) error {
	return h.registerScoped(c, model.RoleEvaluator)
}

func (h *UserHandler) registerScoped(c *fiber.Ctx, role string) error {
	var req dto.RegisterScopedRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	user, err := h.uc.RegisterScoped(actorFrom(c), role, req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success register " + role,
		Data:    user,
	})
}

func (h *UserHandler) ListFaculty(c *fiber.Ctx) error {
	faculty, err := h.uc.ListFaculty(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get faculty",
		Data:    faculty,
	})
}

func (h *UserHandler) Test(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Backend is healthy")
}
