package handler

import (
	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CriteriaHandler struct {
	uc *usecase.CriteriaUsecase
}

func NewCriteriaHandler(uc *usecase.CriteriaUsecase) *CriteriaHandler {
	return &CriteriaHandler{uc: uc}
}

func (h *CriteriaHandler) RegisterRoutes(app *fiber.App, protect fiber.Handler) {
	criteria := app.Group("/api/criteria", protect)
	criteria.Post("/", middleware.AdminOnly(), h.Create)
	criteria.Get("/", middleware.AdminOrEvaluator(), h.List)
	criteria.Put("/assign", middleware.AdminOnly(), h.Assign)
	criteria.Post("/bulk-upsert", middleware.AdminOnly(), h.BulkUpsert)
	criteria.Put("/assign-by-names", middleware.AdminOnly(), h.AssignByNames)
	criteria.Get("/with-assignments", middleware.AdminOnly(), h.WithAssignments)
	criteria.Get("/mine", h.ListMine)
}

func (h *CriteriaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCriteriaRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	criteria, err := h.uc.Create(actorFrom(c), req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create criteria",
		Data:    criteria,
	})
}

// List serves both admins and evaluators: admins see their school's catalog,
// evaluators see every school's, sorted by code.
func (h *CriteriaHandler) List(c *fiber.Ctx) error {
	actor := actorFrom(c)

	var (
		criteria any
		err      error
	)
	if actor.Role == model.RoleEvaluator {
		criteria, err = h.uc.ListForEvaluator()
	} else {
		criteria, err = h.uc.List(actor)
	}
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get criteria",
		Data:    criteria,
	})
}

func (h *CriteriaHandler) ListMine(c *fiber.Ctx) error {
	criteria, err := h.uc.ListMine(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assigned criteria",
		Data:    criteria,
	})
}

func (h *CriteriaHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignCriteriaRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	if err := h.uc.Assign(actorFrom(c), req); err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Criteria assigned successfully",
	})
}

func (h *CriteriaHandler) BulkUpsert(c *fiber.Ctx) error {
	var req dto.BulkUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	result, err := h.uc.BulkUpsert(actorFrom(c), req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success bulk upsert criteria",
		Data:    result,
	})
}

func (h *CriteriaHandler) AssignByNames(c *fiber.Ctx) error {
	var req dto.AssignByNamesRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	result, err := h.uc.AssignByNames(actorFrom(c), req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success assign criteria by names",
		Data:    result,
	})
}

func (h *CriteriaHandler) WithAssignments(c *fiber.Ctx) error {
	criteria, err := h.uc.WithAssignments(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get criteria with assignments",
		Data:    criteria,
	})
}
