package handler

import (
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SchoolFinder resolves a school with its admin populated.
type SchoolFinder interface {
	FindByID(id uuid.UUID) (*model.School, error)
}

type SchoolHandler struct {
	schools SchoolFinder
}

func NewSchoolHandler(schools SchoolFinder) *SchoolHandler {
	return &SchoolHandler{schools: schools}
}

func (h *SchoolHandler) RegisterRoutes(app *fiber.App, protect fiber.Handler) {
	app.Get("/api/schools/:id", protect, h.Get)
}

func (h *SchoolHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "School not found",
		}, err)
	}

	school, err := h.schools.FindByID(id)
	if err != nil {
		return util.HandleError(c, err)
	}
	if school == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "School not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get school",
		Data:    school,
	})
}
