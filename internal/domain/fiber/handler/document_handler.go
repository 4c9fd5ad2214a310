package handler

import (
	"strconv"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	uc *usecase.DocumentUsecase
}

func NewDocumentHandler(uc *usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func (h *DocumentHandler) RegisterRoutes(app *fiber.App, protect fiber.Handler) {
	documents := app.Group("/api/documents", protect)
	documents.Get("/", middleware.AdminOnly(), h.List)
	documents.Get("/mine", h.ListMine)
	documents.Post("/upload", h.Upload)
}

// Upload saves a single file sent under the "document" field and records its
// public URL.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No file uploaded",
		}, err)
	}

	storedName, err := saveUpload(c, file, "document")
	if err != nil {
		return util.HandleError(c, err)
	}

	input := dto.UploadDocumentInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		CriteriaID:  c.FormValue("criteria"),
		StoredName:  storedName,
	}
	if raw := c.FormValue("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			input.Year = &year
		}
	}

	document, err := h.uc.Upload(actorFrom(c), input)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload document",
		Data:    document,
	})
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var filter dto.DocumentFilter
	if raw := c.Query("criteria"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CriteriaID = &id
		}
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = &year
		}
	}

	documents, err := h.uc.List(actorFrom(c), filter)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get documents",
		Data:    documents,
	})
}

func (h *DocumentHandler) ListMine(c *fiber.Ctx) error {
	documents, err := h.uc.ListMine(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get documents",
		Data:    documents,
	})
}
