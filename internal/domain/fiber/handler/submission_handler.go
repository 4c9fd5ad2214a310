package handler

import (
	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SubmissionHandler struct {
	uc *usecase.SubmissionUsecase
}

func NewSubmissionHandler(uc *usecase.SubmissionUsecase) *SubmissionHandler {
	return &SubmissionHandler{uc: uc}
}

func (h *SubmissionHandler) RegisterRoutes(app *fiber.App, protect fiber.Handler) {
	submissions := app.Group("/api/submissions", protect)
	submissions.Post("/", h.Create)
	submissions.Get("/mine", h.ListMine)
	submissions.Get("/assigned", h.ListAssigned)
	submissions.Get("/", middleware.AdminOrEvaluator(), h.List)
	submissions.Put("/:id/status", middleware.AdminOrEvaluator(), h.UpdateStatus)
}

// Create accepts a multipart form: scalar fields plus up to ten files under
// the "files" field. Files are saved before the usecase runs; a rejected
// extension aborts the whole request.
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	input := dto.CreateSubmissionInput{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		CriteriaCode: c.FormValue("criteriaCode"),
		CourseCode:   c.FormValue("courseCode"),
		Semester:     c.FormValue("semester"),
		TagsRaw:      c.FormValue("tags"),
		DateFrom:     c.FormValue("dateFrom"),
		DateTo:       c.FormValue("dateTo"),
		MetadataRaw:  c.FormValue("metadata"),
		Score:        c.FormValue("score"),
		ArtifactsRaw: c.FormValue("artifacts"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["files"]
		if len(files) > 10 {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Too many files",
			})
		}
		for _, file := range files {
			storedName, err := saveUpload(c, file, "files")
			if err != nil {
				return util.HandleError(c, err)
			}
			input.Files = append(input.Files, dto.UploadedFile{
				OriginalName: file.Filename,
				StoredName:   storedName,
			})
		}
	}

	submission, err := h.uc.Create(actorFrom(c), input)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create submission",
		Data:    submission,
	})
}

func (h *SubmissionHandler) ListMine(c *fiber.Ctx) error {
	submissions, err := h.uc.ListMine(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get submissions",
		Data:    submissions,
	})
}

func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	filter := dto.SubmissionFilter{
		CriteriaCode: c.Query("criteriaCode"),
		Status:       c.Query("status"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit"),
	}
	submissions, pagination, err := h.uc.List(actorFrom(c), filter)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get submissions",
		Data:       submissions,
		Pagination: pagination,
	})
}

func (h *SubmissionHandler) ListAssigned(c *fiber.Ctx) error {
	submissions, err := h.uc.ListAssigned(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assigned submissions",
		Data:    submissions,
	})
}

func (h *SubmissionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Submission not found",
		}, err)
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	submission, err := h.uc.UpdateStatus(actorFrom(c), id, req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update submission status",
		Data:    submission,
	})
}
