package handler

import (
	"fmt"
	"log"
	"os"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EvaluationHandler struct {
	uc          *usecase.EvaluationUsecase
	criteria    *usecase.CriteriaUsecase
	submissions *usecase.SubmissionUsecase
	reports     *usecase.ReportUsecase
}

func NewEvaluationHandler(uc *usecase.EvaluationUsecase, criteria *usecase.CriteriaUsecase, submissions *usecase.SubmissionUsecase, reports *usecase.ReportUsecase) *EvaluationHandler {
	return &EvaluationHandler{uc: uc, criteria: criteria, submissions: submissions, reports: reports}
}

// RegisterRoutes wires the evaluator surface. Specific paths are registered
// before the parameterized ones so "/summary" never matches ":criteriaId".
func (h *EvaluationHandler) RegisterRoutes(app *fiber.App, protect fiber.Handler) {
	evaluations := app.Group("/api/evaluations", protect, middleware.EvaluatorOnly())
	evaluations.Get("/criteria", h.ListCriteria)
	evaluations.Get("/summary", h.Summary)
	evaluations.Get("/summary/pdf", h.SummaryPDF)
	evaluations.Get("/submissions", h.ListSubmissions)
	evaluations.Get("/submissions/:criteriaId", h.ListSubmissionsByCriteria)
	evaluations.Get("/:criteriaId/:submissionId", h.Get)
	evaluations.Get("/:criteriaId", h.GetByCriteria)
	evaluations.Get("/", h.ListMine)
	evaluations.Post("/", h.CreateOrUpdate)
}

func (h *EvaluationHandler) ListCriteria(c *fiber.Ctx) error {
	criteria, err := h.criteria.ListForEvaluator()
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get criteria",
		Data:    criteria,
	})
}

func (h *EvaluationHandler) ListSubmissions(c *fiber.Ctx) error {
	var criteriaID *uuid.UUID
	if raw := c.Query("criteriaId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Invalid criteria id",
			}, err)
		}
		criteriaID = &id
	}

	submissions, err := h.submissions.ListForEvaluation(criteriaID)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get submissions",
		Data:    submissions,
	})
}

func (h *EvaluationHandler) ListSubmissionsByCriteria(c *fiber.Ctx) error {
	criteriaID, err := parseIDParam(c, "criteriaId")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid criteria id",
		}, err)
	}

	submissions, err := h.submissions.ListForEvaluation(&criteriaID)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get submissions",
		Data:    submissions,
	})
}

func (h *EvaluationHandler) ListMine(c *fiber.Ctx) error {
	evaluations, err := h.uc.ListMine(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluations",
		Data:    evaluations,
	})
}

// Get resolves one evaluation by its natural key. The submission segment
// accepts the literal "null" for criteria-only evaluations. A missing
// evaluation returns null data, not a 404: the client uses this endpoint to
// prefill its form.
func (h *EvaluationHandler) Get(c *fiber.Ctx) error {
	criteriaID, err := parseIDParam(c, "criteriaId")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid criteria id",
		}, err)
	}

	evaluation, err := h.uc.Get(actorFrom(c), criteriaID, c.Params("submissionId"))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation",
		Data:    evaluation,
	})
}

func (h *EvaluationHandler) GetByCriteria(c *fiber.Ctx) error {
	criteriaID, err := parseIDParam(c, "criteriaId")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid criteria id",
		}, err)
	}

	evaluation, err := h.uc.GetByCriteria(actorFrom(c), criteriaID)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation",
		Data:    evaluation,
	})
}

func (h *EvaluationHandler) CreateOrUpdate(c *fiber.Ctx) error {
	var req dto.CreateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	evaluation, err := h.uc.CreateOrUpdate(actorFrom(c), req)
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success save evaluation",
		Data:    evaluation,
	})
}

func (h *EvaluationHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation summary",
		Data:    summary,
	})
}

// SummaryPDF sends the generated report as an attachment. The report file is
// transient: it is read into memory and removed before the response goes out.
func (h *EvaluationHandler) SummaryPDF(c *fiber.Ctx) error {
	path, filename, err := h.reports.Generate(actorFrom(c))
	if err != nil {
		return util.HandleError(c, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Error reading generated PDF",
		}, err)
	}
	if err := os.Remove(path); err != nil {
		log.Printf("report: could not remove transient file %s: %v", path, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
