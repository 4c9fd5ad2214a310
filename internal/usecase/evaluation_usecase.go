package usecase

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvaluationRepo interface {
	FindByNaturalKey(evaluatorID, criteriaID uuid.UUID, submissionID *uuid.UUID) (*model.Evaluation, error)
	FindByNaturalKeyPopulated(evaluatorID, criteriaID uuid.UUID, submissionID *uuid.UUID) (*model.Evaluation, error)
	Create(evaluation *model.Evaluation) error
	Save(evaluation *model.Evaluation) error
	FindByIDPopulated(id uuid.UUID) (*model.Evaluation, error)
	FindByEvaluator(evaluatorID uuid.UUID) ([]model.Evaluation, error)
}

type EvaluationCriteriaRepo interface {
	FindByID(id uuid.UUID) (*model.Criteria, error)
}

type EvaluationSubmissionRepo interface {
	FindByID(id uuid.UUID) (*model.StudentSubmission, error)
}

type EvaluationUsecase struct {
	evaluations EvaluationRepo
	criteria    EvaluationCriteriaRepo
	submissions EvaluationSubmissionRepo
}

func NewEvaluationUsecase(evaluations EvaluationRepo, criteria EvaluationCriteriaRepo, submissions EvaluationSubmissionRepo) *EvaluationUsecase {
	return &EvaluationUsecase{evaluations: evaluations, criteria: criteria, submissions: submissions}
}

// CreateOrUpdate is an upsert by natural key (evaluator, criteria,
// submission-or-absent). An existing evaluation is merge-patched: only the
// fields actually supplied change, and the evaluation date is restamped. A
// concurrent create for the same key loses against the partial unique index
// and surfaces as a conflict; no in-process locking is attempted.
func (uc *EvaluationUsecase) CreateOrUpdate(actor Actor, req dto.CreateEvaluationRequest) (*model.Evaluation, error) {
	if req.CriteriaID == "" {
		return nil, util.ErrValidation("Criteria ID is required")
	}
	criteriaID, err := uuid.Parse(req.CriteriaID)
	if err != nil {
		return nil, util.ErrNotFound("Criteria not found")
	}

	// Criteria must resolve even when marks are absent; comments-only
	// evaluations are legal.
	criteria, err := uc.criteria.FindByID(criteriaID)
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		return nil, util.ErrNotFound("Criteria not found")
	}

	marks, marksSupplied, err := parseMarks(req.Marks)
	if err != nil {
		return nil, err
	}
	if marksSupplied {
		ceiling := criteria.Ceiling()
		if marks < 0 || marks > ceiling {
			return nil, util.ErrValidation(fmt.Sprintf("Marks must be between 0 and %g", ceiling))
		}
	}

	submissionID, err := parseSubmissionRef(req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if submissionID != nil {
		submission, err := uc.submissions.FindByID(*submissionID)
		if err != nil {
			return nil, err
		}
		if submission == nil {
			return nil, util.ErrNotFound("Submission not found")
		}
	}

	existing, err := uc.evaluations.FindByNaturalKey(actor.ID, criteriaID, submissionID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if marksSupplied {
			existing.Marks = marks
		}
		if req.Comments != nil && strings.TrimSpace(*req.Comments) != "" {
			existing.Comments = strings.TrimSpace(*req.Comments)
		}
		if req.AcademicYear != "" {
			existing.AcademicYear = req.AcademicYear
		}
		existing.EvaluationDate = time.Now()
		if err := uc.evaluations.Save(existing); err != nil {
			return nil, err
		}
		return uc.evaluations.FindByIDPopulated(existing.ID)
	}

	evaluation := &model.Evaluation{
		EvaluatorID:    actor.ID,
		CriteriaID:     criteriaID,
		SubmissionID:   submissionID,
		Marks:          0,
		Comments:       "",
		AcademicYear:   req.AcademicYear,
		EvaluationDate: time.Now(),
	}
	if marksSupplied {
		evaluation.Marks = marks
	}
	if req.Comments != nil && strings.TrimSpace(*req.Comments) != "" {
		evaluation.Comments = strings.TrimSpace(*req.Comments)
	}
	if err := uc.evaluations.Create(evaluation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrConflict("Evaluation already exists for this criteria and submission")
		}
		return nil, err
	}
	return uc.evaluations.FindByIDPopulated(evaluation.ID)
}

// GetByCriteria fetches the evaluator's no-submission evaluation for a
// criterion. A missing evaluation is not an error; the handler returns null.
func (uc *EvaluationUsecase) GetByCriteria(actor Actor, criteriaID uuid.UUID) (*model.Evaluation, error) {
	return uc.evaluations.FindByNaturalKeyPopulated(actor.ID, criteriaID, nil)
}

// Get fetches the evaluation for a criterion and submission. The literal
// string "null" selects the no-submission bucket.
func (uc *EvaluationUsecase) Get(actor Actor, criteriaID uuid.UUID, submissionRef string) (*model.Evaluation, error) {
	submissionID, err := parseSubmissionRef(submissionRef)
	if err != nil {
		return nil, err
	}
	return uc.evaluations.FindByNaturalKeyPopulated(actor.ID, criteriaID, submissionID)
}

func (uc *EvaluationUsecase) ListMine(actor Actor) ([]model.Evaluation, error) {
	return uc.evaluations.FindByEvaluator(actor.ID)
}

// Summary groups the evaluator's evaluations by criteria code with a count
// and arithmetic mean per group. Evaluations whose criteria reference does
// not resolve are logged and skipped rather than failing the whole summary.
func (uc *EvaluationUsecase) Summary(actor Actor) (map[string]*dto.SummaryGroup, error) {
	evaluations, err := uc.evaluations.FindByEvaluator(actor.ID)
	if err != nil {
		return nil, err
	}

	summary := map[string]*dto.SummaryGroup{}
	for _, evaluation := range evaluations {
		if evaluation.Criteria == nil || evaluation.Criteria.Code == "" {
			log.Printf("summary: skipping evaluation %s with unresolved criteria", evaluation.ID)
			continue
		}
		code := evaluation.Criteria.Code
		group, ok := summary[code]
		if !ok {
			group = &dto.SummaryGroup{Criteria: evaluation.Criteria}
			summary[code] = group
		}
		group.Evaluations = append(group.Evaluations, evaluation)
		group.TotalEvaluations++
	}

	for _, group := range summary {
		var total float64
		for _, evaluation := range group.Evaluations {
			total += evaluation.Marks
		}
		group.AverageMarks = total / float64(group.TotalEvaluations)
	}
	return summary, nil
}

// parseMarks normalizes the duck-typed marks field. JSON numbers decode as
// float64; clients also send strings. Absent, nil, and empty string all mean
// "not supplied".
func parseMarks(raw any) (float64, bool, error) {
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false, util.ErrValidation("Marks must be a number")
		}
		return v, true, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false, util.ErrValidation("Marks must be a number")
		}
		return n, true, nil
	default:
		return 0, false, util.ErrValidation("Marks must be a number")
	}
}

// parseSubmissionRef normalizes the tri-valued submission reference: empty or
// the literal "null" mean the no-submission bucket; anything else must be a
// submission id. The nil pointer is the only internal shape for "absent".
func parseSubmissionRef(ref string) (*uuid.UUID, error) {
	if ref == "" || ref == "null" {
		return nil, nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, util.ErrNotFound("Submission not found")
	}
	return &id, nil
}
