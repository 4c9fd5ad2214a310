package usecase

import (
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
)

type ReportEvaluationRepo interface {
	FindByEvaluator(evaluatorID uuid.UUID) ([]model.Evaluation, error)
}

// ReportGenerator renders a batch of evaluations into a document on disk and
// returns its path and download filename.
type ReportGenerator interface {
	Generate(evaluations []model.Evaluation) (path string, filename string, err error)
}

type ReportUsecase struct {
	evaluations ReportEvaluationRepo
	generator   ReportGenerator
}

func NewReportUsecase(evaluations ReportEvaluationRepo, generator ReportGenerator) *ReportUsecase {
	return &ReportUsecase{evaluations: evaluations, generator: generator}
}

// Generate refuses to produce an empty report: an evaluator with no
// evaluations gets an error, not a blank document.
func (uc *ReportUsecase) Generate(actor Actor) (string, string, error) {
	evaluations, err := uc.evaluations.FindByEvaluator(actor.ID)
	if err != nil {
		return "", "", err
	}
	if len(evaluations) == 0 {
		return "", "", util.ErrNotFound("No evaluations found for this evaluator")
	}
	return uc.generator.Generate(evaluations)
}
