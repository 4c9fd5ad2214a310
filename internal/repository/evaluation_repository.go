package repository

import (
	"errors"

	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

// Migrate creates the partial unique indexes enforcing the evaluation natural
// key. Two indexes cover the two key classes: one per (evaluator, criteria,
// submission) and one per (evaluator, criteria) for the no-submission bucket.
func (r *EvaluationRepository) Migrate() error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_evaluations_natural_key
			ON evaluations (evaluator_id, criteria_id, submission_id)
			WHERE submission_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_evaluations_natural_key_no_submission
			ON evaluations (evaluator_id, criteria_id)
			WHERE submission_id IS NULL`,
	}
	for _, stmt := range stmts {
		if err := r.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByNaturalKey looks up the one evaluation for the triple. A nil
// submissionID selects the no-submission bucket.
func (r *EvaluationRepository) FindByNaturalKey(evaluatorID, criteriaID uuid.UUID, submissionID *uuid.UUID) (*model.Evaluation, error) {
	query := r.db.Where("evaluator_id = ? AND criteria_id = ?", evaluatorID, criteriaID)
	if submissionID != nil {
		query = query.Where("submission_id = ?", *submissionID)
	} else {
		query = query.Where("submission_id IS NULL")
	}
	var evaluation model.Evaluation
	err := query.First(&evaluation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) Create(evaluation *model.Evaluation) error {
	return r.db.Create(evaluation).Error
}

func (r *EvaluationRepository) Save(evaluation *model.Evaluation) error {
	return r.db.Save(evaluation).Error
}

func (r *EvaluationRepository) FindByIDPopulated(id uuid.UUID) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.db.Preload("Criteria").Preload("Submission").Preload("Submission.Student").
		First(&evaluation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) FindByEvaluator(evaluatorID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.db.Preload("Criteria").Preload("Submission").Preload("Submission.Student").
		Where("evaluator_id = ?", evaluatorID).
		Order("created_at DESC").
		Find(&evaluations).Error
	return evaluations, err
}

// FindByNaturalKeyPopulated is FindByNaturalKey with criteria and submission
// references resolved.
func (r *EvaluationRepository) FindByNaturalKeyPopulated(evaluatorID, criteriaID uuid.UUID, submissionID *uuid.UUID) (*model.Evaluation, error) {
	query := r.db.Preload("Criteria").Preload("Submission").Preload("Submission.Student").
		Where("evaluator_id = ? AND criteria_id = ?", evaluatorID, criteriaID)
	if submissionID != nil {
		query = query.Where("submission_id = ?", *submissionID)
	} else {
		query = query.Where("submission_id IS NULL")
	}
	var evaluation model.Evaluation
	err := query.First(&evaluation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}
