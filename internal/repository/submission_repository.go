package repository

import (
	"errors"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db}
}

func (r *SubmissionRepository) Create(submission *model.StudentSubmission) error {
	return r.db.Create(submission).Error
}

func (r *SubmissionRepository) Save(submission *model.StudentSubmission) error {
	return r.db.Save(submission).Error
}

func (r *SubmissionRepository) FindByID(id uuid.UUID) (*model.StudentSubmission, error) {
	var submission model.StudentSubmission
	err := r.db.First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) FindByStudent(studentID uuid.UUID, schoolID *uuid.UUID) ([]model.StudentSubmission, error) {
	var submissions []model.StudentSubmission
	err := r.db.Preload("Criteria").
		Where("student_id = ?", studentID).
		Scopes(bySchool(schoolID)).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// List returns one tenant's submissions with the matching total, so callers
// can paginate when the filter carries a positive limit.
func (r *SubmissionRepository) List(filter dto.SubmissionFilter, schoolID *uuid.UUID) ([]model.StudentSubmission, int64, error) {
	query := r.db.Model(&model.StudentSubmission{}).
		Preload("Student").Preload("Criteria").
		Scopes(bySchool(schoolID))
	if filter.CriteriaCode != "" {
		query = query.Where("criteria_code = ?", filter.CriteriaCode)
	}
	if filter.Status != "" {
		query = query.Where("verification_status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}
	var submissions []model.StudentSubmission
	err := query.Order("created_at DESC").Find(&submissions).Error
	return submissions, total, err
}

// FindAll is the review-side listing: no tenant filter, evaluators see every
// school's submissions.
func (r *SubmissionRepository) FindAll(criteriaID *uuid.UUID) ([]model.StudentSubmission, error) {
	query := r.db.Preload("Student").Preload("Criteria")
	if criteriaID != nil {
		query = query.Where("criteria_id = ?", criteriaID)
	}
	var submissions []model.StudentSubmission
	err := query.Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByCriteriaIDs(criteriaIDs []uuid.UUID, schoolID *uuid.UUID) ([]model.StudentSubmission, error) {
	var submissions []model.StudentSubmission
	err := r.db.Preload("Student").Preload("Criteria").
		Where("criteria_id IN ?", criteriaIDs).
		Scopes(bySchool(schoolID)).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}
