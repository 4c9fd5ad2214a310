package repository

import (
	"errors"

	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CriteriaRepository struct {
	db *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) *CriteriaRepository {
	return &CriteriaRepository{db}
}

func (r *CriteriaRepository) Create(criteria *model.Criteria) error {
	return r.db.Create(criteria).Error
}

func (r *CriteriaRepository) Save(criteria *model.Criteria) error {
	return r.db.Save(criteria).Error
}

func (r *CriteriaRepository) FindByID(id uuid.UUID) (*model.Criteria, error) {
	var criteria model.Criteria
	err := r.db.First(&criteria, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &criteria, nil
}

// FindScoped returns a school's criteria plus the schoolless global ones. This
// school-or-null union is the standard tenant read filter across the system.
func (r *CriteriaRepository) FindScoped(schoolID *uuid.UUID) ([]model.Criteria, error) {
	var criterias []model.Criteria
	err := r.db.Scopes(schoolOrGlobal(schoolID)).Find(&criterias).Error
	return criterias, err
}

// FindAllSorted returns every criterion system-wide ordered by code. Evaluators
// review across tenants, so no school filter applies.
func (r *CriteriaRepository) FindAllSorted() ([]model.Criteria, error) {
	var criterias []model.Criteria
	err := r.db.Order("code ASC").Find(&criterias).Error
	return criterias, err
}

func (r *CriteriaRepository) FindByIDsInSchool(ids []uuid.UUID, schoolID *uuid.UUID) ([]model.Criteria, error) {
	var criterias []model.Criteria
	err := r.db.Where("id IN ?", ids).Scopes(bySchool(schoolID)).Find(&criterias).Error
	return criterias, err
}

func (r *CriteriaRepository) FindByCodeInSchool(code string, schoolID *uuid.UUID) (*model.Criteria, error) {
	var criteria model.Criteria
	err := r.db.Where("code = ?", code).Scopes(bySchool(schoolID)).First(&criteria).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (r *CriteriaRepository) FindByCode(code string) (*model.Criteria, error) {
	var criteria model.Criteria
	err := r.db.First(&criteria, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &criteria, nil
}

// FindConflict looks for an existing criterion in the school scope that clashes
// on code or name.
func (r *CriteriaRepository) FindConflict(code, name string, schoolID *uuid.UUID) (*model.Criteria, error) {
	var criteria model.Criteria
	err := r.db.Scopes(bySchool(schoolID)).
		Where("code = ? OR name = ?", code, name).
		First(&criteria).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (r *CriteriaRepository) FindBySchool(schoolID *uuid.UUID) ([]model.Criteria, error) {
	var criterias []model.Criteria
	err := r.db.Scopes(bySchool(schoolID)).Find(&criterias).Error
	return criterias, err
}

// Upsert creates or updates a criterion keyed by (code, school).
func (r *CriteriaRepository) Upsert(code, name, description string, schoolID *uuid.UUID) (created bool, err error) {
	existing, err := r.FindByCodeInSchool(code, schoolID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		existing.Name = name
		existing.Description = description
		return false, r.db.Save(existing).Error
	}
	criteria := model.Criteria{
		Code:        code,
		Name:        name,
		Description: description,
		MaxMarks:    model.DefaultMaxMarks,
		SchoolID:    schoolID,
	}
	return true, r.db.Create(&criteria).Error
}
