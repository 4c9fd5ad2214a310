package repository

import (
	"errors"

	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{db}
}

func (r *SchoolRepository) Create(school *model.School) error {
	return r.db.Create(school).Error
}

func (r *SchoolRepository) FindByID(id uuid.UUID) (*model.School, error) {
	var school model.School
	err := r.db.Preload("Admin").First(&school, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}
