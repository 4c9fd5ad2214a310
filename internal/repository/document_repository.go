package repository

import (
	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db}
}

func (r *DocumentRepository) Create(document *model.Document) error {
	return r.db.Create(document).Error
}

func (r *DocumentRepository) List(filter dto.DocumentFilter, schoolID *uuid.UUID) ([]model.Document, error) {
	query := r.db.Preload("UploadedBy").Preload("Criteria").
		Scopes(schoolOrGlobal(schoolID))
	if filter.CriteriaID != nil {
		query = query.Where("criteria_id = ?", *filter.CriteriaID)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	var documents []model.Document
	err := query.Find(&documents).Error
	return documents, err
}

func (r *DocumentRepository) FindByUploader(uploaderID uuid.UUID, schoolID *uuid.UUID) ([]model.Document, error) {
	var documents []model.Document
	err := r.db.Preload("Criteria").
		Where("uploaded_by_id = ?", uploaderID).
		Scopes(bySchool(schoolID)).
		Find(&documents).Error
	return documents, err
}
