package usecase

import (
	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
)

type DocumentRepo interface {
	Create(document *model.Document) error
	List(filter dto.DocumentFilter, schoolID *uuid.UUID) ([]model.Document, error)
	FindByUploader(uploaderID uuid.UUID, schoolID *uuid.UUID) ([]model.Document, error)
}

type DocumentUsecase struct {
	documents DocumentRepo
}

func NewDocumentUsecase(documents DocumentRepo) *DocumentUsecase {
	return &DocumentUsecase{documents: documents}
}

func (uc *DocumentUsecase) Upload(actor Actor, input dto.UploadDocumentInput) (*model.Document, error) {
	criteriaID, err := uuid.Parse(input.CriteriaID)
	if err != nil {
		return nil, util.ErrValidation("criteria is required")
	}

	document := &model.Document{
		Title:        input.Title,
		Description:  input.Description,
		File:         util.UploadPrefix + input.StoredName,
		UploadedByID: actor.ID,
		SchoolID:     actor.SchoolID,
		CriteriaID:   criteriaID,
		Year:         input.Year,
	}
	if err := uc.documents.Create(document); err != nil {
		return nil, err
	}
	return document, nil
}

func (uc *DocumentUsecase) List(actor Actor, filter dto.DocumentFilter) ([]model.Document, error) {
	return uc.documents.List(filter, actor.SchoolID)
}

func (uc *DocumentUsecase) ListMine(actor Actor) ([]model.Document, error) {
	return uc.documents.FindByUploader(actor.ID, actor.SchoolID)
}
