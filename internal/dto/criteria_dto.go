package dto

import (
	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
)

type CreateCriteriaRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AssignCriteriaRequest struct {
	FacultyID  string `json:"facultyId" validate:"required"`
	CriteriaID string `json:"criteriaId" validate:"required"`
}

type CriteriaItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BulkUpsertRequest struct {
	Items []CriteriaItem `json:"items"`
}

type BulkUpsertResult struct {
	Upserted int `json:"upserted"`
	Modified int `json:"modified"`
	Failed   int `json:"failed"`
}

type AssignByNamesRequest struct {
	CriteriaCode string   `json:"criteriaCode"`
	FacultyNames []string `json:"facultyNames"`
}

type AssignByNamesResult struct {
	AssignedCount int      `json:"assignedCount"`
	Missing       []string `json:"missing"`
}

type FacultyRef struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type CriteriaWithFaculty struct {
	model.Criteria
	Faculty []FacultyRef `json:"faculty"`
}
