package dto

import "github.com/accredhub/backend/internal/model"

// CreateEvaluationRequest carries the merge-patch fields for the upsert.
// Marks is untyped because clients send it as either a number or a string;
// the usecase normalizes it once at the boundary.
type CreateEvaluationRequest struct {
	CriteriaID   string  `json:"criteriaId"`
	SubmissionID string  `json:"submissionId"`
	Marks        any     `json:"marks"`
	Comments     *string `json:"comments"`
	AcademicYear string  `json:"academicYear"`
}

type SummaryGroup struct {
	Criteria         *model.Criteria    `json:"criteria"`
	Evaluations      []model.Evaluation `json:"evaluations"`
	AverageMarks     float64            `json:"averageMarks"`
	TotalEvaluations int                `json:"totalEvaluations"`
}
