package model

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is uniquely identified by (evaluator, criteria, submission), where a
// missing submission is its own bucket, not a wildcard. A nil SubmissionID is the
// single internal representation of "no submission"; the pair of partial unique
// indexes created at migration time enforces the key for both shapes.
type Evaluation struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EvaluatorID    uuid.UUID          `gorm:"type:uuid;not null" json:"evaluator"`
	CriteriaID     uuid.UUID          `gorm:"type:uuid;not null" json:"criteria"`
	Criteria       *Criteria          `gorm:"foreignKey:CriteriaID" json:"criteriaInfo,omitempty"`
	SubmissionID   *uuid.UUID         `gorm:"type:uuid" json:"submission"`
	Submission     *StudentSubmission `gorm:"foreignKey:SubmissionID" json:"submissionInfo,omitempty"`
	Marks          float64            `gorm:"not null;default:0" json:"marks"`
	Comments       string             `gorm:"type:text;not null;default:''" json:"comments"`
	AcademicYear   string             `gorm:"type:varchar(20)" json:"academicYear"`
	EvaluationDate time.Time          `json:"evaluationDate"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (e *Evaluation) TableName() string {
	return "evaluations"
}
