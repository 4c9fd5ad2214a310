package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	ArtifactDocument = "document"
	ArtifactImage    = "image"
	ArtifactVideo    = "video"
	ArtifactLink     = "link"
	ArtifactSlide    = "slide"
	ArtifactReport   = "report"
	ArtifactCode     = "code"
)

type Artifact struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type StudentSubmission struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID          uuid.UUID      `gorm:"type:uuid;not null" json:"student"`
	Student            *User          `gorm:"foreignKey:StudentID" json:"studentInfo,omitempty"`
	SchoolID           *uuid.UUID     `gorm:"type:uuid" json:"school"`
	CriteriaID         *uuid.UUID     `gorm:"type:uuid" json:"criteria"`
	Criteria           *Criteria      `gorm:"foreignKey:CriteriaID" json:"criteriaInfo,omitempty"`
	CriteriaCode       string         `gorm:"type:varchar(50)" json:"criteriaCode"`
	Title              string         `gorm:"type:varchar(255);not null" json:"title"`
	Description        string         `gorm:"type:text" json:"description"`
	CourseCode         string         `gorm:"type:varchar(50)" json:"courseCode"`
	Semester           string         `gorm:"type:varchar(50)" json:"semester"`
	Tags               []string       `gorm:"type:jsonb;serializer:json" json:"tags"`
	DateFrom           *time.Time     `json:"dateFrom"`
	DateTo             *time.Time     `json:"dateTo"`
	Metadata           map[string]any `gorm:"type:jsonb;serializer:json" json:"metadata"`
	Artifacts          []Artifact     `gorm:"type:jsonb;serializer:json" json:"artifacts"`
	VerificationStatus string         `gorm:"type:varchar(20);not null;default:pending" json:"verificationStatus"`
	ReviewerComment    string         `gorm:"type:text" json:"reviewerComment"`
	ReviewedByID       *uuid.UUID     `gorm:"type:uuid" json:"reviewedBy"`
	ReviewedAt         *time.Time     `json:"reviewedAt"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (s *StudentSubmission) TableName() string {
	return "student_submissions"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
