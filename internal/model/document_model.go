package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	File         string     `gorm:"type:varchar(512);not null" json:"file"`
	UploadedByID uuid.UUID  `gorm:"type:uuid;not null" json:"uploadedBy"`
	UploadedBy   *User      `gorm:"foreignKey:UploadedByID" json:"uploader,omitempty"`
	SchoolID     *uuid.UUID `gorm:"type:uuid" json:"school"`
	CriteriaID   uuid.UUID  `gorm:"type:uuid;not null" json:"criteria"`
	Criteria     *Criteria  `gorm:"foreignKey:CriteriaID" json:"criteriaInfo,omitempty"`
	Year         *int       `json:"year"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
