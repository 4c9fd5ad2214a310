package model

import (
	"time"

	"github.com/google/uuid"
)

// Marks ceiling bounds for a criterion (5-20 range, 10 by default).
const (
	MinMaxMarks     = 5
	MaxMaxMarks     = 20
	DefaultMaxMarks = 10
)

type Criteria struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	MaxMarks    float64    `gorm:"not null;default:10" json:"maxMarks"`
	SchoolID    *uuid.UUID `gorm:"type:uuid" json:"school"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c *Criteria) TableName() string {
	return "criteria"
}

// Ceiling returns the effective marks ceiling, falling back to 20 when unset.
func (c *Criteria) Ceiling() float64 {
	if c.MaxMarks <= 0 {
		return MaxMaxMarks
	}
	return c.MaxMarks
}
