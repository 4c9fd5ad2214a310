package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin     = "admin"
	RoleFaculty   = "faculty"
	RoleStudent   = "student"
	RoleEvaluator = "evaluator"
)

type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	Email            string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password         string     `gorm:"type:varchar(255);not null" json:"-"` // bcrypt digest, never plaintext
	Role             string     `gorm:"type:varchar(20);not null;default:faculty" json:"role"`
	SchoolID         *uuid.UUID `gorm:"type:uuid" json:"school"`
	School           *School    `gorm:"foreignKey:SchoolID" json:"-"`
	AssignedCriteria []Criteria `gorm:"many2many:user_assigned_criteria" json:"assignedCriteria,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}

// HasAssigned reports whether the criteria id is already in the user's assignment set.
func (u *User) HasAssigned(criteriaID uuid.UUID) bool {
	for _, c := range u.AssignedCriteria {
		if c.ID == criteriaID {
			return true
		}
	}
	return false
}
