package dto

import (
	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
)

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterScopedRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	SchoolID string `json:"schoolId" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthUserResponse struct {
	ID               uuid.UUID        `json:"_id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Role             string           `json:"role"`
	School           *uuid.UUID       `json:"school"`
	AssignedCriteria []model.Criteria `json:"assignedCriteria,omitempty"`
	Token            string           `json:"token,omitempty"`
}
