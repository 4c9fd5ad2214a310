package usecase

import (
	"fmt"
	"log"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
)

// Actor is the resolved caller identity threaded into every usecase. Role and
// SchoolID originate from the token claims.
type Actor struct {
	ID                  uuid.UUID
	Role                string
	SchoolID            *uuid.UUID
	AssignedCriteriaIDs []uuid.UUID
}

func (a Actor) InSchool(schoolID *uuid.UUID) bool {
	if a.SchoolID == nil || schoolID == nil {
		return false
	}
	return *a.SchoolID == *schoolID
}

type AuthUserRepo interface {
	FindByEmail(email string) (*model.User, error)
	FindByEmailInSchool(email string, schoolID uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	Save(user *model.User) error
	FindFaculty(schoolID *uuid.UUID) ([]model.User, error)
}

type AuthSchoolRepo interface {
	Create(school *model.School) error
}

type AuthUsecase struct {
	users   AuthUserRepo
	schools AuthSchoolRepo
}

func NewAuthUsecase(users AuthUserRepo, schools AuthSchoolRepo) *AuthUsecase {
	return &AuthUsecase{users: users, schools: schools}
}

// RegisterAdmin creates the admin together with a fresh school owned by them.
// School creation and the school back-fill are separate writes; a failure
// between them leaves a schoolless admin, which the adoption rules tolerate.
func (uc *AuthUsecase) RegisterAdmin(req dto.RegisterAdminRequest) (*dto.AuthUserResponse, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := uc.users.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrConflict("User already exists")
	}

	digest, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
		Role:     model.RoleAdmin,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	school := &model.School{
		Name:    fmt.Sprintf("%s's School", req.Name),
		AdminID: user.ID,
	}
	if err := uc.schools.Create(school); err != nil {
		log.Printf("school creation failed for admin %s: %v", user.ID, err)
		return nil, err
	}

	user.SchoolID = &school.ID
	if err := uc.users.Save(user); err != nil {
		log.Printf("school back-fill failed for admin %s: %v", user.ID, err)
		return nil, err
	}

	token, err := util.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthUserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		School: user.SchoolID,
		Token:  token,
	}, nil
}

// RegisterScoped creates a student, evaluator, or faculty record inside the
// acting admin's school. Faculty responses carry no token; faculty log in
// themselves.
func (uc *AuthUsecase) RegisterScoped(actor Actor, role string, req dto.RegisterScopedRequest) (*dto.AuthUserResponse, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	roleLabel := map[string]string{
		model.RoleStudent:   "students",
		model.RoleEvaluator: "evaluators",
		model.RoleFaculty:   "faculty",
	}[role]

	schoolID, err := uuid.Parse(req.SchoolID)
	if err != nil || actor.Role != model.RoleAdmin || !actor.InSchool(&schoolID) {
		return nil, util.ErrUnauthorized(fmt.Sprintf("Not authorized to register %s for this school", roleLabel))
	}

	existing, err := uc.users.FindByEmailInSchool(req.Email, schoolID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrConflict("User already exists")
	}

	digest, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
		Role:     role,
		SchoolID: &schoolID,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	resp := &dto.AuthUserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		School: user.SchoolID,
	}
	if role != model.RoleFaculty {
		token, err := util.GenerateToken(user)
		if err != nil {
			return nil, err
		}
		resp.Token = token
	}
	return resp, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same error so callers cannot probe for registered addresses.
func (uc *AuthUsecase) Login(req dto.LoginRequest) (*dto.AuthUserResponse, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !util.CheckPassword(user.Password, req.Password) {
		return nil, util.ErrUnauthorized("Invalid email or password")
	}

	token, err := util.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthUserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		School:           user.SchoolID,
		AssignedCriteria: user.AssignedCriteria,
		Token:            token,
	}, nil
}

// ListFaculty returns faculty in the admin's school plus legacy schoolless
// records.
func (uc *AuthUsecase) ListFaculty(actor Actor) ([]model.User, error) {
	return uc.users.FindFaculty(actor.SchoolID)
}
