package repository

import (
	"errors"

	"github.com/accredhub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Preload("AssignedCriteria").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns (nil, nil) when no user carries the email.
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("AssignedCriteria").First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmailInSchool(email string, schoolID uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "email = ? AND school_id = ?", email, schoolID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

// FindFaculty lists faculty visible to a school: its own plus legacy rows with
// no school.
func (r *UserRepository) FindFaculty(schoolID *uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("AssignedCriteria").
		Where("role = ?", model.RoleFaculty).
		Scopes(schoolOrGlobal(schoolID)).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) FindFacultyByNames(names []string, schoolID *uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("AssignedCriteria").
		Where("name IN ? AND role = ?", names, model.RoleFaculty).
		Scopes(bySchool(schoolID)).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) FindFacultyBySchool(schoolID *uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("AssignedCriteria").
		Where("role = ?", model.RoleFaculty).
		Scopes(bySchool(schoolID)).
		Find(&users).Error
	return users, err
}

// AddAssignment appends a criterion to the faculty's assignment set. The join
// table's composite primary key is the authoritative guard against duplicate
// pairs under concurrency.
func (r *UserRepository) AddAssignment(user *model.User, criteria *model.Criteria) error {
	return r.db.Model(user).Association("AssignedCriteria").Append(criteria)
}
