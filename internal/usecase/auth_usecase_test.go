package usecase

import (
	"testing"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthUserRepo struct {
	byID map[uuid.UUID]*model.User
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byID: map[uuid.UUID]*model.User{}}
}

func (f *fakeAuthUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeAuthUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthUserRepo) FindByEmailInSchool(email string, schoolID uuid.UUID) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email && u.SchoolID != nil && *u.SchoolID == schoolID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthUserRepo) Create(u *model.User) error {
	f.add(u)
	return nil
}

func (f *fakeAuthUserRepo) Save(u *model.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeAuthUserRepo) FindFaculty(schoolID *uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, u := range f.byID {
		if u.Role != model.RoleFaculty {
			continue
		}
		if u.SchoolID == nil || (schoolID != nil && *u.SchoolID == *schoolID) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeSchoolRepo struct {
	schools []*model.School
}

func (f *fakeSchoolRepo) Create(school *model.School) error {
	school.ID = uuid.New()
	f.schools = append(f.schools, school)
	return nil
}

func TestRegisterAdminCreatesSchool(t *testing.T) {
	users := newFakeAuthUserRepo()
	schools := &fakeSchoolRepo{}
	uc := NewAuthUsecase(users, schools)

	resp, err := uc.RegisterAdmin(dto.RegisterAdminRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.Len(t, schools.schools, 1)
	assert.Equal(t, "Ada's School", schools.schools[0].Name)
	assert.Equal(t, resp.ID, schools.schools[0].AdminID)
	require.NotNil(t, resp.School)
	assert.Equal(t, schools.schools[0].ID, *resp.School)
	assert.Equal(t, model.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.Token)

	stored, _ := users.FindByEmail("ada@example.com")
	assert.NotEqual(t, "secret123", stored.Password, "password must be stored hashed")
}

func TestRegisterAdminDuplicateEmail(t *testing.T) {
	users := newFakeAuthUserRepo()
	uc := NewAuthUsecase(users, &fakeSchoolRepo{})
	users.add(&model.User{Email: "ada@example.com", Role: model.RoleAdmin})

	_, err := uc.RegisterAdmin(dto.RegisterAdminRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestRegisterScopedAuthorization(t *testing.T) {
	users := newFakeAuthUserRepo()
	uc := NewAuthUsecase(users, &fakeSchoolRepo{})
	schoolID := uuid.New()
	admin := Actor{ID: uuid.New(), Role: model.RoleAdmin, SchoolID: &schoolID}

	// Wrong school.
	_, err := uc.RegisterScoped(admin, model.RoleStudent, dto.RegisterScopedRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret123",
		SchoolID: uuid.NewString(),
	})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Not authorized to register students for this school", appErr.Message)

	// Not an admin.
	faculty := Actor{ID: uuid.New(), Role: model.RoleFaculty, SchoolID: &schoolID}
	_, err = uc.RegisterScoped(faculty, model.RoleEvaluator, dto.RegisterScopedRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "secret123",
		SchoolID: schoolID.String(),
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Not authorized to register evaluators for this school", appErr.Message)
}

func TestRegisterScopedTokenPolicy(t *testing.T) {
	users := newFakeAuthUserRepo()
	uc := NewAuthUsecase(users, &fakeSchoolRepo{})
	schoolID := uuid.New()
	admin := Actor{ID: uuid.New(), Role: model.RoleAdmin, SchoolID: &schoolID}

	student, err := uc.RegisterScoped(admin, model.RoleStudent, dto.RegisterScopedRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret123",
		SchoolID: schoolID.String(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.Token)

	// Faculty get no token; they log in themselves.
	staff, err := uc.RegisterScoped(admin, model.RoleFaculty, dto.RegisterScopedRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret123",
		SchoolID: schoolID.String(),
	})
	require.NoError(t, err)
	assert.Empty(t, staff.Token)
}

func TestLoginUniformFailureMessage(t *testing.T) {
	users := newFakeAuthUserRepo()
	uc := NewAuthUsecase(users, &fakeSchoolRepo{})

	digest, err := util.HashPassword("correct-horse")
	require.NoError(t, err)
	users.add(&model.User{Email: "ada@example.com", Password: digest, Role: model.RoleAdmin})

	// Unknown email and wrong password are indistinguishable.
	_, unknownErr := uc.Login(dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	_, wrongErr := uc.Login(dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})

	var unknownApp, wrongApp *util.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)
	assert.Equal(t, "Invalid email or password", unknownApp.Message)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.Code, wrongApp.Code)
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeAuthUserRepo()
	uc := NewAuthUsecase(users, &fakeSchoolRepo{})

	digest, err := util.HashPassword("correct-horse")
	require.NoError(t, err)
	criteria := model.Criteria{ID: uuid.New(), Code: "C1", Name: "Curriculum"}
	users.add(&model.User{
		Email:            "dana@example.com",
		Password:         digest,
		Role:             model.RoleFaculty,
		AssignedCriteria: []model.Criteria{criteria},
	})

	resp, err := uc.Login(dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.Len(t, resp.AssignedCriteria, 1)
	assert.Equal(t, "C1", resp.AssignedCriteria[0].Code)
}
