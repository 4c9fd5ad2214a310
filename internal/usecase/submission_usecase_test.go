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

type fakeSubmissionRepo struct {
	byID map[uuid.UUID]*model.StudentSubmission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{byID: map[uuid.UUID]*model.StudentSubmission{}}
}

func (f *fakeSubmissionRepo) Create(s *model.StudentSubmission) error {
	s.ID = uuid.New()
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSubmissionRepo) Save(s *model.StudentSubmission) error {
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSubmissionRepo) FindByID(id uuid.UUID) (*model.StudentSubmission, error) {
	return f.byID[id], nil
}

func (f *fakeSubmissionRepo) FindByStudent(studentID uuid.UUID, schoolID *uuid.UUID) ([]model.StudentSubmission, error) {
	var out []model.StudentSubmission
	for _, s := range f.byID {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) List(filter dto.SubmissionFilter, schoolID *uuid.UUID) ([]model.StudentSubmission, int64, error) {
	var out []model.StudentSubmission
	for _, s := range f.byID {
		if filter.CriteriaCode != "" && s.CriteriaCode != filter.CriteriaCode {
			continue
		}
		if filter.Status != "" && s.VerificationStatus != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	total := int64(len(out))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start > len(out) {
			start = len(out)
		}
		end := start + filter.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (f *fakeSubmissionRepo) FindByCriteriaIDs(criteriaIDs []uuid.UUID, schoolID *uuid.UUID) ([]model.StudentSubmission, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range criteriaIDs {
		wanted[id] = true
	}
	var out []model.StudentSubmission
	for _, s := range f.byID {
		if s.CriteriaID != nil && wanted[*s.CriteriaID] {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) FindAll(criteriaID *uuid.UUID) ([]model.StudentSubmission, error) {
	var out []model.StudentSubmission
	for _, s := range f.byID {
		if criteriaID != nil && (s.CriteriaID == nil || *s.CriteriaID != *criteriaID) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

type fakeCriteriaCodeFinder struct {
	byCode map[string]*model.Criteria
}

func (f *fakeCriteriaCodeFinder) FindByCode(code string) (*model.Criteria, error) {
	return f.byCode[code], nil
}

func newSubmissionFixture() (*SubmissionUsecase, *fakeSubmissionRepo, *model.Criteria, Actor) {
	criteria := &model.Criteria{ID: uuid.New(), Code: "C1", Name: "Curriculum"}
	repo := newFakeSubmissionRepo()
	uc := NewSubmissionUsecase(repo, &fakeCriteriaCodeFinder{byCode: map[string]*model.Criteria{"C1": criteria}})
	schoolID := uuid.New()
	actor := Actor{ID: uuid.New(), Role: model.RoleStudent, SchoolID: &schoolID}
	return uc, repo, criteria, actor
}

func TestCreateSubmissionRequiresTitle(t *testing.T) {
	uc, _, _, actor := newSubmissionFixture()

	_, err := uc.Create(actor, dto.CreateSubmissionInput{})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "title is required", appErr.Message)
}

func TestCreateSubmissionUnknownCriteriaCode(t *testing.T) {
	uc, _, _, actor := newSubmissionFixture()

	_, err := uc.Create(actor, dto.CreateSubmissionInput{Title: "Evidence", CriteriaCode: "NOPE"})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Criteria not found", appErr.Message)
}

func TestCreateSubmissionClassifiesFiles(t *testing.T) {
	uc, _, criteria, actor := newSubmissionFixture()

	submission, err := uc.Create(actor, dto.CreateSubmissionInput{
		Title:        "Evidence",
		CriteriaCode: "C1",
		Files: []dto.UploadedFile{
			{OriginalName: "photo.png", StoredName: "files-1-photo.png"},
			{OriginalName: "deck.pptx", StoredName: "files-2-deck.pptx"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, submission.CriteriaID)
	assert.Equal(t, criteria.ID, *submission.CriteriaID)
	assert.Equal(t, model.StatusPending, submission.VerificationStatus)
	require.Len(t, submission.Artifacts, 2)
	assert.Equal(t, model.ArtifactImage, submission.Artifacts[0].Type)
	assert.Equal(t, "/uploads/files-1-photo.png", submission.Artifacts[0].URL)
	assert.Equal(t, model.ArtifactSlide, submission.Artifacts[1].Type)
}

func TestCreateSubmissionDecodesDuckTypedFields(t *testing.T) {
	uc, _, _, actor := newSubmissionFixture()

	submission, err := uc.Create(actor, dto.CreateSubmissionInput{
		Title:        "Evidence",
		TagsRaw:      `"[\"science\",\"fair\"]"`,
		MetadataRaw:  `{"judge":"external"}`,
		Score:        "87.5",
		ArtifactsRaw: `[{"type":"document","name":"a.pdf","url":"files-1-a.pdf"},{"name":"incomplete"}]`,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"science", "fair"}, submission.Tags)
	assert.Equal(t, "external", submission.Metadata["judge"])
	assert.Equal(t, 87.5, submission.Metadata["score"])
	require.Len(t, submission.Artifacts, 1, "entries missing fields are dropped")
	assert.Equal(t, "/uploads/files-1-a.pdf", submission.Artifacts[0].URL)
}

func TestCreateSubmissionPlainTagFallsBack(t *testing.T) {
	uc, _, _, actor := newSubmissionFixture()

	submission, err := uc.Create(actor, dto.CreateSubmissionInput{
		Title:   "Evidence",
		TagsRaw: "robotics",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"robotics"}, submission.Tags)
}

func TestListAssignedFacultyOnly(t *testing.T) {
	uc, repo, criteria, actor := newSubmissionFixture()

	_, err := uc.ListAssigned(actor)
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)

	faculty := Actor{
		ID:                  uuid.New(),
		Role:                model.RoleFaculty,
		SchoolID:            actor.SchoolID,
		AssignedCriteriaIDs: []uuid.UUID{criteria.ID},
	}
	repo.Create(&model.StudentSubmission{Title: "Match", CriteriaID: &criteria.ID, SchoolID: actor.SchoolID})
	otherID := uuid.New()
	repo.Create(&model.StudentSubmission{Title: "Other", CriteriaID: &otherID, SchoolID: actor.SchoolID})

	submissions, err := uc.ListAssigned(faculty)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "Match", submissions[0].Title)

	// Empty assignment set short-circuits.
	none, err := uc.ListAssigned(Actor{ID: uuid.New(), Role: model.RoleFaculty, SchoolID: actor.SchoolID})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateStatus(t *testing.T) {
	uc, repo, _, actor := newSubmissionFixture()
	reviewer := Actor{ID: uuid.New(), Role: model.RoleEvaluator, SchoolID: actor.SchoolID}

	submission := &model.StudentSubmission{Title: "Evidence", VerificationStatus: model.StatusPending}
	repo.Create(submission)

	_, err := uc.UpdateStatus(reviewer, submission.ID, dto.UpdateStatusRequest{Status: "bogus"})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid status", appErr.Message)

	_, err = uc.UpdateStatus(reviewer, uuid.New(), dto.UpdateStatusRequest{Status: model.StatusApproved})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Submission not found", appErr.Message)

	updated, err := uc.UpdateStatus(reviewer, submission.ID, dto.UpdateStatusRequest{
		Status:          model.StatusApproved,
		ReviewerComment: "checks out",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.VerificationStatus)
	assert.Equal(t, "checks out", updated.ReviewerComment)
	require.NotNil(t, updated.ReviewedByID)
	assert.Equal(t, reviewer.ID, *updated.ReviewedByID)
	assert.NotNil(t, updated.ReviewedAt)
}

func TestListNormalizesLegacyArtifactURLs(t *testing.T) {
	uc, repo, _, actor := newSubmissionFixture()
	repo.Create(&model.StudentSubmission{
		Title:     "Legacy",
		StudentID: actor.ID,
		Artifacts: []model.Artifact{{Type: model.ArtifactDocument, Name: "a.pdf", URL: "files-1-a.pdf"}},
	})

	submissions, err := uc.ListMine(actor)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "/uploads/files-1-a.pdf", submissions[0].Artifacts[0].URL)
}

func TestListWithoutLimitReturnsWholeSet(t *testing.T) {
	uc, repo, _, actor := newSubmissionFixture()
	for i := 0; i < 3; i++ {
		id := uuid.New()
		repo.byID[id] = &model.StudentSubmission{ID: id, Title: "s", StudentID: actor.ID}
	}

	submissions, pagination, err := uc.List(actor, dto.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, submissions, 3)
	assert.Nil(t, pagination)
}

func TestListPaginates(t *testing.T) {
	uc, repo, _, actor := newSubmissionFixture()
	for i := 0; i < 5; i++ {
		id := uuid.New()
		repo.byID[id] = &model.StudentSubmission{ID: id, Title: "s", StudentID: actor.ID}
	}

	submissions, pagination, err := uc.List(actor, dto.SubmissionFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, submissions, 2)

	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 2, pagination.PageSize)
	assert.Equal(t, int64(5), pagination.TotalItems)
	assert.Equal(t, int64(3), pagination.TotalPages)
	assert.True(t, pagination.HasMore)
	assert.Equal(t, 3, pagination.From)
	assert.Equal(t, 4, pagination.To)
}

func TestListPastLastPage(t *testing.T) {
	uc, repo, _, actor := newSubmissionFixture()
	id := uuid.New()
	repo.byID[id] = &model.StudentSubmission{ID: id, Title: "s", StudentID: actor.ID}

	submissions, pagination, err := uc.List(actor, dto.SubmissionFilter{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, submissions)

	require.NotNil(t, pagination)
	assert.Equal(t, int64(1), pagination.TotalItems)
	assert.False(t, pagination.HasMore)
	assert.Equal(t, 0, pagination.From)
	assert.Equal(t, 0, pagination.To)
}
