package usecase

import (
	"strconv"
	"time"

	"github.com/accredhub/backend/internal/dto"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/response"
	"github.com/accredhub/backend/internal/util"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type SubmissionRepo interface {
	Create(submission *model.StudentSubmission) error
	Save(submission *model.StudentSubmission) error
	FindByID(id uuid.UUID) (*model.StudentSubmission, error)
	FindByStudent(studentID uuid.UUID, schoolID *uuid.UUID) ([]model.StudentSubmission, error)
	List(filter dto.SubmissionFilter, schoolID *uuid.UUID) ([]model.StudentSubmission, int64, error)
	FindByCriteriaIDs(criteriaIDs []uuid.UUID, schoolID *uuid.UUID) ([]model.StudentSubmission, error)
	FindAll(criteriaID *uuid.UUID) ([]model.StudentSubmission, error)
}

type SubmissionCriteriaRepo interface {
	FindByCode(code string) (*model.Criteria, error)
}

type SubmissionUsecase struct {
	submissions SubmissionRepo
	criteria    SubmissionCriteriaRepo
}

func NewSubmissionUsecase(submissions SubmissionRepo, criteria SubmissionCriteriaRepo) *SubmissionUsecase {
	return &SubmissionUsecase{submissions: submissions, criteria: criteria}
}

// Create files a new evidence record. Artifacts come from two sources merged
// in order: uploaded files (classified by extension) and caller-declared
// artifacts from the body (dropped silently unless they carry type, url and
// name). Metadata may arrive as a JSON string or not at all; a scalar score
// form field is folded into it, coerced to a number when parseable.
func (uc *SubmissionUsecase) Create(actor Actor, input dto.CreateSubmissionInput) (*model.StudentSubmission, error) {
	if input.Title == "" {
		return nil, util.ErrValidation("title is required")
	}

	var criteriaID *uuid.UUID
	if input.CriteriaCode != "" {
		criteria, err := uc.criteria.FindByCode(input.CriteriaCode)
		if err != nil {
			return nil, err
		}
		if criteria == nil {
			return nil, util.ErrNotFound("Criteria not found")
		}
		criteriaID = &criteria.ID
	}

	artifacts := make([]model.Artifact, 0, len(input.Files))
	for _, f := range input.Files {
		artifacts = append(artifacts, model.Artifact{
			Type: util.ClassifyArtifact(f.OriginalName),
			Name: f.OriginalName,
			URL:  util.UploadPrefix + f.StoredName,
		})
	}
	artifacts = append(artifacts, decodeBodyArtifacts(input.ArtifactsRaw)...)

	metadata := decodeMetadata(input.MetadataRaw)
	if input.Score != "" {
		if n, err := strconv.ParseFloat(input.Score, 64); err == nil {
			metadata["score"] = n
		} else {
			metadata["score"] = input.Score
		}
	}

	submission := &model.StudentSubmission{
		StudentID:          actor.ID,
		SchoolID:           actor.SchoolID,
		CriteriaID:         criteriaID,
		CriteriaCode:       input.CriteriaCode,
		Title:              input.Title,
		Description:        input.Description,
		CourseCode:         input.CourseCode,
		Semester:           input.Semester,
		Tags:               decodeTags(input.TagsRaw),
		DateFrom:           parseDate(input.DateFrom),
		DateTo:             parseDate(input.DateTo),
		Metadata:           metadata,
		Artifacts:          artifacts,
		VerificationStatus: model.StatusPending,
	}
	if err := uc.submissions.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (uc *SubmissionUsecase) ListMine(actor Actor) ([]model.StudentSubmission, error) {
	submissions, err := uc.submissions.FindByStudent(actor.ID, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	return normalizeAll(submissions), nil
}

func (uc *SubmissionUsecase) List(actor Actor, filter dto.SubmissionFilter) ([]model.StudentSubmission, *response.Pagination, error) {
	submissions, total, err := uc.submissions.List(filter, actor.SchoolID)
	if err != nil {
		return nil, nil, err
	}
	return normalizeAll(submissions), buildPagination(filter, len(submissions), total), nil
}

// buildPagination describes the page the filter selected. A non-positive
// limit means the caller asked for the whole set, so no pagination applies.
func buildPagination(filter dto.SubmissionFilter, count int, total int64) *response.Pagination {
	if filter.Limit <= 0 {
		return nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   filter.Limit,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}
	if count > 0 {
		pagination.From = (page-1)*filter.Limit + 1
		pagination.To = (page-1)*filter.Limit + count
	}
	return pagination
}

// ListForEvaluation lists submissions across every school, optionally
// narrowed to one criteria. Evaluators review globally, so no tenant filter.
func (uc *SubmissionUsecase) ListForEvaluation(criteriaID *uuid.UUID) ([]model.StudentSubmission, error) {
	submissions, err := uc.submissions.FindAll(criteriaID)
	if err != nil {
		return nil, err
	}
	return normalizeAll(submissions), nil
}

func (uc *SubmissionUsecase) ListAssigned(actor Actor) ([]model.StudentSubmission, error) {
	if actor.Role != model.RoleFaculty {
		return nil, util.ErrForbidden("Forbidden")
	}
	if len(actor.AssignedCriteriaIDs) == 0 {
		return []model.StudentSubmission{}, nil
	}
	submissions, err := uc.submissions.FindByCriteriaIDs(actor.AssignedCriteriaIDs, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	return normalizeAll(submissions), nil
}

func (uc *SubmissionUsecase) UpdateStatus(actor Actor, id uuid.UUID, req dto.UpdateStatusRequest) (*model.StudentSubmission, error) {
	if !model.ValidStatus(req.Status) {
		return nil, util.ErrValidation("Invalid status")
	}
	submission, err := uc.submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, util.ErrNotFound("Submission not found")
	}

	now := time.Now()
	reviewerID := actor.ID
	submission.VerificationStatus = req.Status
	submission.ReviewerComment = req.ReviewerComment
	submission.ReviewedByID = &reviewerID
	submission.ReviewedAt = &now
	if err := uc.submissions.Save(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// decodeBodyArtifacts decodes the duck-typed artifacts form value: a JSON
// array, possibly serialized as a string. Entries missing type, url or name
// are dropped.
func decodeBodyArtifacts(raw string) []model.Artifact {
	if raw == "" {
		return nil
	}
	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		parsed = gjson.Parse(parsed.String())
	}
	if !parsed.IsArray() {
		return nil
	}
	var artifacts []model.Artifact
	parsed.ForEach(func(_, item gjson.Result) bool {
		t := item.Get("type").String()
		u := item.Get("url").String()
		n := item.Get("name").String()
		if t == "" || u == "" || n == "" {
			return true
		}
		artifacts = append(artifacts, model.Artifact{
			Type: t,
			Name: n,
			URL:  util.NormalizeArtifactURL(u),
		})
		return true
	})
	return artifacts
}

func decodeMetadata(raw string) map[string]any {
	meta := map[string]any{}
	if raw == "" {
		return meta
	}
	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		parsed = gjson.Parse(parsed.String())
	}
	if obj, ok := parsed.Value().(map[string]any); ok {
		meta = obj
	}
	return meta
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		parsed = gjson.Parse(parsed.String())
	}
	if !parsed.IsArray() {
		return []string{raw}
	}
	var tags []string
	parsed.ForEach(func(_, item gjson.Result) bool {
		tags = append(tags, item.String())
		return true
	})
	return tags
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func normalizeAll(submissions []model.StudentSubmission) []model.StudentSubmission {
	for i := range submissions {
		submissions[i].Artifacts = util.NormalizeArtifacts(submissions[i].Artifacts)
	}
	return submissions
}
