package dto

// UploadedFile is a multipart file already saved to disk by the handler.
type UploadedFile struct {
	OriginalName string
	StoredName   string
}

// CreateSubmissionInput is the normalized multipart payload. ArtifactsRaw,
// MetadataRaw and TagsRaw hold the raw form values, which may be JSON strings
// or empty; the usecase decodes them.
type CreateSubmissionInput struct {
	Title        string
	Description  string
	CriteriaCode string
	CourseCode   string
	Semester     string
	TagsRaw      string
	DateFrom     string
	DateTo       string
	MetadataRaw  string
	Score        string
	ArtifactsRaw string
	Files        []UploadedFile
}

type UpdateStatusRequest struct {
	Status          string `json:"status"`
	ReviewerComment string `json:"reviewerComment"`
}

type SubmissionFilter struct {
	CriteriaCode string
	Status       string
	Page         int
	Limit        int
}
