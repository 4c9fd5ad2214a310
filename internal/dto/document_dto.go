package dto

import "github.com/google/uuid"

// UploadDocumentInput is built by the handler after the file has been saved.
type UploadDocumentInput struct {
	Title       string
	Description string
	CriteriaID  string
	Year        *int
	StoredName  string
}

type DocumentFilter struct {
	CriteriaID *uuid.UUID
	Year       *int
}
