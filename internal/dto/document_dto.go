package dto

import (
	"time"

	"github.com/docuvia/docuvia-api/internal/models"
)

// CreateDocumentRequest captures metadata for a new document. File bytes are
// never accepted here; the storage path is an inert pointer.
type CreateDocumentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	StoragePath string `json:"storage_path" validate:"omitempty,max=512"`
	OwnerID     uint   `json:"owner_id" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=4000"`
}

// AddVersionRequest appends a new revision to an existing document.
type AddVersionRequest struct {
	FileName    string `json:"file_name" validate:"required,min=1,max=255"`
	StoragePath string `json:"storage_path" validate:"omitempty,max=512"`
	Sequence    int    `json:"sequence" validate:"required,min=1"`
	Comment     string `json:"comment" validate:"omitempty,max=4000"`
}

// DocumentSummary is the list-view projection of a document.
type DocumentSummary struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	CurrentVersion int       `json:"current_version"`
	Status         string    `json:"status"`
	OwnerID        uint      `json:"owner_id"`
	OwnerName      string    `json:"owner_name,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// DocumentVersionResponse serializes one revision of a document.
type DocumentVersionResponse struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	Sequence  int       `json:"sequence"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentDetailResponse is the single-document projection including the
// owner and the version history.
type DocumentDetailResponse struct {
	ID             uint                      `json:"id"`
	Name           string                    `json:"name"`
	StoragePath    string                    `json:"storage_path"`
	CurrentVersion int                       `json:"current_version"`
	Status         string                    `json:"status"`
	Description    string                    `json:"description"`
	UploadedAt     time.Time                 `json:"uploaded_at"`
	ModifiedAt     time.Time                 `json:"modified_at"`
	Owner          DocumentOwner             `json:"owner"`
	Versions       []DocumentVersionResponse `json:"versions"`
}

// DocumentOwner is the embedded owner projection.
type DocumentOwner struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// NewDocumentSummary maps a document model to its list projection.
func NewDocumentSummary(doc models.Document) DocumentSummary {
	return DocumentSummary{
		ID:             doc.ID,
		Name:           doc.Name,
		CurrentVersion: doc.CurrentVersion,
		Status:         string(doc.Status),
		OwnerID:        doc.OwnerID,
		OwnerName:      doc.Owner.FullName,
		UploadedAt:     doc.UploadedAt,
		ModifiedAt:     doc.ModifiedAt,
	}
}

// NewDocumentDetailResponse maps a document with preloaded owner and
// versions to its detail projection.
func NewDocumentDetailResponse(doc models.Document) DocumentDetailResponse {
	versions := make([]DocumentVersionResponse, 0, len(doc.Versions))
	for _, v := range doc.Versions {
		versions = append(versions, DocumentVersionResponse{
			ID:        v.ID,
			FileName:  v.FileName,
			Sequence:  v.Sequence,
			Comment:   v.Comment,
			CreatedAt: v.CreatedAt,
		})
	}

	return DocumentDetailResponse{
		ID:             doc.ID,
		Name:           doc.Name,
		StoragePath:    doc.StoragePath,
		CurrentVersion: doc.CurrentVersion,
		Status:         string(doc.Status),
		Description:    doc.Description,
		UploadedAt:     doc.UploadedAt,
		ModifiedAt:     doc.ModifiedAt,
		Owner: DocumentOwner{
			ID:       doc.Owner.ID,
			FullName: doc.Owner.FullName,
			Email:    doc.Owner.Email,
		},
		Versions: versions,
	}
}
