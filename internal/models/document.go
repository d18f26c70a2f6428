package models

import "time"

// DocumentStatus enumerates the lifecycle states of a document.
type DocumentStatus string

const (
	DocumentStatusPendiente  DocumentStatus = "Pendiente"
	DocumentStatusEnRevision DocumentStatus = "EnRevision"
	DocumentStatusAprobado   DocumentStatus = "Aprobado"
	DocumentStatusRechazado  DocumentStatus = "Rechazado"
)

// Valid reports whether the status is one of the recognised values.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusPendiente, DocumentStatusEnRevision, DocumentStatusAprobado, DocumentStatusRechazado:
		return true
	}
	return false
}

// Document is metadata about an uploaded file. StoragePath is a placeholder;
// file bytes are never handled by this service. Deleting a document removes
// its versions and approval records and nulls out notification references.
type Document struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	StoragePath    string         `gorm:"size:512" json:"storage_path"`
	CurrentVersion int            `gorm:"not null;default:1" json:"current_version"`
	OwnerID        uint           `gorm:"not null;index" json:"owner_id"`
	Status         DocumentStatus `gorm:"size:32;not null;default:Pendiente" json:"status"`
	Description    string         `gorm:"type:text" json:"description"`
	UploadedAt     time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
	ModifiedAt     time.Time      `gorm:"autoUpdateTime" json:"modified_at"`

	Owner         User              `gorm:"foreignKey:OwnerID" json:"-"`
	Versions      []DocumentVersion `gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Approvals     []ApprovalRecord  `gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Notifications []Notification    `gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// DocumentVersion is one revision of a document. The sequence number is
// caller-supplied and not checked for contiguity or uniqueness.
type DocumentVersion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DocumentID  uint      `gorm:"not null;index" json:"document_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	StoragePath string    `gorm:"size:512" json:"storage_path"`
	Sequence    int       `gorm:"not null" json:"sequence"`
	Comment     string    `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time `json:"created_at"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}
