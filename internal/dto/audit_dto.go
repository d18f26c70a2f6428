package dto

import (
	"time"

	"github.com/docuvia/docuvia-api/internal/models"
)

// RecordAuditRequest captures a new audit trail entry. All free-form fields
// are stored verbatim, including the source IP string.
type RecordAuditRequest struct {
	ActorID    uint                   `json:"actor_id" validate:"required"`
	Action     string                 `json:"action" validate:"required,min=1,max=255"`
	Details    string                 `json:"details" validate:"omitempty,max=4000"`
	DocumentID *uint                  `json:"document_id"`
	SourceIP   string                 `json:"source_ip" validate:"omitempty,max=64"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// AuditActionResponse serializes one audit row.
type AuditActionResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorName  string                 `json:"actor_name,omitempty"`
	Action     string                 `json:"action"`
	OccurredAt time.Time              `json:"occurred_at"`
	Details    string                 `json:"details"`
	DocumentID *uint                  `json:"document_id"`
	SourceIP   string                 `json:"source_ip"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// NewAuditActionResponse maps an audit row to its response shape.
func NewAuditActionResponse(action models.AuditAction) AuditActionResponse {
	return AuditActionResponse{
		ID:         action.ID,
		ActorID:    action.ActorID,
		ActorName:  action.Actor.FullName,
		Action:     action.Action,
		OccurredAt: action.OccurredAt,
		Details:    action.Details,
		DocumentID: action.DocumentID,
		SourceIP:   action.SourceIP,
		Metadata:   action.Metadata,
	}
}
