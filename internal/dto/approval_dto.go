package dto

import (
	"time"

	"github.com/docuvia/docuvia-api/internal/models"
)

// RequestApprovalRequest opens an approval workflow for a document.
type RequestApprovalRequest struct {
	DocumentID uint   `json:"document_id" validate:"required"`
	ApproverID uint   `json:"approver_id" validate:"required"`
	Comments   string `json:"comments" validate:"omitempty,max=4000"`
	Priority   string `json:"priority" validate:"omitempty,oneof=Baja Media Alta Urgente"`
}

// ApprovalDecisionRequest carries the comments attached to an approve or
// reject decision.
type ApprovalDecisionRequest struct {
	Comments string `json:"comments" validate:"omitempty,max=4000"`
}

// ApprovalResponse serializes an approval record with its document and
// approver names when they were preloaded.
type ApprovalResponse struct {
	ID           uint      `json:"id"`
	DocumentID   uint      `json:"document_id"`
	ApproverID   uint      `json:"approver_id"`
	State        string    `json:"state"`
	Priority     string    `json:"priority"`
	Comments     string    `json:"comments"`
	ActionAt     time.Time `json:"action_at"`
	DocumentName string    `json:"document_name,omitempty"`
	ApproverName string    `json:"approver_name,omitempty"`
}

// NewApprovalResponse maps an approval record to its response shape.
func NewApprovalResponse(record models.ApprovalRecord) ApprovalResponse {
	return ApprovalResponse{
		ID:           record.ID,
		DocumentID:   record.DocumentID,
		ApproverID:   record.ApproverID,
		State:        string(record.State),
		Priority:     string(record.Priority),
		Comments:     record.Comments,
		ActionAt:     record.ActionAt,
		DocumentName: record.Document.Name,
		ApproverName: record.Approver.FullName,
	}
}
