package models

import "time"

// ApprovalState enumerates workflow states for an approval record.
// Solicitado is the only non-terminal state.
type ApprovalState string

const (
	ApprovalStateSolicitado ApprovalState = "Solicitado"
	ApprovalStateAprobado   ApprovalState = "Aprobado"
	ApprovalStateRechazado  ApprovalState = "Rechazado"
)

// Valid reports whether the state is one of the recognised values.
func (s ApprovalState) Valid() bool {
	switch s {
	case ApprovalStateSolicitado, ApprovalStateAprobado, ApprovalStateRechazado:
		return true
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s ApprovalState) Terminal() bool {
	return s == ApprovalStateAprobado || s == ApprovalStateRechazado
}

// Priority enumerates approval priorities.
type Priority string

const (
	PriorityBaja    Priority = "Baja"
	PriorityMedia   Priority = "Media"
	PriorityAlta    Priority = "Alta"
	PriorityUrgente Priority = "Urgente"
)

// Valid reports whether the priority is one of the recognised values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityBaja, PriorityMedia, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// ApprovalRecord tracks one approval request for a document. Records are
// removed with their document, but the referenced approver cannot be deleted
// while records point at them.
type ApprovalRecord struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	DocumentID uint          `gorm:"not null;index" json:"document_id"`
	ApproverID uint          `gorm:"not null;index" json:"approver_id"`
	State      ApprovalState `gorm:"size:32;not null;default:Solicitado" json:"state"`
	ActionAt   time.Time     `json:"action_at"`
	Comments   string        `gorm:"type:text" json:"comments"`
	Priority   Priority      `gorm:"size:32;not null;default:Media" json:"priority"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
	Approver User     `gorm:"foreignKey:ApproverID" json:"-"`
}
