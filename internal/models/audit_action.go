package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction is an append-only record of who did what, when and from where.
// The IP string is whatever the caller supplied, never derived from the
// connection. Rows outlive their actor: the user link is RESTRICT, not
// cascade, so audit history blocks hard deletion of the actor.
type AuditAction struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"not null;index" json:"actor_id"`
	Action     string            `gorm:"size:255;not null" json:"action"`
	OccurredAt time.Time         `gorm:"index" json:"occurred_at"`
	Details    string            `gorm:"type:text" json:"details"`
	DocumentID *uint             `json:"document_id"`
	SourceIP   string            `gorm:"size:64" json:"source_ip"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`

	Actor User `gorm:"foreignKey:ActorID" json:"-"`
}
