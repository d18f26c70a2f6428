package models

import "time"

// NotificationType enumerates the recognised notification tags.
type NotificationType string

const (
	NotificationSolicitudAprobacion NotificationType = "SolicitudAprobacion"
	NotificationAprobado            NotificationType = "Aprobado"
	NotificationRechazado           NotificationType = "Rechazado"
	NotificationNuevaVersion        NotificationType = "NuevaVersion"
)

// Valid reports whether the type is one of the recognised values.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSolicitudAprobacion, NotificationAprobado, NotificationRechazado, NotificationNuevaVersion:
		return true
	}
	return false
}

// Notification is a ledger row, not a delivered message. SentAt is stamped
// when the row is marked read; no dispatch mechanism exists. Deleting the
// receiver removes the row, deleting the related document nulls DocumentID.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	ReceiverID uint             `gorm:"not null;index" json:"receiver_id"`
	DocumentID *uint            `json:"document_id"`
	Type       NotificationType `gorm:"size:64;not null" json:"type"`
	Subject    string           `gorm:"size:255;not null" json:"subject"`
	Body       string           `gorm:"type:text" json:"body"`
	Read       bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time        `json:"created_at"`
	SentAt     *time.Time       `json:"sent_at"`

	Receiver User      `gorm:"foreignKey:ReceiverID" json:"-"`
	Document *Document `gorm:"foreignKey:DocumentID" json:"-"`
}
