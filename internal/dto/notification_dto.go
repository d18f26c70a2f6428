package dto

import (
	"time"

	"github.com/docuvia/docuvia-api/internal/models"
)

// CreateNotificationRequest inserts a new row into the notification ledger.
type CreateNotificationRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	DocumentID *uint  `json:"document_id"`
	Type       string `json:"type" validate:"required,oneof=SolicitudAprobacion Aprobado Rechazado NuevaVersion"`
	Subject    string `json:"subject" validate:"required,min=1,max=255"`
	Body       string `json:"body" validate:"omitempty,max=8000"`
}

// NotificationResponse serializes one ledger row.
type NotificationResponse struct {
	ID         uint       `json:"id"`
	ReceiverID uint       `json:"receiver_id"`
	DocumentID *uint      `json:"document_id"`
	Type       string     `json:"type"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"created_at"`
	SentAt     *time.Time `json:"sent_at"`
}

// NewNotificationResponse maps a notification row to its response shape.
func NewNotificationResponse(notification models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         notification.ID,
		ReceiverID: notification.ReceiverID,
		DocumentID: notification.DocumentID,
		Type:       string(notification.Type),
		Subject:    notification.Subject,
		Body:       notification.Body,
		Read:       notification.Read,
		CreatedAt:  notification.CreatedAt,
		SentAt:     notification.SentAt,
	}
}
