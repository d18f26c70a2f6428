package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
)

// ErrNotificationNotFound indicates the referenced notification does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// ErrReceiverNotFound indicates the designated receiver does not exist.
var ErrReceiverNotFound = errors.New("receiver not found")

// NotificationService exposes the notification ledger. Rows are never
// delivered anywhere; marking read is the closest thing to "sending".
type NotificationService interface {
	Create(ctx context.Context, payload dto.CreateNotificationRequest) (dto.NotificationResponse, error)
	ListByReceiver(ctx context.Context, receiverID uint) ([]dto.NotificationResponse, error)
	ListUnreadByReceiver(ctx context.Context, receiverID uint) ([]dto.NotificationResponse, error)
	Get(ctx context.Context, id uint) (dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id uint) (dto.NotificationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewNotificationService constructs the notification ledger service.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		users:     users,
		validator: validator,
		logger:    logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *notificationService) Create(ctx context.Context, payload dto.CreateNotificationRequest) (dto.NotificationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NotificationResponse{}, err
	}

	if _, err := s.users.FindByID(ctx, payload.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrReceiverNotFound
		}
		return dto.NotificationResponse{}, err
	}

	notification := models.Notification{
		ReceiverID: payload.ReceiverID,
		DocumentID: payload.DocumentID,
		Type:       models.NotificationType(payload.Type),
		Subject:    strings.TrimSpace(payload.Subject),
		Body:       payload.Body,
		Read:       false,
	}

	if err := s.repo.Create(ctx, &notification); err != nil {
		s.logger.Error().Err(err).Msg("failed to create notification")
		return dto.NotificationResponse{}, err
	}

	s.logger.Info().Uint("notification_id", notification.ID).Uint("receiver_id", notification.ReceiverID).Msg("notification created")

	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) ListByReceiver(ctx context.Context, receiverID uint) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.ListByReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	return mapNotifications(notifications), nil
}

func (s *notificationService) ListUnreadByReceiver(ctx context.Context, receiverID uint) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.ListUnreadByReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	return mapNotifications(notifications), nil
}

func (s *notificationService) Get(ctx context.Context, id uint) (dto.NotificationResponse, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		return dto.NotificationResponse{}, err
	}
	return dto.NewNotificationResponse(notification), nil
}

// MarkRead is idempotent on the flag; the sent-at stamp moves on every call.
func (s *notificationService) MarkRead(ctx context.Context, id uint) (dto.NotificationResponse, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		return dto.NotificationResponse{}, err
	}

	now := time.Now().UTC()
	notification.Read = true
	notification.SentAt = &now

	if err := s.repo.Save(ctx, &notification); err != nil {
		return dto.NotificationResponse{}, err
	}

	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) Delete(ctx context.Context, id uint) error {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, &notification)
}

func mapNotifications(notifications []models.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, dto.NewNotificationResponse(notification))
	}
	return responses
}
