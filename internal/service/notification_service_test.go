package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
)

func newNotificationService(t *testing.T, db *gorm.DB) NotificationService {
	t.Helper()

	return NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestNotificationServiceCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(t, db)

	receiver := seedUser(t, db, "receiver@example.com", models.RoleSolicitante)

	notification, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: receiver.ID,
		Type:       string(models.NotificationAprobado),
		Subject:    "Document approved",
	})
	require.NoError(t, err)
	require.False(t, notification.Read)
	require.Nil(t, notification.SentAt)

	_, err = svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: 9999,
		Type:       string(models.NotificationAprobado),
		Subject:    "ghost",
	})
	require.ErrorIs(t, err, ErrReceiverNotFound)

	_, err = svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: receiver.ID,
		Type:       "Telegram",
		Subject:    "bad type",
	})
	require.Error(t, err)
}

func TestNotificationServiceMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(t, db)

	receiver := seedUser(t, db, "receiver@example.com", models.RoleSolicitante)
	created, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: receiver.ID,
		Type:       string(models.NotificationNuevaVersion),
		Subject:    "v2 uploaded",
	})
	require.NoError(t, err)

	first, err := svc.MarkRead(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, first.Read)
	require.NotNil(t, first.SentAt)

	// Marking again keeps the flag and restamps the timestamp.
	second, err := svc.MarkRead(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, second.Read)
	require.NotNil(t, second.SentAt)
	require.False(t, second.SentAt.Before(*first.SentAt))

	_, err = svc.MarkRead(context.Background(), 9999)
	require.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationServiceUnreadFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(t, db)

	receiver := seedUser(t, db, "receiver@example.com", models.RoleSolicitante)

	unread, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: receiver.ID,
		Type:       string(models.NotificationSolicitudAprobacion),
		Subject:    "review me",
	})
	require.NoError(t, err)
	read, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: receiver.ID,
		Type:       string(models.NotificationAprobado),
		Subject:    "done",
	})
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), read.ID)
	require.NoError(t, err)

	all, err := svc.ListByReceiver(context.Background(), receiver.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := svc.ListUnreadByReceiver(context.Background(), receiver.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, unread.ID, pending[0].ID)
}

func TestNotificationServiceDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(t, db)

	receiver := seedUser(t, db, "receiver@example.com", models.RoleSolicitante)
	created, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		ReceiverID: receiver.ID,
		Type:       string(models.NotificationRechazado),
		Subject:    "changes requested",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotificationNotFound)

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotificationNotFound)
}
