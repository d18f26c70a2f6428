package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
)

// ErrAuditNotFound indicates the referenced audit row does not exist.
var ErrAuditNotFound = errors.New("audit record not found")

// unspecifiedSourceIP is stored when the caller omits the IP string. The
// value is never derived from the connection.
const unspecifiedSourceIP = "unspecified"

// AuditService exposes the append-only audit trail. There is deliberately no
// update or delete operation.
type AuditService interface {
	Record(ctx context.Context, payload dto.RecordAuditRequest) (dto.AuditActionResponse, error)
	List(ctx context.Context) ([]dto.AuditActionResponse, error)
	Get(ctx context.Context, id uint) (dto.AuditActionResponse, error)
	ListByActor(ctx context.Context, actorID uint) ([]dto.AuditActionResponse, error)
}

type auditService struct {
	repo      repository.AuditRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuditService constructs the audit trail service.
func NewAuditService(repo repository.AuditRepository, users repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:      repo,
		users:     users,
		validator: validator,
		logger:    logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, payload dto.RecordAuditRequest) (dto.AuditActionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuditActionResponse{}, err
	}

	actor, err := s.users.FindByID(ctx, payload.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuditActionResponse{}, ErrUserNotFound
		}
		return dto.AuditActionResponse{}, err
	}

	sourceIP := strings.TrimSpace(payload.SourceIP)
	if sourceIP == "" {
		sourceIP = unspecifiedSourceIP
	}

	metadata := datatypes.JSONMap{}
	for key, value := range payload.Metadata {
		metadata[key] = value
	}

	action := models.AuditAction{
		ActorID:    actor.ID,
		Action:     strings.TrimSpace(payload.Action),
		OccurredAt: time.Now().UTC(),
		Details:    payload.Details,
		DocumentID: payload.DocumentID,
		SourceIP:   sourceIP,
		Metadata:   metadata,
	}

	if err := s.repo.Create(ctx, &action); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist audit action")
		return dto.AuditActionResponse{}, err
	}

	s.logger.Info().Uint("audit_id", action.ID).Uint("actor_id", actor.ID).Str("action", action.Action).Msg("action audited")

	action.Actor = actor
	return dto.NewAuditActionResponse(action), nil
}

func (s *auditService) List(ctx context.Context) ([]dto.AuditActionResponse, error) {
	actions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditActionResponse, 0, len(actions))
	for _, action := range actions {
		responses = append(responses, dto.NewAuditActionResponse(action))
	}
	return responses, nil
}

func (s *auditService) Get(ctx context.Context, id uint) (dto.AuditActionResponse, error) {
	action, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuditActionResponse{}, ErrAuditNotFound
		}
		return dto.AuditActionResponse{}, err
	}
	return dto.NewAuditActionResponse(action), nil
}

func (s *auditService) ListByActor(ctx context.Context, actorID uint) ([]dto.AuditActionResponse, error) {
	actions, err := s.repo.ListByActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditActionResponse, 0, len(actions))
	for _, action := range actions {
		responses = append(responses, dto.NewAuditActionResponse(action))
	}
	return responses, nil
}
