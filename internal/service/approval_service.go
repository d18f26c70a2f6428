package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
)

// ErrApprovalNotFound indicates the referenced approval record does not exist.
var ErrApprovalNotFound = errors.New("approval record not found")

// ErrApproverNotFound indicates the designated approver does not exist.
var ErrApproverNotFound = errors.New("approver not found")

// ErrApprovalFinalized indicates the record already reached a terminal state.
var ErrApprovalFinalized = errors.New("approval record already finalized")

// ApprovalService drives the approval workflow. The record state and the
// document status are two projections of one state machine:
// Solicitado -> {Aprobado, Rechazado}, both terminal. Each transition commits
// both projections in a single transaction.
type ApprovalService interface {
	Request(ctx context.Context, payload dto.RequestApprovalRequest) (dto.ApprovalResponse, error)
	Approve(ctx context.Context, id uint, payload dto.ApprovalDecisionRequest) (dto.ApprovalResponse, error)
	Reject(ctx context.Context, id uint, payload dto.ApprovalDecisionRequest) (dto.ApprovalResponse, error)
	Get(ctx context.Context, id uint) (dto.ApprovalResponse, error)
	ListPending(ctx context.Context) ([]dto.ApprovalResponse, error)
}

type approvalService struct {
	repo          repository.ApprovalRepository
	documents     repository.DocumentRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewApprovalService constructs the approval workflow service.
func NewApprovalService(
	repo repository.ApprovalRepository,
	documents repository.DocumentRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	validator *validator.Validate,
	logger zerolog.Logger,
) ApprovalService {
	return &approvalService{
		repo:          repo,
		documents:     documents,
		users:         users,
		notifications: notifications,
		validator:     validator,
		logger:        logger.With().Str("component", "approval_service").Logger(),
	}
}

func (s *approvalService) Request(ctx context.Context, payload dto.RequestApprovalRequest) (dto.ApprovalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApprovalResponse{}, err
	}

	doc, err := s.documents.FindByID(ctx, payload.DocumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApprovalResponse{}, ErrDocumentNotFound
		}
		return dto.ApprovalResponse{}, err
	}

	approver, err := s.users.FindByID(ctx, payload.ApproverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApprovalResponse{}, ErrApproverNotFound
		}
		return dto.ApprovalResponse{}, err
	}

	priority := models.Priority(payload.Priority)
	if payload.Priority == "" {
		priority = models.PriorityMedia
	}

	record := models.ApprovalRecord{
		DocumentID: doc.ID,
		ApproverID: approver.ID,
		State:      models.ApprovalStateSolicitado,
		ActionAt:   time.Now().UTC(),
		Comments:   payload.Comments,
		Priority:   priority,
	}

	doc.Status = models.DocumentStatusEnRevision
	if err := s.repo.CreateWithDocument(ctx, &record, &doc); err != nil {
		s.logger.Error().Err(err).Uint("document_id", doc.ID).Msg("failed to create approval request")
		return dto.ApprovalResponse{}, err
	}

	s.notify(ctx, approver.ID, &doc.ID, models.NotificationSolicitudAprobacion,
		fmt.Sprintf("Approval requested for %s", doc.Name), payload.Comments)

	s.logger.Info().
		Uint("approval_id", record.ID).
		Uint("document_id", doc.ID).
		Uint("approver_id", approver.ID).
		Msg("approval requested")

	record.Document = doc
	record.Approver = approver
	return dto.NewApprovalResponse(record), nil
}

func (s *approvalService) Approve(ctx context.Context, id uint, payload dto.ApprovalDecisionRequest) (dto.ApprovalResponse, error) {
	return s.decide(ctx, id, payload, models.ApprovalStateAprobado)
}

func (s *approvalService) Reject(ctx context.Context, id uint, payload dto.ApprovalDecisionRequest) (dto.ApprovalResponse, error) {
	return s.decide(ctx, id, payload, models.ApprovalStateRechazado)
}

// decide applies a terminal transition. If the document was deleted after
// the record was created the record-side transition still succeeds, matching
// the store's cascade model where the record would have gone with it.
func (s *approvalService) decide(ctx context.Context, id uint, payload dto.ApprovalDecisionRequest, state models.ApprovalState) (dto.ApprovalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApprovalResponse{}, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApprovalResponse{}, ErrApprovalNotFound
		}
		return dto.ApprovalResponse{}, err
	}

	if record.State.Terminal() {
		return dto.ApprovalResponse{}, ErrApprovalFinalized
	}

	record.State = state
	record.Comments = payload.Comments
	record.ActionAt = time.Now().UTC()

	var docForUpdate *models.Document
	doc, err := s.documents.FindByID(ctx, record.DocumentID)
	switch {
	case err == nil:
		doc.Status = models.DocumentStatus(state)
		docForUpdate = &doc
	case errors.Is(err, gorm.ErrRecordNotFound):
		// document deleted underneath the record
	default:
		return dto.ApprovalResponse{}, err
	}

	if err := s.repo.SaveWithDocument(ctx, &record, docForUpdate); err != nil {
		s.logger.Error().Err(err).Uint("approval_id", record.ID).Msg("failed to finalize approval")
		return dto.ApprovalResponse{}, err
	}

	if docForUpdate != nil {
		notificationType := models.NotificationAprobado
		if state == models.ApprovalStateRechazado {
			notificationType = models.NotificationRechazado
		}
		s.notify(ctx, doc.OwnerID, &doc.ID, notificationType,
			fmt.Sprintf("Document %s was %s", doc.Name, string(state)), payload.Comments)
	}

	s.logger.Info().
		Uint("approval_id", record.ID).
		Str("state", string(state)).
		Msg("approval finalized")

	return dto.NewApprovalResponse(record), nil
}

func (s *approvalService) Get(ctx context.Context, id uint) (dto.ApprovalResponse, error) {
	record, err := s.repo.FindByIDWithDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApprovalResponse{}, ErrApprovalNotFound
		}
		return dto.ApprovalResponse{}, err
	}
	return dto.NewApprovalResponse(record), nil
}

func (s *approvalService) ListPending(ctx context.Context) ([]dto.ApprovalResponse, error) {
	records, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApprovalResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.NewApprovalResponse(record))
	}
	return responses, nil
}

// notify writes a ledger row; workflow progress never depends on it.
func (s *approvalService) notify(ctx context.Context, receiverID uint, documentID *uint, notificationType models.NotificationType, subject, body string) {
	notification := models.Notification{
		ReceiverID: receiverID,
		DocumentID: documentID,
		Type:       notificationType,
		Subject:    subject,
		Body:       body,
	}
	if err := s.notifications.Create(ctx, &notification); err != nil {
		s.logger.Warn().Err(err).Uint("receiver_id", receiverID).Msg("failed to record workflow notification")
	}
}
