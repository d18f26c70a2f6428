package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
)

// ErrDocumentNotFound indicates the referenced document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// ErrOwnerNotFound indicates the designated owner does not exist.
var ErrOwnerNotFound = errors.New("owner not found")

// DocumentService exposes document metadata use cases. No operation ever
// touches file bytes; storage paths are carried as-is.
type DocumentService interface {
	Create(ctx context.Context, payload dto.CreateDocumentRequest) (dto.DocumentSummary, error)
	List(ctx context.Context, ownerID *uint) ([]dto.DocumentSummary, error)
	Get(ctx context.Context, id uint) (dto.DocumentDetailResponse, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]dto.DocumentSummary, error)
	Delete(ctx context.Context, id uint) error
	AddVersion(ctx context.Context, documentID uint, payload dto.AddVersionRequest) (dto.DocumentVersionResponse, error)
}

type documentService struct {
	repo          repository.DocumentRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewDocumentService constructs the document service.
func NewDocumentService(
	repo repository.DocumentRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	validator *validator.Validate,
	logger zerolog.Logger,
) DocumentService {
	return &documentService{
		repo:          repo,
		users:         users,
		notifications: notifications,
		validator:     validator,
		logger:        logger.With().Str("component", "document_service").Logger(),
	}
}

func (s *documentService) Create(ctx context.Context, payload dto.CreateDocumentRequest) (dto.DocumentSummary, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DocumentSummary{}, err
	}

	owner, err := s.users.FindByID(ctx, payload.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DocumentSummary{}, ErrOwnerNotFound
		}
		return dto.DocumentSummary{}, err
	}

	doc := models.Document{
		Name:           strings.TrimSpace(payload.Name),
		StoragePath:    payload.StoragePath,
		CurrentVersion: 1,
		OwnerID:        owner.ID,
		Status:         models.DocumentStatusPendiente,
		Description:    payload.Description,
	}

	if err := s.repo.Create(ctx, &doc); err != nil {
		s.logger.Error().Err(err).Msg("failed to create document")
		return dto.DocumentSummary{}, err
	}

	doc.Owner = owner
	s.logger.Info().Uint("document_id", doc.ID).Uint("owner_id", owner.ID).Msg("document created")

	return dto.NewDocumentSummary(doc), nil
}

func (s *documentService) List(ctx context.Context, ownerID *uint) ([]dto.DocumentSummary, error) {
	docs, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, dto.NewDocumentSummary(doc))
	}
	return summaries, nil
}

func (s *documentService) Get(ctx context.Context, id uint) (dto.DocumentDetailResponse, error) {
	doc, err := s.repo.FindByIDWithDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DocumentDetailResponse{}, ErrDocumentNotFound
		}
		return dto.DocumentDetailResponse{}, err
	}
	return dto.NewDocumentDetailResponse(doc), nil
}

func (s *documentService) ListByOwner(ctx context.Context, ownerID uint) ([]dto.DocumentSummary, error) {
	return s.List(ctx, &ownerID)
}

func (s *documentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, &doc); err != nil {
		s.logger.Error().Err(err).Uint("document_id", id).Msg("failed to delete document")
		return err
	}

	s.logger.Info().Uint("document_id", id).Msg("document deleted")
	return nil
}

// AddVersion appends a revision with the caller-supplied sequence number and
// writes a NuevaVersion row into the owner's notification ledger.
func (s *documentService) AddVersion(ctx context.Context, documentID uint, payload dto.AddVersionRequest) (dto.DocumentVersionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DocumentVersionResponse{}, err
	}

	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DocumentVersionResponse{}, ErrDocumentNotFound
		}
		return dto.DocumentVersionResponse{}, err
	}

	version := models.DocumentVersion{
		DocumentID:  doc.ID,
		FileName:    strings.TrimSpace(payload.FileName),
		StoragePath: payload.StoragePath,
		Sequence:    payload.Sequence,
		Comment:     payload.Comment,
	}

	if err := s.repo.AppendVersion(ctx, &doc, &version); err != nil {
		s.logger.Error().Err(err).Uint("document_id", doc.ID).Msg("failed to append version")
		return dto.DocumentVersionResponse{}, err
	}

	notification := models.Notification{
		ReceiverID: doc.OwnerID,
		DocumentID: &doc.ID,
		Type:       models.NotificationNuevaVersion,
		Subject:    fmt.Sprintf("New version %d of %s", version.Sequence, doc.Name),
		Body:       version.Comment,
	}
	if err := s.notifications.Create(ctx, &notification); err != nil {
		s.logger.Warn().Err(err).Uint("document_id", doc.ID).Msg("failed to record version notification")
	}

	s.logger.Info().Uint("document_id", doc.ID).Int("sequence", version.Sequence).Msg("version appended")

	return dto.DocumentVersionResponse{
		ID:        version.ID,
		FileName:  version.FileName,
		Sequence:  version.Sequence,
		Comment:   version.Comment,
		CreatedAt: version.CreatedAt,
	}, nil
}
