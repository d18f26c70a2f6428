package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/models"
)

// ApprovalRepository handles persistence for approval records. Operations
// that touch both the record and its document commit in one transaction so
// the two projections cannot drift apart.
type ApprovalRepository interface {
	CreateWithDocument(ctx context.Context, record *models.ApprovalRecord, doc *models.Document) error
	FindByID(ctx context.Context, id uint) (models.ApprovalRecord, error)
	FindByIDWithDetail(ctx context.Context, id uint) (models.ApprovalRecord, error)
	ListPending(ctx context.Context) ([]models.ApprovalRecord, error)
	SaveWithDocument(ctx context.Context, record *models.ApprovalRecord, doc *models.Document) error
}

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository constructs a repository backed by GORM.
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) CreateWithDocument(ctx context.Context, record *models.ApprovalRecord, doc *models.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Save(doc).Error
	})
}

func (r *approvalRepository) FindByID(ctx context.Context, id uint) (models.ApprovalRecord, error) {
	var record models.ApprovalRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.ApprovalRecord{}, err
	}
	return record, nil
}

func (r *approvalRepository) FindByIDWithDetail(ctx context.Context, id uint) (models.ApprovalRecord, error) {
	var record models.ApprovalRecord
	if err := r.db.WithContext(ctx).
		Preload("Document").
		Preload("Approver").
		First(&record, id).Error; err != nil {
		return models.ApprovalRecord{}, err
	}
	return record, nil
}

func (r *approvalRepository) ListPending(ctx context.Context) ([]models.ApprovalRecord, error) {
	var records []models.ApprovalRecord
	if err := r.db.WithContext(ctx).
		Where("state = ?", models.ApprovalStateSolicitado).
		Preload("Document").
		Preload("Approver").
		Order("action_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SaveWithDocument persists the record and, when doc is non-nil, the document
// in the same transaction. A nil doc covers the case where the document was
// deleted after the record was created: the record-side transition still
// commits alone.
func (r *approvalRepository) SaveWithDocument(ctx context.Context, record *models.ApprovalRecord, doc *models.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		if doc != nil {
			return tx.Save(doc).Error
		}
		return nil
	})
}
