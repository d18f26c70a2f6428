package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/models"
)

// DocumentRepository handles persistence for documents and their versions.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id uint) (models.Document, error)
	FindByIDWithDetail(ctx context.Context, id uint) (models.Document, error)
	List(ctx context.Context, ownerID *uint) ([]models.Document, error)
	Delete(ctx context.Context, doc *models.Document) error
	Save(ctx context.Context, doc *models.Document) error
	AppendVersion(ctx context.Context, doc *models.Document, version *models.DocumentVersion) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository constructs a repository backed by GORM.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (r *documentRepository) FindByIDWithDetail(ctx context.Context, id uint) (models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Versions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sequence DESC")
		}).
		First(&doc, id).Error; err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (r *documentRepository) List(ctx context.Context, ownerID *uint) ([]models.Document, error) {
	query := r.db.WithContext(ctx).Preload("Owner")
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var docs []models.Document
	if err := query.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes the document row; versions and approval records go with it
// and notification references are nulled by the store's cascade rules.
func (r *documentRepository) Delete(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Delete(doc).Error
}

func (r *documentRepository) Save(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// AppendVersion creates the version row and moves the document's current
// version pointer in one transaction.
func (r *documentRepository) AppendVersion(ctx context.Context, doc *models.Document, version *models.DocumentVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			return err
		}

		doc.CurrentVersion = version.Sequence
		doc.ModifiedAt = time.Now().UTC()
		return tx.Save(doc).Error
	})
}
