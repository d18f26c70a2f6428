package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/docuvia/docuvia-api/internal/models"
)

// AuditRepository persists the append-only audit trail. There is no update
// or delete surface.
type AuditRepository interface {
	Create(ctx context.Context, action *models.AuditAction) error
	FindByID(ctx context.Context, id uint) (models.AuditAction, error)
	List(ctx context.Context) ([]models.AuditAction, error)
	ListByActor(ctx context.Context, actorID uint) ([]models.AuditAction, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository constructs a repository backed by GORM.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, action *models.AuditAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

func (r *auditRepository) FindByID(ctx context.Context, id uint) (models.AuditAction, error) {
	var action models.AuditAction
	if err := r.db.WithContext(ctx).Preload("Actor").First(&action, id).Error; err != nil {
		return models.AuditAction{}, err
	}
	return action, nil
}

func (r *auditRepository) List(ctx context.Context) ([]models.AuditAction, error) {
	var actions []models.AuditAction
	if err := r.db.WithContext(ctx).
		Preload("Actor").
		Order("occurred_at DESC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *auditRepository) ListByActor(ctx context.Context, actorID uint) ([]models.AuditAction, error) {
	var actions []models.AuditAction
	if err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Preload("Actor").
		Order("occurred_at DESC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}
