package comments

import (
	"context"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes comment persistence operations.
type Repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByTarget(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a comments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *repositoryImpl) ListByTarget(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
