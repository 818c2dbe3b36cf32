package actions

import (
	"context"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is the unique key of one user's stance on one target.
type Identity struct {
	UserID     uuid.UUID
	TargetID   uuid.UUID
	TargetType enums.TargetType
	ActionType enums.ActionType
}

// Repository exposes persistence helpers for user actions.
type Repository interface {
	FindByIdentity(ctx context.Context, identity Identity) (*models.UserAction, error)
	Insert(ctx context.Context, identity Identity) (*models.UserAction, error)
	DeleteByIdentity(ctx context.Context, identity Identity) (int64, error)
	CountByTarget(ctx context.Context, targetID uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an actions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) FindByIdentity(ctx context.Context, identity Identity) (*models.UserAction, error) {
	var action models.UserAction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ? AND action_type = ?",
			identity.UserID, identity.TargetID, identity.TargetType, identity.ActionType).
		First(&action).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

// Insert creates the action row. The unique constraint on the identity tuple
// is the authority under concurrent toggles; violations surface unchanged so
// the service can take the removal branch.
func (r *repositoryImpl) Insert(ctx context.Context, identity Identity) (*models.UserAction, error) {
	action := &models.UserAction{
		UserID:     identity.UserID,
		TargetID:   identity.TargetID,
		TargetType: identity.TargetType,
		ActionType: identity.ActionType,
	}
	if err := r.db.WithContext(ctx).Create(action).Error; err != nil {
		return nil, err
	}
	return action, nil
}

func (r *repositoryImpl) DeleteByIdentity(ctx context.Context, identity Identity) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ? AND action_type = ?",
			identity.UserID, identity.TargetID, identity.TargetType, identity.ActionType).
		Delete(&models.UserAction{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) CountByTarget(ctx context.Context, targetID uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error) {
	type countRow struct {
		ActionType enums.ActionType `gorm:"column:action_type"`
		Total      int64            `gorm:"column:total"`
	}

	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.UserAction{}).
		Select("action_type, COUNT(*) AS total").
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Group("action_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.ActionType]int64, len(enums.ActionTypes()))
	for _, actionType := range enums.ActionTypes() {
		counts[actionType] = 0
	}
	for _, row := range rows {
		counts[row.ActionType] = row.Total
	}
	return counts, nil
}
