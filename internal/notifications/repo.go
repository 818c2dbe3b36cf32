package notifications

import (
	"context"
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for notifications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, rows []models.Notification) error
	List(ctx context.Context, params listNotificationsParams) ([]models.Notification, *pagination.Cursor, error)
	MarkSeen(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnseen(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listNotificationsParams struct {
	UserID     uuid.UUID
	Limit      int
	Cursor     *pagination.Cursor
	UnseenOnly bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// CreateBatch persists the rows in one bulk insert so a mid-dispatch crash
// cannot leave a partially notified recipient set behind.
func (r *repositoryImpl) CreateBatch(ctx context.Context, rows []models.Notification) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listNotificationsParams) ([]models.Notification, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_user_id = ?", params.UserID)
	if params.UnseenOnly {
		query = query.Where("seen = false")
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, nil, err
	}

	if len(notifications) > normalized {
		next := notifications[normalized]
		notifications = notifications[:normalized]
		return notifications, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return notifications, nil, nil
}

// MarkSeen flips the listed notifications to seen and reports how many rows
// actually changed. Rows already seen, or belonging to another recipient, do
// not count, which is what makes the operation idempotent.
func (r *repositoryImpl) MarkSeen(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_user_id = ? AND id IN ? AND seen = false", userID, ids).
		UpdateColumn("seen", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_user_id = ? AND seen = false", userID).
		UpdateColumn("seen", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) CountUnseen(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_user_id = ? AND seen = false", userID).
		Count(&count).Error
	return count, err
}

// DeleteByRelatedEntity removes every notification that points at the given
// entity, used when the owning challenge, idea, or comment is deleted.
func (r *repositoryImpl) DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("related_entity_id = ?", entityID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOlderThan prunes notifications created before the cutoff, regardless
// of seen state. The retention cron is its only caller.
func (r *repositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
