package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/logger"
)

const defaultRetentionDays = 90

// retentionStore is the slice of the notifications repository the job needs.
type retentionStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationRetentionJobParams configure the retention job.
type NotificationRetentionJobParams struct {
	Logger     *logger.Logger
	Repository retentionStore
	Retention  int
}

// NewNotificationRetentionJob prunes notifications older than the retention
// window, seen or not. Notifications are advisory, so aging them out is safe.
func NewNotificationRetentionJob(params NotificationRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultRetentionDays
	}
	return &notificationRetentionJob{
		logg:      params.Logger,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type notificationRetentionJob struct {
	logg      *logger.Logger
	repo      retentionStore
	retention int
	now       func() time.Time
}

func (j *notificationRetentionJob) Name() string { return "notification-retention" }

func (j *notificationRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("notification retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "notification retention complete")
	return nil
}
