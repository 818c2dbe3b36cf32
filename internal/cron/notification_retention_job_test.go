package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/logger"
)

type fakeRetentionStore struct {
	lastCutoff  time.Time
	deletedRows int64
	err         error
	called      int
}

func (f *fakeRetentionStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deletedRows, nil
}

func newRetentionJob(t *testing.T, store *fakeRetentionStore, retention int) *notificationRetentionJob {
	t.Helper()
	jobIface, err := NewNotificationRetentionJob(NotificationRetentionJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: store,
		Retention:  retention,
	})
	if err != nil {
		t.Fatalf("NewNotificationRetentionJob: %v", err)
	}
	job, ok := jobIface.(*notificationRetentionJob)
	if !ok {
		t.Fatalf("expected notificationRetentionJob, got %T", jobIface)
	}
	return job
}

func TestNotificationRetentionJobDeletesExpiredRows(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeRetentionStore{deletedRows: 42}
	job := newRetentionJob(t, store, 30)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.UTC().Add(-30 * 24 * time.Hour)
	if !store.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, store.lastCutoff)
	}
	if store.called != 1 {
		t.Fatalf("expected store called once, got %d", store.called)
	}
}

func TestNotificationRetentionJobDefaultsWindow(t *testing.T) {
	job := newRetentionJob(t, &fakeRetentionStore{}, 0)
	if job.retention != defaultRetentionDays {
		t.Fatalf("expected default retention %d, got %d", defaultRetentionDays, job.retention)
	}
}

func TestNotificationRetentionJobPropagatesErrors(t *testing.T) {
	store := &fakeRetentionStore{err: errors.New("boom")}
	job := newRetentionJob(t, store, 30)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
