package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	notifications := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  related_entity_id TEXT NOT NULL,
  recipient_user_id TEXT NOT NULL,
  initiator_user_id TEXT NOT NULL,
  seen INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(notifications).Error)
	return db
}

func seedNotification(t *testing.T, repo Repository, recipient, related uuid.UUID, createdAt time.Time) models.Notification {
	t.Helper()
	row := models.Notification{
		ID:              uuid.New(),
		Type:            enums.EventIdeaCommented,
		Title:           "New Comment",
		Description:     "Someone commented on the Idea: 'X'",
		RelatedEntityID: related,
		RecipientID:     recipient,
		InitiatorID:     uuid.New(),
		CreatedAt:       createdAt,
	}
	require.NoError(t, repo.CreateBatch(context.Background(), []models.Notification{row}))
	return row
}

func TestRepository_CreateBatchAndList(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	recipient := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	older := seedNotification(t, repo, recipient, uuid.New(), base.Add(-2*time.Hour))
	newer := seedNotification(t, repo, recipient, uuid.New(), base)
	seedNotification(t, repo, uuid.New(), uuid.New(), base) // other recipient

	rows, cursor, err := repo.List(ctx, listNotificationsParams{UserID: recipient, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, cursor)
	assert.Equal(t, newer.ID, rows[0].ID, "newest first")
	assert.Equal(t, older.ID, rows[1].ID)
}

func TestRepository_ListPaginates(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	recipient := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		seedNotification(t, repo, recipient, uuid.New(), base.Add(time.Duration(-i)*time.Hour))
	}

	first, cursor, err := repo.List(ctx, listNotificationsParams{UserID: recipient, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, cursor)

	rest, next, err := repo.List(ctx, listNotificationsParams{UserID: recipient, Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, next)
}

func TestRepository_MarkSeenIdempotent(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	recipient := uuid.New()
	row := seedNotification(t, repo, recipient, uuid.New(), time.Now().UTC())

	modified, err := repo.MarkSeen(ctx, recipient, []uuid.UUID{row.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, modified)

	modified, err = repo.MarkSeen(ctx, recipient, []uuid.UUID{row.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, modified, "second mark must modify nothing")

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", row.ID).Error)
	assert.True(t, stored.Seen)
}

func TestRepository_MarkSeenScopedToRecipient(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	recipient := uuid.New()
	row := seedNotification(t, repo, recipient, uuid.New(), time.Now().UTC())

	modified, err := repo.MarkSeen(ctx, uuid.New(), []uuid.UUID{row.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, modified, "another user's mark must not apply")
}

func TestRepository_MarkAllSeenAndCountUnseen(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	recipient := uuid.New()
	now := time.Now().UTC()
	seedNotification(t, repo, recipient, uuid.New(), now)
	seedNotification(t, repo, recipient, uuid.New(), now)

	count, err := repo.CountUnseen(ctx, recipient)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	modified, err := repo.MarkAllSeen(ctx, recipient)
	require.NoError(t, err)
	assert.EqualValues(t, 2, modified)

	count, err = repo.CountUnseen(ctx, recipient)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestRepository_DeleteByRelatedEntity(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	related := uuid.New()
	now := time.Now().UTC()
	seedNotification(t, repo, uuid.New(), related, now)
	seedNotification(t, repo, uuid.New(), related, now)
	kept := seedNotification(t, repo, uuid.New(), uuid.New(), now)

	removed, err := repo.DeleteByRelatedEntity(ctx, related)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", kept.ID).Error)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedNotification(t, repo, uuid.New(), uuid.New(), now.Add(-48*time.Hour))
	fresh := seedNotification(t, repo, uuid.New(), uuid.New(), now)

	removed, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", fresh.ID).Error)
}
