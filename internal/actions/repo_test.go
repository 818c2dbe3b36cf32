package actions

import (
	"context"
	"errors"
	"testing"

	dbpkg "github.com/jordanmartell/ideahub-backend/pkg/db"
	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupActionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	userActions := `
CREATE TABLE IF NOT EXISTS user_actions (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  user_id TEXT NOT NULL,
  target_id TEXT NOT NULL,
  target_type TEXT NOT NULL,
  action_type TEXT NOT NULL,
  created_at DATETIME,
  CONSTRAINT uq_user_actions_identity UNIQUE (user_id, target_id, target_type, action_type)
);`
	require.NoError(t, db.Exec(userActions).Error)
	return db
}

func TestRepository_InsertFindDelete(t *testing.T) {
	db := setupActionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	identity := Identity{
		UserID:     uuid.New(),
		TargetID:   uuid.New(),
		TargetType: enums.TargetTypeIdea,
		ActionType: enums.ActionTypeUpvote,
	}

	_, err := repo.FindByIdentity(ctx, identity)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.Insert(ctx, identity)
	require.NoError(t, err)

	found, err := repo.FindByIdentity(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, found.UserID)
	assert.Equal(t, identity.ActionType, found.ActionType)

	rows, err := repo.DeleteByIdentity(ctx, identity)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	_, err = repo.FindByIdentity(ctx, identity)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepository_DuplicateInsertHitsUniqueConstraint(t *testing.T) {
	db := setupActionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	identity := Identity{
		UserID:     uuid.New(),
		TargetID:   uuid.New(),
		TargetType: enums.TargetTypeChallenge,
		ActionType: enums.ActionTypeSubscribe,
	}

	_, err := repo.Insert(ctx, identity)
	require.NoError(t, err)

	_, err = repo.Insert(ctx, identity)
	require.Error(t, err)
	assert.True(t, dbpkg.IsUniqueViolation(err, models.UniqueActionConstraint))

	var count int64
	require.NoError(t, db.Model(&models.UserAction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRepository_SequentialTogglesNetRows(t *testing.T) {
	db := setupActionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	identity := Identity{
		UserID:     uuid.New(),
		TargetID:   uuid.New(),
		TargetType: enums.TargetTypeIdea,
		ActionType: enums.ActionTypeDownvote,
	}

	toggleOnce := func() {
		if _, err := repo.FindByIdentity(ctx, identity); err == nil {
			_, err := repo.DeleteByIdentity(ctx, identity)
			require.NoError(t, err)
			return
		}
		_, err := repo.Insert(ctx, identity)
		require.NoError(t, err)
	}

	countRows := func() int64 {
		var count int64
		require.NoError(t, db.Model(&models.UserAction{}).Count(&count).Error)
		return count
	}

	for i := 0; i < 5; i++ {
		toggleOnce()
	}
	assert.EqualValues(t, 1, countRows(), "odd toggle count must leave one row")

	toggleOnce()
	assert.EqualValues(t, 0, countRows(), "even toggle count must leave zero rows")
}

func TestRepository_CountByTargetZeroFills(t *testing.T) {
	db := setupActionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	targetID := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := repo.Insert(ctx, Identity{
			UserID:     uuid.New(),
			TargetID:   targetID,
			TargetType: enums.TargetTypeIdea,
			ActionType: enums.ActionTypeUpvote,
		})
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, Identity{
		UserID:     uuid.New(),
		TargetID:   targetID,
		TargetType: enums.TargetTypeIdea,
		ActionType: enums.ActionTypeSubscribe,
	})
	require.NoError(t, err)

	counts, err := repo.CountByTarget(ctx, targetID, enums.TargetTypeIdea)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[enums.ActionTypeUpvote])
	assert.EqualValues(t, 1, counts[enums.ActionTypeSubscribe])
	assert.EqualValues(t, 0, counts[enums.ActionTypeDownvote])

	other, err := repo.CountByTarget(ctx, uuid.New(), enums.TargetTypeIdea)
	require.NoError(t, err)
	for actionType, count := range other {
		assert.EqualValuesf(t, 0, count, "expected zero for %s", actionType)
	}
}
