package challenges

import (
	"context"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates challenge persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a challenges repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new challenge.
func (r *Repository) Create(ctx context.Context, challenge *models.Challenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

// FindByID loads a challenge by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).First(&challenge, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Delete removes the challenge row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Challenge{}, "id = ?", id).Error
}

// AddSubscriber appends the user to the challenge's subscriber set. The
// update is a single atomic set-union statement so concurrent commenters
// cannot clobber each other; adding an existing member is a no-op.
func (r *Repository) AddSubscriber(ctx context.Context, challengeID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE challenges
		      SET subscriber_ids = array_append(subscriber_ids, ?), updated_at = now()
		      WHERE id = ? AND NOT (subscriber_ids @> ARRAY[?]::uuid[])`,
			userID, challengeID, userID).
		Error
}

// RemoveSubscriber drops the user from the challenge's subscriber set.
func (r *Repository) RemoveSubscriber(ctx context.Context, challengeID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE challenges
		      SET subscriber_ids = array_remove(subscriber_ids, ?::uuid), updated_at = now()
		      WHERE id = ?`,
			userID, challengeID).
		Error
}
