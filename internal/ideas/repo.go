package ideas

import (
	"context"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates idea persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an ideas repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new idea.
func (r *Repository) Create(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

// FindByID loads an idea by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	var idea models.Idea
	if err := r.db.WithContext(ctx).First(&idea, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// Delete removes the idea row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Idea{}, "id = ?", id).Error
}

// AddSubscriber appends the user to the idea's subscriber set atomically;
// adding an existing member is a no-op.
func (r *Repository) AddSubscriber(ctx context.Context, ideaID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE ideas
		      SET subscriber_ids = array_append(subscriber_ids, ?), updated_at = now()
		      WHERE id = ? AND NOT (subscriber_ids @> ARRAY[?]::uuid[])`,
			userID, ideaID, userID).
		Error
}

// RemoveSubscriber drops the user from the idea's subscriber set.
func (r *Repository) RemoveSubscriber(ctx context.Context, ideaID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE ideas
		      SET subscriber_ids = array_remove(subscriber_ids, ?::uuid), updated_at = now()
		      WHERE id = ?`,
			userID, ideaID).
		Error
}
