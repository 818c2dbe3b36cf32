package challenges

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationCleaner removes the notifications a deleted challenge produced.
type NotificationCleaner interface {
	DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) error
}

// CreateParams describes one new challenge.
type CreateParams struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
}

// Service is the thin CRUD surface over challenges.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Challenge, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

// ServiceParams groups dependencies for the challenges service.
type ServiceParams struct {
	Repo          *Repository
	Notifications NotificationCleaner
	Logger        *logger.Logger
}

type service struct {
	repo          *Repository
	notifications NotificationCleaner
	logg          *logger.Logger
}

// NewService wires the challenges service dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "challenges repository required")
	}
	if params.Notifications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: params.Repo, notifications: params.Notifications, logg: params.Logger}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Challenge, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	challenge := &models.Challenge{
		OwnerID:     params.OwnerID,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
	}
	if err := s.repo.Create(ctx, challenge); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create challenge")
	}
	return challenge, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "challenge id required")
	}
	challenge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "challenge not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load challenge")
	}
	return challenge, nil
}

// Delete removes the owner's challenge and cleans up the notifications that
// reference it. The cleanup is best-effort once the row is gone.
func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	challenge, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if challenge.OwnerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can delete a challenge")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete challenge")
	}

	if err := s.notifications.DeleteByRelatedEntity(ctx, id); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "challenge_id", id.String()), "challenge notification cleanup failed", err)
	}
	return nil
}
