package ideas

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/jordanmartell/ideahub-backend/internal/notifications"
	"github.com/jordanmartell/ideahub-backend/internal/targets"
	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultFanoutTimeout = 5 * time.Second

// TargetResolver is the slice of the targets resolver the service needs.
type TargetResolver interface {
	Resolve(ctx context.Context, targetType enums.TargetType, id uuid.UUID) (*targets.Info, error)
}

// Dispatcher fans the idea-created event out to notification recipients.
type Dispatcher interface {
	DispatchToMany(ctx context.Context, params notifications.DispatchParams) error
}

// NotificationCleaner removes the notifications a deleted idea produced.
type NotificationCleaner interface {
	DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) error
}

// CreateParams describes one new idea submitted to a challenge.
type CreateParams struct {
	OwnerID     uuid.UUID
	ChallengeID uuid.UUID
	Title       string
	Description string
}

// Service is the thin CRUD surface over ideas. Creating an idea notifies the
// parent challenge's owner and subscribers.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Idea, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Idea, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

// ServiceParams groups dependencies for the ideas service.
type ServiceParams struct {
	Repo          *Repository
	Resolver      TargetResolver
	Dispatcher    Dispatcher
	Notifications NotificationCleaner
	Logger        *logger.Logger
	FanoutTimeout time.Duration
}

type service struct {
	repo          *Repository
	resolver      TargetResolver
	dispatcher    Dispatcher
	notifications NotificationCleaner
	logg          *logger.Logger
	fanoutTimeout time.Duration
}

// NewService wires the ideas service dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ideas repository required")
	}
	if params.Resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "target resolver required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification dispatcher required")
	}
	if params.Notifications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	timeout := params.FanoutTimeout
	if timeout <= 0 {
		timeout = defaultFanoutTimeout
	}
	return &service{
		repo:          params.Repo,
		resolver:      params.Resolver,
		dispatcher:    params.Dispatcher,
		notifications: params.Notifications,
		logg:          params.Logger,
		fanoutTimeout: timeout,
	}, nil
}

// Create persists the idea and then, best-effort, notifies the parent
// challenge's owner and subscribers that a new idea arrived.
func (s *service) Create(ctx context.Context, params CreateParams) (*models.Idea, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if params.ChallengeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "challenge id required")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	challenge, err := s.resolver.Resolve(ctx, enums.TargetTypeChallenge, params.ChallengeID)
	if err != nil {
		return nil, err
	}

	idea := &models.Idea{
		ChallengeID: params.ChallengeID,
		OwnerID:     params.OwnerID,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
	}
	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create idea")
	}

	s.announce(ctx, idea, challenge)
	return idea, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idea id required")
	}
	idea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load idea")
	}
	return idea, nil
}

// Delete removes the owner's idea and cleans up the notifications that
// reference it.
func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	idea, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if idea.OwnerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can delete an idea")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete idea")
	}

	if err := s.notifications.DeleteByRelatedEntity(ctx, id); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "idea_id", id.String()), "idea notification cleanup failed", err)
	}
	return nil
}

// announce dispatches idea_created to the parent challenge's audience. The
// idea row is already committed; a dispatch failure is logged and swallowed.
func (s *service) announce(ctx context.Context, idea *models.Idea, challenge *targets.Info) {
	ctx, cancel := context.WithTimeout(ctx, s.fanoutTimeout)
	defer cancel()

	candidates := append([]uuid.UUID{challenge.OwnerID}, challenge.SubscriberIDs...)
	err := s.dispatcher.DispatchToMany(ctx, notifications.DispatchParams{
		RecipientIDs:    candidates,
		Event:           enums.EventIdeaCreated,
		RelatedEntityID: idea.ID,
		InitiatorID:     idea.OwnerID,
		EntityTitle:     idea.Title,
	})
	if err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"idea_id":      idea.ID.String(),
			"challenge_id": idea.ChallengeID.String(),
		})
		s.logg.Error(logCtx, "idea created notification dispatch failed", err)
	}
}
