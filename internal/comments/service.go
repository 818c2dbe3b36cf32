package comments

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
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const defaultFanoutTimeout = 5 * time.Second

// TargetResolver is the slice of the targets resolver the service needs.
type TargetResolver interface {
	Resolve(ctx context.Context, targetType enums.TargetType, id uuid.UUID) (*targets.Info, error)
	AddSubscriber(ctx context.Context, targetType enums.TargetType, entityID, userID uuid.UUID) error
}

// Dispatcher fans a comment event out to notification recipients.
type Dispatcher interface {
	DispatchToMany(ctx context.Context, params notifications.DispatchParams) error
}

// NotificationCleaner removes the notifications a deleted comment produced.
type NotificationCleaner interface {
	DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) error
}

// CreateParams describes one new comment.
type CreateParams struct {
	AuthorID   uuid.UUID
	TargetType enums.TargetType
	TargetID   uuid.UUID
	Body       string
}

// Service implements the comment entry point: persist the comment, cascade
// subscriptions, and fan out notifications.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Comment, error)
	ListByTarget(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error)
	Delete(ctx context.Context, commentID, actorID uuid.UUID) error
}

// ServiceParams groups dependencies for the comments service.
type ServiceParams struct {
	Repo          Repository
	Resolver      TargetResolver
	Dispatcher    Dispatcher
	Notifications NotificationCleaner
	Logger        *logger.Logger
	FanoutTimeout time.Duration
}

type service struct {
	repo          Repository
	resolver      TargetResolver
	dispatcher    Dispatcher
	notifications NotificationCleaner
	logg          *logger.Logger
	fanoutTimeout time.Duration
}

// NewService wires the comments service dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "comments repository required")
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

// Create persists the comment and then runs the cascade and fan-out. Only the
// comment insert itself can fail the call; the later steps are advisory and
// their failures are logged, never rolled back.
func (s *service) Create(ctx context.Context, params CreateParams) (*models.Comment, error) {
	if err := validateCreateParams(params); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, params.TargetType, params.TargetID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TargetType: params.TargetType,
		TargetID:   params.TargetID,
		AuthorID:   params.AuthorID,
		Body:       strings.TrimSpace(params.Body),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}

	s.fanOut(ctx, comment)
	return comment, nil
}

func (s *service) ListByTarget(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error) {
	if !targetType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	if targetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	rows, err := s.repo.ListByTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	return rows, nil
}

// Delete removes the author's comment along with the notifications it fanned
// out. Only the author may delete their comment.
func (s *service) Delete(ctx context.Context, commentID, actorID uuid.UUID) error {
	if commentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment id required")
	}
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}

	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	if comment.AuthorID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the author can delete a comment")
	}

	if _, err := s.repo.Delete(ctx, commentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comment")
	}

	if err := s.notifications.DeleteByRelatedEntity(ctx, commentID); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "comment_id", commentID.String()), "comment notification cleanup failed", err)
	}
	return nil
}

// fanOut subscribes the commenter to the entity (and, for Ideas, the parent
// Challenge), then dispatches the comment event to the recomputed candidate
// set. The cascade runs first so re-resolved subscriber sets already include
// the commenter; the dispatcher still excludes them as initiator.
func (s *service) fanOut(ctx context.Context, comment *models.Comment) {
	ctx, cancel := context.WithTimeout(ctx, s.fanoutTimeout)
	defer cancel()

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"comment_id":  comment.ID.String(),
		"author_id":   comment.AuthorID.String(),
		"target_type": string(comment.TargetType),
		"target_id":   comment.TargetID.String(),
	})

	if err := s.cascadeSubscriptions(ctx, comment); err != nil {
		s.logg.Error(logCtx, "subscriber cascade failed", err)
	}

	target, err := s.resolver.Resolve(ctx, comment.TargetType, comment.TargetID)
	if err != nil {
		s.logg.Error(logCtx, "recipient recompute failed", err)
		return
	}
	candidates := append([]uuid.UUID{target.OwnerID}, target.SubscriberIDs...)
	if target.ParentChallengeID != nil {
		parent, err := s.resolver.Resolve(ctx, enums.TargetTypeChallenge, *target.ParentChallengeID)
		if err != nil {
			s.logg.Error(logCtx, "parent challenge recompute failed", err)
		} else {
			candidates = append(candidates, parent.OwnerID)
			candidates = append(candidates, parent.SubscriberIDs...)
		}
	}

	event, err := enums.CommentEventFor(comment.TargetType)
	if err != nil {
		s.logg.Error(logCtx, "no comment event for target", err)
		return
	}
	dispatchErr := s.dispatcher.DispatchToMany(ctx, notifications.DispatchParams{
		RecipientIDs:    candidates,
		Event:           event,
		RelatedEntityID: comment.ID,
		InitiatorID:     comment.AuthorID,
		EntityTitle:     target.Title,
	})
	if dispatchErr != nil {
		s.logg.Error(logCtx, "comment notification dispatch failed", dispatchErr)
	}
}

// cascadeSubscriptions adds the commenter to the entity's subscriber set and,
// one level up, to the parent Challenge's. A parent failure leaves the
// entity-level add intact; both errors are reported together.
func (s *service) cascadeSubscriptions(ctx context.Context, comment *models.Comment) error {
	var errs error
	if err := s.resolver.AddSubscriber(ctx, comment.TargetType, comment.TargetID, comment.AuthorID); err != nil {
		errs = multierr.Append(errs, err)
	}

	if comment.TargetType == enums.TargetTypeIdea {
		target, err := s.resolver.Resolve(ctx, comment.TargetType, comment.TargetID)
		if err != nil {
			return multierr.Append(errs, err)
		}
		if target.ParentChallengeID != nil {
			if err := s.resolver.AddSubscriber(ctx, enums.TargetTypeChallenge, *target.ParentChallengeID, comment.AuthorID); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

func validateCreateParams(params CreateParams) error {
	if params.AuthorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "author id required")
	}
	if params.TargetID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	if !params.TargetType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	if strings.TrimSpace(params.Body) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment body required")
	}
	return nil
}
