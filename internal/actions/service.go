package actions

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/jordanmartell/ideahub-backend/internal/notifications"
	"github.com/jordanmartell/ideahub-backend/internal/targets"
	"github.com/jordanmartell/ideahub-backend/pkg/db"
	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ToggleState reports which branch a toggle took.
type ToggleState string

const (
	ToggleStateAdded   ToggleState = "added"
	ToggleStateRemoved ToggleState = "removed"
)

const defaultFanoutTimeout = 5 * time.Second

// ToggleParams identify the action being toggled.
type ToggleParams struct {
	UserID     uuid.UUID
	TargetID   uuid.UUID
	TargetType enums.TargetType
	ActionType enums.ActionType
}

// ToggleResult carries the net state and, for the added branch, the row.
type ToggleResult struct {
	State  ToggleState        `json:"state"`
	Action *models.UserAction `json:"action,omitempty"`
}

// TargetResolver is the slice of the targets resolver the service needs.
type TargetResolver interface {
	Resolve(ctx context.Context, targetType enums.TargetType, id uuid.UUID) (*targets.Info, error)
	AddSubscriber(ctx context.Context, targetType enums.TargetType, entityID, userID uuid.UUID) error
	RemoveSubscriber(ctx context.Context, targetType enums.TargetType, entityID, userID uuid.UUID) error
}

// Dispatcher fans an engagement event out to notification recipients.
type Dispatcher interface {
	DispatchToMany(ctx context.Context, params notifications.DispatchParams) error
}

// Service implements toggle semantics and count aggregation over the action store.
type Service interface {
	Toggle(ctx context.Context, params ToggleParams) (*ToggleResult, error)
	Counts(ctx context.Context, targetID uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error)
}

// ServiceParams groups dependencies for the actions service.
type ServiceParams struct {
	Repo          Repository
	Resolver      TargetResolver
	Dispatcher    Dispatcher
	Logger        *logger.Logger
	FanoutTimeout time.Duration
}

type service struct {
	repo          Repository
	resolver      TargetResolver
	dispatcher    Dispatcher
	logg          *logger.Logger
	fanoutTimeout time.Duration
}

// NewService wires the actions service dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "actions repository required")
	}
	if params.Resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "target resolver required")
	}
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification dispatcher required")
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
		logg:          params.Logger,
		fanoutTimeout: timeout,
	}, nil
}

// Toggle inserts the action if absent and hard-deletes it if present. The
// storage uniqueness constraint decides races: a conflicting insert is
// recovered as the removal branch instead of surfacing a conflict, so the
// operation is safe to double-submit.
func (s *service) Toggle(ctx context.Context, params ToggleParams) (*ToggleResult, error) {
	if err := validateToggleParams(params); err != nil {
		return nil, err
	}

	target, err := s.resolver.Resolve(ctx, params.TargetType, params.TargetID)
	if err != nil {
		return nil, err
	}

	identity := Identity{
		UserID:     params.UserID,
		TargetID:   params.TargetID,
		TargetType: params.TargetType,
		ActionType: params.ActionType,
	}

	result, err := s.toggleRow(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.applySideEffects(ctx, params, target, result.State)
	return result, nil
}

func (s *service) toggleRow(ctx context.Context, identity Identity) (*ToggleResult, error) {
	_, err := s.repo.FindByIdentity(ctx, identity)
	switch {
	case err == nil:
		rows, err := s.repo.DeleteByIdentity(ctx, identity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete action")
		}
		if rows > 0 {
			return &ToggleResult{State: ToggleStateRemoved}, nil
		}
		// A concurrent toggle removed the row first; retry as an add.
		return s.insertRow(ctx, identity)

	case stdErrors.Is(err, gorm.ErrRecordNotFound):
		return s.insertRow(ctx, identity)

	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup action")
	}
}

func (s *service) insertRow(ctx context.Context, identity Identity) (*ToggleResult, error) {
	action, err := s.repo.Insert(ctx, identity)
	if err == nil {
		return &ToggleResult{State: ToggleStateAdded, Action: action}, nil
	}
	if db.IsUniqueViolation(err, models.UniqueActionConstraint) {
		// A concurrent toggle won the insert; take the removal branch.
		if _, delErr := s.repo.DeleteByIdentity(ctx, identity); delErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, delErr, "delete action after conflict")
		}
		return &ToggleResult{State: ToggleStateRemoved}, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert action")
}

// Counts aggregates the action rows for one target grouped by action type.
func (s *service) Counts(ctx context.Context, targetID uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error) {
	if targetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id is required")
	}
	if !targetType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	counts, err := s.repo.CountByTarget(ctx, targetID, targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count actions")
	}
	return counts, nil
}

// applySideEffects runs the subscriber-set sync and upvote fan-out. The
// action row is already committed; everything here is advisory and never
// fails the toggle.
func (s *service) applySideEffects(ctx context.Context, params ToggleParams, target *targets.Info, state ToggleState) {
	ctx, cancel := context.WithTimeout(ctx, s.fanoutTimeout)
	defer cancel()

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id":     params.UserID.String(),
		"target_type": string(params.TargetType),
		"target_id":   params.TargetID.String(),
		"action_type": string(params.ActionType),
		"state":       string(state),
	})

	switch params.ActionType {
	case enums.ActionTypeSubscribe:
		var err error
		if state == ToggleStateAdded {
			err = s.resolver.AddSubscriber(ctx, params.TargetType, params.TargetID, params.UserID)
		} else {
			err = s.resolver.RemoveSubscriber(ctx, params.TargetType, params.TargetID, params.UserID)
		}
		if err != nil {
			s.logg.Error(logCtx, "subscriber set sync failed", err)
		}

	case enums.ActionTypeUpvote:
		if state != ToggleStateAdded {
			return
		}
		event, err := enums.UpvoteEventFor(params.TargetType)
		if err != nil {
			s.logg.Error(logCtx, "no upvote event for target", err)
			return
		}
		candidates := append([]uuid.UUID{target.OwnerID}, target.SubscriberIDs...)
		dispatchErr := s.dispatcher.DispatchToMany(ctx, notifications.DispatchParams{
			RecipientIDs:    candidates,
			Event:           event,
			RelatedEntityID: params.TargetID,
			InitiatorID:     params.UserID,
			EntityTitle:     target.Title,
		})
		if dispatchErr != nil {
			s.logg.Error(logCtx, "upvote notification dispatch failed", dispatchErr)
		}
	}
}

func validateToggleParams(params ToggleParams) error {
	if params.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if params.TargetID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "target id is required")
	}
	if !params.TargetType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	if !params.ActionType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid action type")
	}
	return nil
}
