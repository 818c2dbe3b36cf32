package notifications

import (
	"context"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/google/uuid"
)

// DispatchParams describes one engagement event to fan out. RecipientIDs is
// the raw candidate set; the dispatcher owns de-duplication and initiator
// self-exclusion.
type DispatchParams struct {
	RecipientIDs    []uuid.UUID
	Event           enums.EventType
	RelatedEntityID uuid.UUID
	InitiatorID     uuid.UUID
	EntityTitle     string
}

// UserDirectory resolves initiator profiles for display-name rendering.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Dispatcher renders an event against the template registry and bulk-persists
// one notification per recipient.
type Dispatcher interface {
	DispatchToMany(ctx context.Context, params DispatchParams) error
}

// DispatcherParams groups dispatcher dependencies. Cache is optional.
type DispatcherParams struct {
	Repo      Repository
	Users     UserDirectory
	Templates *TemplateRegistry
	Cache     *UnreadCache
	Logger    *logger.Logger
}

type dispatcher struct {
	repo      Repository
	users     UserDirectory
	templates *TemplateRegistry
	cache     *UnreadCache
	logg      *logger.Logger
}

// NewDispatcher wires the dispatcher dependencies.
func NewDispatcher(params DispatcherParams) (Dispatcher, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user directory required")
	}
	if params.Templates == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "template registry required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &dispatcher{
		repo:      params.Repo,
		users:     params.Users,
		templates: params.Templates,
		cache:     params.Cache,
		logg:      params.Logger,
	}, nil
}

func (d *dispatcher) DispatchToMany(ctx context.Context, params DispatchParams) error {
	if params.RelatedEntityID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "related entity id required")
	}
	if params.InitiatorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "initiator id required")
	}

	recipients := dedupeRecipients(params.RecipientIDs, params.InitiatorID)
	if len(recipients) == 0 {
		return nil
	}

	title, description, err := d.templates.Render(params.Event, Placeholders{
		InitiatorName: d.initiatorName(ctx, params.InitiatorID),
		EntityTitle:   params.EntityTitle,
	})
	if err != nil {
		return err
	}

	rows := make([]models.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		rows = append(rows, models.Notification{
			Type:            params.Event,
			Title:           title,
			Description:     description,
			RelatedEntityID: params.RelatedEntityID,
			RecipientID:     recipientID,
			InitiatorID:     params.InitiatorID,
		})
	}
	if err := d.repo.CreateBatch(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist notifications")
	}

	if err := d.cache.Invalidate(ctx, recipients...); err != nil {
		d.logg.Warn(d.logg.WithField(ctx, "error", err.Error()), "unread count cache invalidation failed")
	}
	return nil
}

// initiatorName loads the initiator's display name. A lookup failure falls
// back to a placeholder instead of aborting the dispatch.
func (d *dispatcher) initiatorName(ctx context.Context, initiatorID uuid.UUID) string {
	user, err := d.users.FindByID(ctx, initiatorID)
	if err != nil {
		d.logg.Warn(d.logg.WithField(ctx, "error", err.Error()), "initiator lookup failed, using placeholder name")
		return fallbackInitiatorName
	}
	if name := user.DisplayName(); name != "" {
		return name
	}
	return fallbackInitiatorName
}

// dedupeRecipients applies set semantics and removes the initiator, keeping
// first-seen order so batches stay deterministic.
func dedupeRecipients(candidates []uuid.UUID, initiatorID uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	recipients := make([]uuid.UUID, 0, len(candidates))
	for _, id := range candidates {
		if id == uuid.Nil || id == initiatorID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}
	return recipients
}
