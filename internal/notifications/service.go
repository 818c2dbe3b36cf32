package notifications

import (
	"context"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/jordanmartell/ideahub-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service defines the notification read/mutation surface.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) error
}

// ListParams configures pagination for a recipient's notifications.
type ListParams struct {
	UserID     uuid.UUID
	Limit      int
	Cursor     string
	UnseenOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// ServiceParams groups service dependencies. Cache is optional; without it
// every unread-count read goes to the database.
type ServiceParams struct {
	Repo   Repository
	Cache  *UnreadCache
	Logger *logger.Logger
}

type service struct {
	repo  Repository
	cache *UnreadCache
	logg  *logger.Logger
}

// NewService wires notifications dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: params.Repo, cache: params.Cache, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	query := listNotificationsParams{
		UserID:     params.UserID,
		Limit:      params.Limit,
		UnseenOnly: params.UnseenOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

// MarkRead flips the listed notifications to seen and returns the number of
// rows actually modified. An empty id list marks everything unseen for the
// user. Repeating the call modifies zero rows.
func (s *service) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var (
		modified int64
		err      error
	)
	if len(ids) == 0 {
		modified, err = s.repo.MarkAllSeen(ctx, userID)
	} else {
		modified, err = s.repo.MarkSeen(ctx, userID, ids)
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications seen")
	}

	if modified > 0 {
		if cacheErr := s.cache.Invalidate(ctx, userID); cacheErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", cacheErr.Error()), "unread count cache invalidation failed")
		}
	}
	return modified, nil
}

// UnreadCount serves the badge counter, preferring the cache and falling back
// to the database. Cache failures degrade to a database read, never an error.
func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	cached, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "unread count cache read failed")
	} else if hit {
		return cached, nil
	}

	count, err := s.repo.CountUnseen(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unseen notifications")
	}

	if cacheErr := s.cache.Set(ctx, userID, count); cacheErr != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", cacheErr.Error()), "unread count cache write failed")
	}
	return count, nil
}

func (s *service) DeleteByRelatedEntity(ctx context.Context, entityID uuid.UUID) error {
	if entityID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "entity id required")
	}
	removed, err := s.repo.DeleteByRelatedEntity(ctx, entityID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete notifications for entity")
	}
	if removed > 0 {
		s.logg.Info(s.logg.WithField(ctx, "removed", removed), "notifications removed for deleted entity")
	}
	return nil
}
