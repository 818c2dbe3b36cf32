package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/api/responses"
	"github.com/jordanmartell/ideahub-backend/api/validators"
	"github.com/jordanmartell/ideahub-backend/internal/notifications"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/jordanmartell/ideahub-backend/pkg/pagination"
)

type markNotificationsReadPayload struct {
	NotificationIDs []string `json:"notificationIds"`
}

// NotificationsList returns a user's notifications newest first, cursor
// paginated. `unreadOnly=true` restricts to unseen rows.
func NotificationsList(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		unreadOnly, err := validators.ParseQueryBool(r, "unreadOnly", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.List(ctx, notifications.ListParams{
			UserID:     userID,
			Limit:      limit,
			Cursor:     strings.TrimSpace(r.URL.Query().Get("cursor")),
			UnseenOnly: unreadOnly,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// NotificationsMarkRead marks the listed notifications seen, or everything
// unseen when the body omits ids. Returns the number of rows modified.
func NotificationsMarkRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		var payload markNotificationsReadPayload
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		ids := make([]uuid.UUID, 0, len(payload.NotificationIDs))
		for _, raw := range payload.NotificationIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid notification id").WithDetails(map[string]any{"id": raw}))
				return
			}
			ids = append(ids, id)
		}

		modified, err := svc.MarkRead(ctx, userID, ids)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"modifiedCount": modified})
	}
}

// NotificationsUnreadCount returns the user's unseen notification count.
func NotificationsUnreadCount(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		count, err := svc.UnreadCount(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"unreadCount": count})
	}
}
