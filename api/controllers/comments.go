package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/api/responses"
	"github.com/jordanmartell/ideahub-backend/api/validators"
	"github.com/jordanmartell/ideahub-backend/internal/comments"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
)

type createCommentPayload struct {
	Comment  string `json:"comment" validate:"required"`
	Type     string `json:"type" validate:"required"`
	ParentID string `json:"parentId" validate:"required,uuid"`
	UserID   string `json:"userId" validate:"required,uuid"`
}

// CommentCreate posts a comment on a challenge or idea. Subscription cascade
// and notification fan-out happen inside the service and never fail the
// request once the comment is stored.
func CommentCreate(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comments service unavailable"))
			return
		}

		var payload createCommentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		targetType, err := enums.ParseTargetType(payload.Type)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type"))
			return
		}
		parentID, err := uuid.Parse(payload.ParentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent id"))
			return
		}
		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		comment, err := svc.Create(ctx, comments.CreateParams{
			AuthorID:   userID,
			TargetType: targetType,
			TargetID:   parentID,
			Body:       payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}

// CommentList returns a target's comments in posting order.
func CommentList(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comments service unavailable"))
			return
		}

		targetType, err := enums.ParseTargetType(strings.TrimSpace(r.URL.Query().Get("type")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type"))
			return
		}
		parentID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("parentId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent id"))
			return
		}

		rows, err := svc.ListByTarget(ctx, targetType, parentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"items": rows})
	}
}

// CommentDelete removes a comment; only the author may delete it.
func CommentDelete(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comments service unavailable"))
			return
		}

		commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid comment id"))
			return
		}
		actorID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("userId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		if err := svc.Delete(ctx, commentID, actorID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
