package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/api/responses"
	"github.com/jordanmartell/ideahub-backend/api/validators"
	"github.com/jordanmartell/ideahub-backend/internal/ideas"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
)

type createIdeaPayload struct {
	OwnerID     string `json:"ownerId" validate:"required,uuid"`
	ChallengeID string `json:"challengeId" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description"`
}

// IdeaCreate submits an idea under a challenge. The parent challenge's owner
// and subscribers are notified once the idea is stored.
func IdeaCreate(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ideas service unavailable"))
			return
		}

		var payload createIdeaPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ownerID, err := uuid.Parse(payload.OwnerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid owner id"))
			return
		}
		challengeID, err := uuid.Parse(payload.ChallengeID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid challenge id"))
			return
		}

		idea, err := svc.Create(ctx, ideas.CreateParams{
			OwnerID:     ownerID,
			ChallengeID: challengeID,
			Title:       payload.Title,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, idea)
	}
}

func IdeaGet(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ideas service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "ideaId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid idea id"))
			return
		}

		idea, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, idea)
	}
}

func IdeaDelete(svc ideas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ideas service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "ideaId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid idea id"))
			return
		}
		actorID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("userId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		if err := svc.Delete(ctx, id, actorID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
