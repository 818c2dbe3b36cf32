package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/api/responses"
	"github.com/jordanmartell/ideahub-backend/api/validators"
	"github.com/jordanmartell/ideahub-backend/internal/challenges"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
)

type createChallengePayload struct {
	OwnerID     string `json:"ownerId" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description"`
}

func ChallengeCreate(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "challenges service unavailable"))
			return
		}

		var payload createChallengePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ownerID, err := uuid.Parse(payload.OwnerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid owner id"))
			return
		}

		challenge, err := svc.Create(ctx, challenges.CreateParams{
			OwnerID:     ownerID,
			Title:       payload.Title,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, challenge)
	}
}

func ChallengeGet(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "challenges service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "challengeId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid challenge id"))
			return
		}

		challenge, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, challenge)
	}
}

func ChallengeDelete(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "challenges service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "challengeId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid challenge id"))
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
