package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/api/responses"
	"github.com/jordanmartell/ideahub-backend/api/validators"
	"github.com/jordanmartell/ideahub-backend/internal/actions"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
)

type toggleUserActionPayload struct {
	UserID     string `json:"userId" validate:"required,uuid"`
	TargetID   string `json:"targetId" validate:"required,uuid"`
	TargetType string `json:"targetType" validate:"required"`
	ActionType string `json:"actionType" validate:"required"`
}

// UserActionToggle flips a vote or subscription on or off for a user and
// target. The response reports which way the toggle landed.
func UserActionToggle(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "actions service unavailable"))
			return
		}

		var payload toggleUserActionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}
		targetID, err := uuid.Parse(payload.TargetID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target id"))
			return
		}
		targetType, err := enums.ParseTargetType(payload.TargetType)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type"))
			return
		}
		actionType, err := enums.ParseActionType(payload.ActionType)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action type"))
			return
		}

		result, err := svc.Toggle(ctx, actions.ToggleParams{
			UserID:     userID,
			TargetID:   targetID,
			TargetType: targetType,
			ActionType: actionType,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// UserActionCounts returns per-action-type tallies for a target.
func UserActionCounts(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "actions service unavailable"))
			return
		}

		targetID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("targetId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target id"))
			return
		}
		targetType, err := enums.ParseTargetType(strings.TrimSpace(r.URL.Query().Get("targetType")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type"))
			return
		}

		counts, err := svc.Counts(ctx, targetID, targetType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"targetId":   targetID,
			"targetType": targetType,
			"counts":     counts,
		})
	}
}
