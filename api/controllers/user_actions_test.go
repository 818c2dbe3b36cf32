package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/internal/actions"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
)

type testActionsService struct {
	toggleFn func(ctx context.Context, params actions.ToggleParams) (*actions.ToggleResult, error)
	countsFn func(ctx context.Context, targetID uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error)
}

func (s *testActionsService) Toggle(ctx context.Context, params actions.ToggleParams) (*actions.ToggleResult, error) {
	if s.toggleFn != nil {
		return s.toggleFn(ctx, params)
	}
	return &actions.ToggleResult{State: actions.ToggleStateAdded}, nil
}

func (s *testActionsService) Counts(ctx context.Context, targetID uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error) {
	if s.countsFn != nil {
		return s.countsFn(ctx, targetID, targetType)
	}
	return map[enums.ActionType]int64{}, nil
}

func TestUserActionToggleSuccess(t *testing.T) {
	userID := uuid.New()
	targetID := uuid.New()
	called := false
	svc := &testActionsService{
		toggleFn: func(ctx context.Context, params actions.ToggleParams) (*actions.ToggleResult, error) {
			called = true
			if params.UserID != userID {
				t.Fatalf("unexpected user %s", params.UserID)
			}
			if params.TargetID != targetID {
				t.Fatalf("unexpected target %s", params.TargetID)
			}
			if params.TargetType != enums.TargetTypeIdea {
				t.Fatalf("unexpected target type %s", params.TargetType)
			}
			if params.ActionType != enums.ActionTypeUpvote {
				t.Fatalf("unexpected action type %s", params.ActionType)
			}
			return &actions.ToggleResult{State: actions.ToggleStateAdded}, nil
		},
	}

	body := `{"userId":"` + userID.String() + `","targetId":"` + targetID.String() + `","targetType":"idea","actionType":"upvote"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user-actions", strings.NewReader(body))
	resp := httptest.NewRecorder()
	UserActionToggle(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data actions.ToggleResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.State != actions.ToggleStateAdded {
		t.Fatalf("unexpected state %s", envelope.Data.State)
	}
}

func TestUserActionToggleLegacyTargetCode(t *testing.T) {
	var got enums.TargetType
	svc := &testActionsService{
		toggleFn: func(ctx context.Context, params actions.ToggleParams) (*actions.ToggleResult, error) {
			got = params.TargetType
			return &actions.ToggleResult{State: actions.ToggleStateRemoved}, nil
		},
	}

	body := `{"userId":"` + uuid.NewString() + `","targetId":"` + uuid.NewString() + `","targetType":"CH","actionType":"subscribe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user-actions", strings.NewReader(body))
	resp := httptest.NewRecorder()
	UserActionToggle(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got != enums.TargetTypeChallenge {
		t.Fatalf("expected legacy CH to map to challenge, got %s", got)
	}
}

func TestUserActionToggleInvalidActionType(t *testing.T) {
	body := `{"userId":"` + uuid.NewString() + `","targetId":"` + uuid.NewString() + `","targetType":"idea","actionType":"love"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user-actions", strings.NewReader(body))
	resp := httptest.NewRecorder()
	UserActionToggle(&testActionsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUserActionToggleMissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user-actions", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	UserActionToggle(&testActionsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUserActionCountsSuccess(t *testing.T) {
	targetID := uuid.New()
	svc := &testActionsService{
		countsFn: func(ctx context.Context, tid uuid.UUID, targetType enums.TargetType) (map[enums.ActionType]int64, error) {
			if tid != targetID {
				t.Fatalf("unexpected target %s", tid)
			}
			if targetType != enums.TargetTypeChallenge {
				t.Fatalf("unexpected target type %s", targetType)
			}
			return map[enums.ActionType]int64{
				enums.ActionTypeUpvote:    3,
				enums.ActionTypeDownvote:  1,
				enums.ActionTypeSubscribe: 2,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-actions/counts?targetId="+targetID.String()+"&targetType=challenge", nil)
	resp := httptest.NewRecorder()
	UserActionCounts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Counts map[string]int64 `json:"counts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Counts["upvote"] != 3 {
		t.Fatalf("unexpected upvote count %d", envelope.Data.Counts["upvote"])
	}
}

func TestUserActionCountsInvalidTarget(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user-actions/counts?targetId=bad&targetType=challenge", nil)
	resp := httptest.NewRecorder()
	UserActionCounts(&testActionsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
