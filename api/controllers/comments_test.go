package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jordanmartell/ideahub-backend/internal/comments"
	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
)

type testCommentsService struct {
	createFn func(ctx context.Context, params comments.CreateParams) (*models.Comment, error)
	listFn   func(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error)
	deleteFn func(ctx context.Context, commentID, actorID uuid.UUID) error
}

func (s *testCommentsService) Create(ctx context.Context, params comments.CreateParams) (*models.Comment, error) {
	if s.createFn != nil {
		return s.createFn(ctx, params)
	}
	return &models.Comment{}, nil
}

func (s *testCommentsService) ListByTarget(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error) {
	if s.listFn != nil {
		return s.listFn(ctx, targetType, targetID)
	}
	return nil, nil
}

func (s *testCommentsService) Delete(ctx context.Context, commentID, actorID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, commentID, actorID)
	}
	return nil
}

func TestCommentCreateSuccess(t *testing.T) {
	userID := uuid.New()
	parentID := uuid.New()
	commentID := uuid.New()
	svc := &testCommentsService{
		createFn: func(ctx context.Context, params comments.CreateParams) (*models.Comment, error) {
			if params.AuthorID != userID {
				t.Fatalf("unexpected author %s", params.AuthorID)
			}
			if params.TargetID != parentID {
				t.Fatalf("unexpected target %s", params.TargetID)
			}
			if params.TargetType != enums.TargetTypeIdea {
				t.Fatalf("unexpected target type %s", params.TargetType)
			}
			if params.Body != "great idea" {
				t.Fatalf("unexpected body %q", params.Body)
			}
			return &models.Comment{ID: commentID, Body: params.Body}, nil
		},
	}

	body := `{"comment":"great idea","type":"ID","parentId":"` + parentID.String() + `","userId":"` + userID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CommentCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data models.Comment `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.ID != commentID {
		t.Fatalf("unexpected comment id %s", envelope.Data.ID)
	}
}

func TestCommentCreateMissingBody(t *testing.T) {
	body := `{"type":"idea","parentId":"` + uuid.NewString() + `","userId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CommentCreate(&testCommentsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCommentCreateUnknownTargetNotFound(t *testing.T) {
	svc := &testCommentsService{
		createFn: func(ctx context.Context, params comments.CreateParams) (*models.Comment, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "target not found")
		},
	}

	body := `{"comment":"hi","type":"challenge","parentId":"` + uuid.NewString() + `","userId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CommentCreate(svc, testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCommentListSuccess(t *testing.T) {
	parentID := uuid.New()
	svc := &testCommentsService{
		listFn: func(ctx context.Context, targetType enums.TargetType, targetID uuid.UUID) ([]models.Comment, error) {
			if targetType != enums.TargetTypeChallenge {
				t.Fatalf("unexpected target type %s", targetType)
			}
			if targetID != parentID {
				t.Fatalf("unexpected target %s", targetID)
			}
			return []models.Comment{{Body: "first"}, {Body: "second"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/comments?type=challenge&parentId="+parentID.String(), nil)
	resp := httptest.NewRecorder()
	CommentList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Items []models.Comment `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Items) != 2 {
		t.Fatalf("unexpected item count %d", len(envelope.Data.Items))
	}
}

func TestCommentDeleteForbidden(t *testing.T) {
	svc := &testCommentsService{
		deleteFn: func(ctx context.Context, commentID, actorID uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the author can delete a comment")
		},
	}

	commentID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+commentID.String()+"?userId="+uuid.NewString(), nil)
	req = addRouteParam(req, "commentId", commentID.String())
	resp := httptest.NewRecorder()
	CommentDelete(svc, testLogger())(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCommentDeleteSuccess(t *testing.T) {
	commentID := uuid.New()
	actorID := uuid.New()
	called := false
	svc := &testCommentsService{
		deleteFn: func(ctx context.Context, cid, aid uuid.UUID) error {
			called = true
			if cid != commentID || aid != actorID {
				t.Fatalf("unexpected ids %s %s", cid, aid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+commentID.String()+"?userId="+actorID.String(), nil)
	req = addRouteParam(req, "commentId", commentID.String())
	resp := httptest.NewRecorder()
	CommentDelete(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}
