package targets

import (
	"context"
	"errors"

	"github.com/jordanmartell/ideahub-backend/pkg/db/models"
	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Info is the target projection the engagement engine works with: enough to
// validate existence, compute fan-out candidates, and render notifications.
type Info struct {
	ID                uuid.UUID
	Type              enums.TargetType
	OwnerID           uuid.UUID
	Title             string
	SubscriberIDs     []uuid.UUID
	ParentChallengeID *uuid.UUID
}

// ChallengeStore is the slice of the challenges repository the resolver needs.
type ChallengeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	AddSubscriber(ctx context.Context, challengeID, userID uuid.UUID) error
	RemoveSubscriber(ctx context.Context, challengeID, userID uuid.UUID) error
}

// IdeaStore is the slice of the ideas repository the resolver needs.
type IdeaStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Idea, error)
	AddSubscriber(ctx context.Context, ideaID, userID uuid.UUID) error
	RemoveSubscriber(ctx context.Context, ideaID, userID uuid.UUID) error
}

type entityOps struct {
	resolve          func(ctx context.Context, id uuid.UUID) (*Info, error)
	addSubscriber    func(ctx context.Context, entityID, userID uuid.UUID) error
	removeSubscriber func(ctx context.Context, entityID, userID uuid.UUID) error
}

// Resolver dispatches polymorphic target operations to the repository that
// owns the entity type. Challenges and ideas stay plain structs; the
// polymorphism lives in this table.
type Resolver struct {
	ops map[enums.TargetType]entityOps
}

// NewResolver wires the dispatch table for both target types.
func NewResolver(challengeStore ChallengeStore, ideaStore IdeaStore) (*Resolver, error) {
	if challengeStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "challenge store required")
	}
	if ideaStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "idea store required")
	}

	ops := map[enums.TargetType]entityOps{
		enums.TargetTypeChallenge: {
			resolve: func(ctx context.Context, id uuid.UUID) (*Info, error) {
				challenge, err := challengeStore.FindByID(ctx, id)
				if err != nil {
					return nil, err
				}
				return &Info{
					ID:            challenge.ID,
					Type:          enums.TargetTypeChallenge,
					OwnerID:       challenge.OwnerID,
					Title:         challenge.Title,
					SubscriberIDs: challenge.SubscriberIDs,
				}, nil
			},
			addSubscriber:    challengeStore.AddSubscriber,
			removeSubscriber: challengeStore.RemoveSubscriber,
		},
		enums.TargetTypeIdea: {
			resolve: func(ctx context.Context, id uuid.UUID) (*Info, error) {
				idea, err := ideaStore.FindByID(ctx, id)
				if err != nil {
					return nil, err
				}
				parent := idea.ChallengeID
				return &Info{
					ID:                idea.ID,
					Type:              enums.TargetTypeIdea,
					OwnerID:           idea.OwnerID,
					Title:             idea.Title,
					SubscriberIDs:     idea.SubscriberIDs,
					ParentChallengeID: &parent,
				}, nil
			},
			addSubscriber:    ideaStore.AddSubscriber,
			removeSubscriber: ideaStore.RemoveSubscriber,
		},
	}

	return &Resolver{ops: ops}, nil
}

// Resolve loads the target projection, translating a missing row into a
// NotFound the entry points can surface directly.
func (r *Resolver) Resolve(ctx context.Context, targetType enums.TargetType, id uuid.UUID) (*Info, error) {
	ops, ok := r.ops[targetType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown target type")
	}
	info, err := ops.resolve(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "target not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target")
	}
	return info, nil
}

// AddSubscriber routes the atomic set-add to the owning repository.
func (r *Resolver) AddSubscriber(ctx context.Context, targetType enums.TargetType, entityID, userID uuid.UUID) error {
	ops, ok := r.ops[targetType]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown target type")
	}
	return ops.addSubscriber(ctx, entityID, userID)
}

// RemoveSubscriber routes the set-remove to the owning repository.
func (r *Resolver) RemoveSubscriber(ctx context.Context, targetType enums.TargetType, entityID, userID uuid.UUID) error {
	ops, ok := r.ops[targetType]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown target type")
	}
	return ops.removeSubscriber(ctx, entityID, userID)
}
