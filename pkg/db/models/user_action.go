package models

import (
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
)

// UniqueActionConstraint names the storage-level uniqueness guard on
// (user, target, target type, action type). Toggle conflict recovery
// matches against it.
const UniqueActionConstraint = "uq_user_actions_identity"

// UserAction records one user's stance on one target. At most one row may
// exist per identity tuple; the second toggle hard-deletes the row.
type UserAction struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_actions_identity" json:"userId"`
	TargetID   uuid.UUID        `gorm:"column:target_id;type:uuid;not null;uniqueIndex:uq_user_actions_identity" json:"targetId"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null;uniqueIndex:uq_user_actions_identity" json:"targetType"`
	ActionType enums.ActionType `gorm:"column:action_type;type:text;not null;uniqueIndex:uq_user_actions_identity" json:"actionType"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
