package models

import (
	"time"

	dbtypes "github.com/jordanmartell/ideahub-backend/pkg/db/types"
	"github.com/google/uuid"
)

// Idea is submitted to a parent Challenge.
type Idea struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ChallengeID   uuid.UUID         `gorm:"column:challenge_id;type:uuid;not null" json:"challengeId"`
	OwnerID       uuid.UUID         `gorm:"column:owner_id;type:uuid;not null" json:"ownerId"`
	Title         string            `gorm:"type:text;not null" json:"title"`
	Description   string            `gorm:"type:text;not null" json:"description"`
	SubscriberIDs dbtypes.UUIDArray `gorm:"type:uuid[];column:subscriber_ids;not null;default:ARRAY[]::uuid[]" json:"subscriberIds"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
