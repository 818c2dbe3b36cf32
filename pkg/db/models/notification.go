package models

import (
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
)

// Notification is one fan-out message to one recipient. JSON tags follow the
// existing frontend contract.
type Notification struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type            enums.EventType `gorm:"type:text;not null" json:"type"`
	Title           string          `gorm:"type:text;not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	RelatedEntityID uuid.UUID       `gorm:"column:related_entity_id;type:uuid;not null" json:"relatedEntityId"`
	RecipientID     uuid.UUID       `gorm:"column:recipient_user_id;type:uuid;not null" json:"recipientUserId"`
	InitiatorID     uuid.UUID       `gorm:"column:initiator_user_id;type:uuid;not null" json:"initiatorUserId"`
	Seen            bool            `gorm:"column:seen;not null;default:false" json:"seen"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
