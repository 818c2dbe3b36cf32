package models

import (
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/enums"
	"github.com/google/uuid"
)

// Comment is posted against a Challenge or an Idea. JSON tags follow the
// existing frontend contract, which calls the target id "parentId".
type Comment struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null" json:"type"`
	TargetID   uuid.UUID        `gorm:"column:target_id;type:uuid;not null" json:"parentId"`
	AuthorID   uuid.UUID        `gorm:"column:author_id;type:uuid;not null" json:"userId"`
	Body       string           `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
