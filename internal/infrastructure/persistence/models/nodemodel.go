package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/moderation/internal/shared/constants"
)

// NodeModel is a piece of user-generated content. Status is the publishing
// state of the node; ModerationStatus is the queue state.
type NodeModel struct {
	ID               string    `gorm:"primaryKey;size:64"`
	NodeType         string    `gorm:"size:30;not null;index"`
	AuthorID         *string   `gorm:"size:64;index"`
	Title            *string   `gorm:"size:255"`
	Status           string    `gorm:"size:20;not null;default:published"`
	ModerationStatus string    `gorm:"size:20;not null;default:pending;index"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (NodeModel) TableName() string {
	return constants.TableNodes
}

// NodeModerationHistoryModel is one recorded moderation decision.
type NodeModerationHistoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	NodeID    string `gorm:"size:64;not null;index"`
	Action    string `gorm:"size:30;not null"`
	Reason    string `gorm:"type:text"`
	ActorID   string `gorm:"size:64"`
	Payload   datatypes.JSON
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (NodeModerationHistoryModel) TableName() string {
	return constants.TableNodeModerationHistory
}
