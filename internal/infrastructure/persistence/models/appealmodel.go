package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/moderation/internal/shared/constants"
)

// AppealModel is the system of record for appeal decisions.
type AppealModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	Status         string `gorm:"size:20;not null;index"`
	DecidedAt      *time.Time
	DecidedBy      *string `gorm:"size:64"`
	DecisionReason *string `gorm:"type:text"`
	Meta           datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (AppealModel) TableName() string {
	return constants.TableModerationAppeals
}
