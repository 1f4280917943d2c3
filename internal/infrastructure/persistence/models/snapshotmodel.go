package models

import (
	"time"

	"github.com/orris-inc/moderation/internal/shared/constants"
)

// SnapshotModel keeps one serialized aggregate graph per name.
type SnapshotModel struct {
	Name      string    `gorm:"primaryKey;size:100"`
	Payload   []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SnapshotModel) TableName() string {
	return constants.TableModerationSnapshots
}

// All returns every model owned by the moderation schema in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&UserRoleModel{},
		&UserNoteModel{},
		&UserSanctionModel{},
		&NodeModel{},
		&NodeModerationHistoryModel{},
		&ModerationTicketModel{},
		&ModerationTicketMessageModel{},
		&AppealModel{},
		&SnapshotModel{},
	}
}
