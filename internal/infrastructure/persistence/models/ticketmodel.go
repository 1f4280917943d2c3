package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/moderation/internal/shared/constants"
)

// ModerationTicketModel holds the fields of a support ticket the SQL store
// is authoritative for.
type ModerationTicketModel struct {
	ID          string  `gorm:"primaryKey;size:64"`
	Status      string  `gorm:"size:20;not null;index"`
	Priority    string  `gorm:"size:20;not null"`
	AssigneeID  *string `gorm:"size:64;index"`
	UnreadCount int     `gorm:"not null;default:0"`
	Meta        datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ModerationTicketModel) TableName() string {
	return constants.TableModerationTickets
}

type ModerationTicketMessageModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	TicketID    string `gorm:"size:64;not null;index:idx_ticket_messages_ticket_created"`
	AuthorID    string `gorm:"size:64;not null"`
	AuthorName  string `gorm:"size:100"`
	Text        string `gorm:"type:text;not null"`
	Attachments datatypes.JSON
	Internal    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;index:idx_ticket_messages_ticket_created"`
}

func (ModerationTicketMessageModel) TableName() string {
	return constants.TableModerationMessages
}
