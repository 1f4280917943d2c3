package models

import (
	"time"

	"github.com/orris-inc/moderation/internal/shared/constants"
)

// UserModel is the identity row the moderation service reads. Role is the
// legacy single-role column used when no user_roles table exists.
type UserModel struct {
	ID         string  `gorm:"primaryKey;size:64"`
	Username   string  `gorm:"size:100;index"`
	Email      *string `gorm:"size:255;index"`
	Role       *string `gorm:"size:50"`
	Status     string  `gorm:"size:20;not null;default:active;index"`
	LastSeenAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// UserRoleModel is one role grant. The composite key keeps grants unique.
type UserRoleModel struct {
	UserID    string `gorm:"primaryKey;size:64"`
	Role      string `gorm:"primaryKey;size:50"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserRoleModel) TableName() string {
	return constants.TableUserRoles
}

// UserNoteModel stores moderator notes about a user.
type UserNoteModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null;index"`
	AuthorID  string    `gorm:"size:64;not null"`
	Text      string    `gorm:"type:text;not null"`
	Pinned    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (UserNoteModel) TableName() string {
	return constants.TableModeratorUserNotes
}

// UserSanctionModel mirrors a sanction so active bans can be detected in SQL.
type UserSanctionModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null;index:idx_user_sanctions_user_status"`
	Type      string    `gorm:"size:20;not null"`
	Status    string    `gorm:"size:20;not null;index:idx_user_sanctions_user_status"`
	Reason    string    `gorm:"type:text"`
	IssuedBy  string    `gorm:"size:64"`
	IssuedAt  time.Time `gorm:"not null"`
	EndsAt    *time.Time
	RevokedAt *time.Time
	RevokedBy *string `gorm:"size:64"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserSanctionModel) TableName() string {
	return constants.TableUserSanctions
}
