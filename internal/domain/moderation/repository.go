package moderation

import (
	"context"
	"time"

	"github.com/orris-inc/moderation/internal/domain/shared/events"
)

// Payload is the flat, JSON-shaped form of a whole-graph snapshot.
type Payload map[string]any

// SnapshotStore persists whole-graph snapshots. Load returns a nil payload
// and no error when nothing has been saved yet.
type SnapshotStore interface {
	Enabled() bool
	Load(ctx context.Context) (Payload, error)
	Save(ctx context.Context, payload Payload) error
}

// AppealRow is what the SQL appeal store knows about an appeal. Nil fields
// are unknown and never override in-memory values.
type AppealRow struct {
	ID             string
	Status         *string
	DecidedAt      *time.Time
	DecidedBy      *string
	DecisionReason *string
	Meta           map[string]any
}

type AppealDecision struct {
	AppealID       string
	Status         string
	DecidedAt      time.Time
	DecidedBy      string
	DecisionReason string
	Meta           map[string]any
}

type AppealRepository interface {
	FetchMany(ctx context.Context, ids []string) (map[string]*AppealRow, error)
	FetchAppeal(ctx context.Context, appealID string) (*AppealRow, error)
	RecordDecision(ctx context.Context, decision AppealDecision) (*AppealRow, error)
}

// ContentRow mirrors a row of the relational nodes schema.
type ContentRow struct {
	ID               string
	ContentType      *string
	AuthorID         *string
	CreatedAt        *time.Time
	Title            *string
	ModerationStatus *string
	NodeStatus       *string
	History          []map[string]any
}

type ContentQueueFilter struct {
	ContentType string
	Status      string
	AuthorID    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Cursor      string
}

type ContentQueuePage struct {
	Items      []*ContentRow
	NextCursor string
}

type ContentDecision struct {
	ContentID string
	Action    string
	Reason    string
	ActorID   string
	Payload   map[string]any
}

type ContentRepository interface {
	ListQueue(ctx context.Context, filter ContentQueueFilter) (*ContentQueuePage, error)
	LoadContentDetails(ctx context.Context, contentID string) (*ContentRow, error)
	RecordDecision(ctx context.Context, decision ContentDecision) (*ContentRow, error)
}

type TicketRow struct {
	ID          string
	Status      *string
	Priority    *string
	AssigneeID  *string
	UnreadCount *int
	UpdatedAt   *time.Time
	Meta        map[string]any
}

type TicketUpdate struct {
	TicketID    string
	Status      string
	Priority    string
	AssigneeID  string
	UnreadCount int
	UpdatedAt   time.Time
	Meta        map[string]any
}

type TicketMessageRow struct {
	ID          string
	TicketID    string
	AuthorID    string
	AuthorName  string
	Text        string
	Attachments []string
	Internal    bool
	CreatedAt   time.Time
}

type TicketMessagePage struct {
	Items      []*TicketMessageRow
	NextCursor string
}

type TicketRepository interface {
	FetchMany(ctx context.Context, ids []string) (map[string]*TicketRow, error)
	FetchTicket(ctx context.Context, ticketID string) (*TicketRow, error)
	RecordTicketUpdate(ctx context.Context, update TicketUpdate) (*TicketRow, error)
	RecordMessage(ctx context.Context, msg TicketMessageRow, incrementUnread bool) error
	ListMessages(ctx context.Context, ticketID string, limit int, cursor string) (*TicketMessagePage, error)
}

type UserRow struct {
	ID           string
	Username     *string
	Email        *string
	Roles        []string
	Status       *string
	RegisteredAt *time.Time
	LastSeenAt   *time.Time
}

type UserFilter struct {
	Query  string
	Role   string
	Status string
	Limit  int
	Cursor string
}

type UserPage struct {
	Items      []*UserRow
	NextCursor string
}

type SanctionRecord struct {
	ID        string
	UserID    string
	Type      string
	Status    string
	Reason    string
	IssuedBy  string
	IssuedAt  time.Time
	EndsAt    *time.Time
	RevokedAt *time.Time
	RevokedBy string
}

type NoteRecord struct {
	ID        string
	UserID    string
	Text      string
	AuthorID  string
	Pinned    bool
	CreatedAt time.Time
}

// UserRepository is authoritative for identity, roles, notes and active
// ban detection when configured. BootstrapUserStub returns a not-found
// AppError when the user does not exist.
type UserRepository interface {
	ListUsers(ctx context.Context, filter UserFilter) (*UserPage, error)
	GetUser(ctx context.Context, userID string) (*UserRow, error)
	BootstrapUserStub(ctx context.Context, userID string) (*UserRow, error)
	PersistSanction(ctx context.Context, record SanctionRecord) error
	UpdateRoles(ctx context.Context, userID string, add, remove []string) ([]string, error)
	AddNote(ctx context.Context, record NoteRecord) error
}

// EventPublisher delivers domain events to out-of-process consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
