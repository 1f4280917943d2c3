package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPageLimit = 20
	MaxPageLimit     = 200

	// HTTP Headers
	HeaderXRequestID     = "X-Request-ID"
	HeaderXActorID       = "X-Actor-ID"
	HeaderIdempotencyKey = "Idempotency-Key"

	// Context keys
	ContextKeyActorID   = "actor_id"
	ContextKeyRequestID = "request_id"

	// Moderation table names
	TableUsers                 = "users"
	TableUserRoles             = "user_roles"
	TableModeratorUserNotes    = "moderator_user_notes"
	TableUserSanctions         = "user_sanctions"
	TableNodes                 = "nodes"
	TableNodeModerationHistory = "node_moderation_history"
	TableModerationAppeals     = "moderation_appeals"
	TableModerationTickets     = "moderation_tickets"
	TableModerationMessages    = "moderation_ticket_messages"
	TableModerationSnapshots   = "moderation_snapshots"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)
