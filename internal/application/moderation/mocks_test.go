package moderation

import (
	"context"
	"sync"
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// fakeClock is a settable clock shared by a test and the service.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testNow}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockSnapshotStore struct {
	EnabledFunc func() bool
	LoadFunc    func(ctx context.Context) (domain.Payload, error)
	SaveFunc    func(ctx context.Context, payload domain.Payload) error

	mu    sync.Mutex
	saves []domain.Payload
	loads int
}

func (m *mockSnapshotStore) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}
	return true
}

func (m *mockSnapshotStore) Load(ctx context.Context) (domain.Payload, error) {
	m.mu.Lock()
	m.loads++
	m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, nil
}

func (m *mockSnapshotStore) Save(ctx context.Context, payload domain.Payload) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, payload); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.saves = append(m.saves, payload)
	m.mu.Unlock()
	return nil
}

func (m *mockSnapshotStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *mockSnapshotStore) LastSave() domain.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil
	}
	return m.saves[len(m.saves)-1]
}

func (m *mockSnapshotStore) LoadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

type mockAppealRepository struct {
	FetchManyFunc      func(ctx context.Context, ids []string) (map[string]*domain.AppealRow, error)
	FetchAppealFunc    func(ctx context.Context, appealID string) (*domain.AppealRow, error)
	RecordDecisionFunc func(ctx context.Context, decision domain.AppealDecision) (*domain.AppealRow, error)
}

func (m *mockAppealRepository) FetchMany(ctx context.Context, ids []string) (map[string]*domain.AppealRow, error) {
	if m.FetchManyFunc != nil {
		return m.FetchManyFunc(ctx, ids)
	}
	return map[string]*domain.AppealRow{}, nil
}

func (m *mockAppealRepository) FetchAppeal(ctx context.Context, appealID string) (*domain.AppealRow, error) {
	if m.FetchAppealFunc != nil {
		return m.FetchAppealFunc(ctx, appealID)
	}
	return nil, nil
}

func (m *mockAppealRepository) RecordDecision(ctx context.Context, decision domain.AppealDecision) (*domain.AppealRow, error) {
	if m.RecordDecisionFunc != nil {
		return m.RecordDecisionFunc(ctx, decision)
	}
	return nil, nil
}

type mockContentRepository struct {
	ListQueueFunc          func(ctx context.Context, filter domain.ContentQueueFilter) (*domain.ContentQueuePage, error)
	LoadContentDetailsFunc func(ctx context.Context, contentID string) (*domain.ContentRow, error)
	RecordDecisionFunc     func(ctx context.Context, decision domain.ContentDecision) (*domain.ContentRow, error)
}

func (m *mockContentRepository) ListQueue(ctx context.Context, filter domain.ContentQueueFilter) (*domain.ContentQueuePage, error) {
	if m.ListQueueFunc != nil {
		return m.ListQueueFunc(ctx, filter)
	}
	return &domain.ContentQueuePage{}, nil
}

func (m *mockContentRepository) LoadContentDetails(ctx context.Context, contentID string) (*domain.ContentRow, error) {
	if m.LoadContentDetailsFunc != nil {
		return m.LoadContentDetailsFunc(ctx, contentID)
	}
	return nil, nil
}

func (m *mockContentRepository) RecordDecision(ctx context.Context, decision domain.ContentDecision) (*domain.ContentRow, error) {
	if m.RecordDecisionFunc != nil {
		return m.RecordDecisionFunc(ctx, decision)
	}
	return nil, nil
}

type mockTicketRepository struct {
	FetchManyFunc          func(ctx context.Context, ids []string) (map[string]*domain.TicketRow, error)
	FetchTicketFunc        func(ctx context.Context, ticketID string) (*domain.TicketRow, error)
	RecordTicketUpdateFunc func(ctx context.Context, update domain.TicketUpdate) (*domain.TicketRow, error)
	RecordMessageFunc      func(ctx context.Context, msg domain.TicketMessageRow, incrementUnread bool) error
	ListMessagesFunc       func(ctx context.Context, ticketID string, limit int, cursor string) (*domain.TicketMessagePage, error)
}

func (m *mockTicketRepository) FetchMany(ctx context.Context, ids []string) (map[string]*domain.TicketRow, error) {
	if m.FetchManyFunc != nil {
		return m.FetchManyFunc(ctx, ids)
	}
	return map[string]*domain.TicketRow{}, nil
}

func (m *mockTicketRepository) FetchTicket(ctx context.Context, ticketID string) (*domain.TicketRow, error) {
	if m.FetchTicketFunc != nil {
		return m.FetchTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) RecordTicketUpdate(ctx context.Context, update domain.TicketUpdate) (*domain.TicketRow, error) {
	if m.RecordTicketUpdateFunc != nil {
		return m.RecordTicketUpdateFunc(ctx, update)
	}
	return nil, nil
}

func (m *mockTicketRepository) RecordMessage(ctx context.Context, msg domain.TicketMessageRow, incrementUnread bool) error {
	if m.RecordMessageFunc != nil {
		return m.RecordMessageFunc(ctx, msg, incrementUnread)
	}
	return nil
}

func (m *mockTicketRepository) ListMessages(ctx context.Context, ticketID string, limit int, cursor string) (*domain.TicketMessagePage, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, ticketID, limit, cursor)
	}
	return &domain.TicketMessagePage{}, nil
}

type mockUserRepository struct {
	ListUsersFunc         func(ctx context.Context, filter domain.UserFilter) (*domain.UserPage, error)
	GetUserFunc           func(ctx context.Context, userID string) (*domain.UserRow, error)
	BootstrapUserStubFunc func(ctx context.Context, userID string) (*domain.UserRow, error)
	PersistSanctionFunc   func(ctx context.Context, record domain.SanctionRecord) error
	UpdateRolesFunc       func(ctx context.Context, userID string, add, remove []string) ([]string, error)
	AddNoteFunc           func(ctx context.Context, record domain.NoteRecord) error
}

func (m *mockUserRepository) ListUsers(ctx context.Context, filter domain.UserFilter) (*domain.UserPage, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, filter)
	}
	return &domain.UserPage{}, nil
}

func (m *mockUserRepository) GetUser(ctx context.Context, userID string) (*domain.UserRow, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) BootstrapUserStub(ctx context.Context, userID string) (*domain.UserRow, error) {
	if m.BootstrapUserStubFunc != nil {
		return m.BootstrapUserStubFunc(ctx, userID)
	}
	return &domain.UserRow{ID: userID}, nil
}

func (m *mockUserRepository) PersistSanction(ctx context.Context, record domain.SanctionRecord) error {
	if m.PersistSanctionFunc != nil {
		return m.PersistSanctionFunc(ctx, record)
	}
	return nil
}

func (m *mockUserRepository) UpdateRoles(ctx context.Context, userID string, add, remove []string) ([]string, error) {
	if m.UpdateRolesFunc != nil {
		return m.UpdateRolesFunc(ctx, userID, add, remove)
	}
	return nil, nil
}

func (m *mockUserRepository) AddNote(ctx context.Context, record domain.NoteRecord) error {
	if m.AddNoteFunc != nil {
		return m.AddNoteFunc(ctx, record)
	}
	return nil
}

type mockEventPublisher struct {
	PublishFunc func(ctx context.Context, evts ...events.DomainEvent) error

	mu        sync.Mutex
	published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	m.mu.Lock()
	m.published = append(m.published, evts...)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, evts...)
	}
	return nil
}

func (m *mockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.published))
	for i, e := range m.published {
		out[i] = e.GetEventType()
	}
	return out
}

type mockRecorder struct {
	NopRecorder

	mu        sync.Mutex
	autoBans  int
	fallbacks []string
	failures  []string
}

func (m *mockRecorder) RecordAutoBan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoBans++
}

func (m *mockRecorder) RecordRepositoryFallback(repository, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, repository+"."+operation)
}

func (m *mockRecorder) RecordPersistenceFailure(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, stage)
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	FatalFunc  func(msg string, args ...any)
	InfowFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	DebugwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) Fatal(msg string, args ...any) {
	if m.FatalFunc != nil {
		m.FatalFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	return m
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
