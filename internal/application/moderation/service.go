// Package moderation implements the moderation service: a single-process
// aggregate graph guarded by one lock, persisted as whole-graph snapshots
// and optionally backed by SQL repositories that are authoritative when
// configured.
package moderation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/snapshot"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/shared/biztime"
	"github.com/orris-inc/moderation/internal/shared/constants"
	apperrors "github.com/orris-inc/moderation/internal/shared/errors"
	"github.com/orris-inc/moderation/internal/shared/logger"
	"github.com/orris-inc/moderation/internal/shared/services/markdown"
)

// Policy holds the tunable business rules of the service.
type Policy struct {
	WarningThreshold int
	WarningWindow    time.Duration
	DefaultPageLimit int
	MaxPageLimit     int
	RecentSanctions  int
	FlaggedUsers     int
}

func DefaultPolicy() Policy {
	return Policy{
		WarningThreshold: 3,
		WarningWindow:    10 * 24 * time.Hour,
		DefaultPageLimit: constants.DefaultPageLimit,
		MaxPageLimit:     constants.MaxPageLimit,
		RecentSanctions:  5,
		FlaggedUsers:     3,
	}
}

// Service is the moderation facade. It owns the aggregate graph for the
// lifetime of the process and must be constructed once.
type Service struct {
	mu    sync.Mutex
	store *domain.Store
	dirty bool

	loadMu sync.Mutex
	loaded atomic.Bool
	// saveSuspended stops an empty graph from overwriting a snapshot that
	// could not be read.
	saveSuspended atomic.Bool

	persistMu sync.Mutex

	snapshots domain.SnapshotStore
	appeals   domain.AppealRepository
	content   domain.ContentRepository
	tickets   domain.TicketRepository
	users     domain.UserRepository
	publisher domain.EventPublisher
	metrics   Recorder
	markdown  markdown.MarkdownService

	policy Policy
	seed   bool
	now    func() time.Time
	logger logger.Interface
}

type Option func(*Service)

func WithAppealRepository(repo domain.AppealRepository) Option {
	return func(s *Service) { s.appeals = repo }
}

func WithContentRepository(repo domain.ContentRepository) Option {
	return func(s *Service) { s.content = repo }
}

func WithTicketRepository(repo domain.TicketRepository) Option {
	return func(s *Service) { s.tickets = repo }
}

func WithUserRepository(repo domain.UserRepository) Option {
	return func(s *Service) { s.users = repo }
}

func WithEventPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(recorder Recorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

func WithPolicy(policy Policy) Option {
	return func(s *Service) { s.policy = policy }
}

// WithSeedDemoData populates demo records when no snapshot exists.
func WithSeedDemoData(seed bool) Option {
	return func(s *Service) { s.seed = seed }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMarkdownService(svc markdown.MarkdownService) Option {
	return func(s *Service) { s.markdown = svc }
}

func NewService(snapshots domain.SnapshotStore, log logger.Interface, opts ...Option) *Service {
	s := &Service{
		store:     domain.NewStore(),
		snapshots: snapshots,
		metrics:   NopRecorder{},
		policy:    DefaultPolicy(),
		now:       biztime.NowUTC,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.markdown == nil {
		s.markdown = markdown.NewMarkdownService()
	}
	return s
}

// clock returns the current time at the resolution kept in snapshots.
func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// tx is the view of the graph handed to logic running under the lock.
type tx struct {
	store  *domain.Store
	now    time.Time
	dirty  bool
	events []events.DomainEvent
}

// touch marks the graph changed. Reads call it when lazy expiry flips a
// sanction.
func (t *tx) touch() {
	t.dirty = true
}

// noop marks a write that turned out to change nothing, such as an
// idempotent replay.
func (t *tx) noop() {
	t.dirty = false
}

func (t *tx) emit(evt events.DomainEvent) {
	t.events = append(t.events, evt)
}

// execute runs fn under the graph lock. Writes start dirty; reads become
// dirty only when fn calls touch. Snapshot persistence and event delivery
// happen after the lock is released.
func execute[T any](ctx context.Context, s *Service, op string, write bool, fn func(t *tx) (T, error)) (T, error) {
	var zero T
	s.ensureLoaded(ctx)

	s.mu.Lock()
	t := &tx{store: s.store, now: s.clock(), dirty: write}
	result, err := fn(t)
	if err == nil && t.dirty {
		s.dirty = true
	}
	s.mu.Unlock()

	if err != nil {
		s.metrics.RecordOperation(op, outcomeOf(err))
		s.logger.Debugw("moderation operation rejected", "operation", op, "error", err)
		return zero, err
	}
	s.metrics.RecordOperation(op, OutcomeSuccess)

	if t.dirty {
		s.persist(ctx)
	}
	s.publish(ctx, t.events)
	return result, nil
}

func query[T any](ctx context.Context, s *Service, op string, fn func(t *tx) (T, error)) (T, error) {
	return execute(ctx, s, op, false, fn)
}

func mutate[T any](ctx context.Context, s *Service, op string, fn func(t *tx) (T, error)) (T, error) {
	return execute(ctx, s, op, true, fn)
}

// ensureLoaded restores the latest snapshot on first use. A missing
// snapshot seeds demo data when enabled. A failed load starts empty and
// suspends saves until the process restarts.
func (s *Service) ensureLoaded(ctx context.Context) {
	if s.loaded.Load() {
		return
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.loaded.Load() {
		return
	}
	defer s.loaded.Store(true)

	var payload domain.Payload
	if s.snapshots != nil && s.snapshots.Enabled() {
		var err error
		payload, err = s.snapshots.Load(ctx)
		if err != nil {
			s.suspendSaves("failed to load moderation snapshot", err)
			return
		}
	}

	if payload != nil {
		restored, err := snapshot.Decode(payload)
		if err != nil {
			s.suspendSaves("failed to decode moderation snapshot", err)
			return
		}
		s.mu.Lock()
		s.store = restored
		s.dirty = false
		s.mu.Unlock()
		s.logger.Infow("moderation snapshot restored",
			"users", len(restored.Users),
			"sanctions", len(restored.Sanctions),
			"reports", len(restored.Reports),
		)
		return
	}

	if s.seed {
		s.mu.Lock()
		seedDemoData(s.store, s.clock())
		s.dirty = true
		s.mu.Unlock()
		s.logger.Infow("moderation demo data seeded")
	}
}

func (s *Service) suspendSaves(msg string, err error) {
	s.saveSuspended.Store(true)
	s.metrics.RecordPersistenceFailure("load")
	s.logger.Errorw(msg+", starting empty with snapshot saves suspended",
		"error", apperrors.NewPersistenceError("snapshot load failed", err.Error()),
	)
}

// persist writes the whole graph when dirty. The payload is encoded under
// the graph lock and saved outside it; persistMu keeps saves in encode
// order. A failed save re-marks the graph dirty so the next write retries.
func (s *Service) persist(ctx context.Context) {
	if s.snapshots == nil || !s.snapshots.Enabled() || s.saveSuspended.Load() {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	payload := snapshot.Encode(s.store)
	s.dirty = false
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, payload); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		s.metrics.RecordPersistenceFailure("save")
		s.logger.Warnw("failed to save moderation snapshot",
			"error", apperrors.NewPersistenceError("snapshot save failed", err.Error()),
		)
	}
}

// Flush persists pending changes. It is called on shutdown.
func (s *Service) Flush(ctx context.Context) {
	if !s.loaded.Load() {
		return
	}
	s.persist(ctx)
}

func (s *Service) publish(ctx context.Context, evts []events.DomainEvent) {
	if s.publisher == nil || len(evts) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, evts...); err != nil {
		s.logger.Warnw("failed to publish moderation events", "count", len(evts), "error", err)
	}
}

// repoFailed records a repository error that degrades to in-memory data.
func (s *Service) repoFailed(repo, op string, err error) {
	s.metrics.RecordRepositoryFallback(repo, op)
	s.logger.Warnw("moderation repository unavailable, using in-memory data",
		"repository", repo,
		"operation", op,
		"error", apperrors.NewPersistenceError(repo+" "+op+" failed", err.Error()),
	)
}

// Export returns an encoded copy of the current graph.
func (s *Service) Export(ctx context.Context) (domain.Payload, error) {
	return query(ctx, s, "export", func(t *tx) (domain.Payload, error) {
		return snapshot.Encode(t.store), nil
	})
}
