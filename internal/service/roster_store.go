package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/identity"
)

// ErrNotInitialized is returned by mutations issued before Initialize
var ErrNotInitialized = errors.New("roster store not initialized")

// Remote is the remote roster endpoint the store reconciles with
type Remote interface {
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) (domain.Client, error)
	Delete(ctx context.Context, id string) error
}

// SyncObserver is told the outcome of every remote call the store makes
type SyncObserver interface {
	ObserveSync(op string, err error)
}

// Source tells where the roster came from on Initialize
type Source int

const (
	SourceRemote Source = iota
	SourceSeed
	// SourceKept means a reload failed and the current roster was left as is
	SourceKept
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceSeed:
		return "seed"
	case SourceKept:
		return "kept"
	default:
		return "unknown"
	}
}

// RosterStore owns the canonical in-memory client list.
//
// Every mutation is applied locally first and always sticks. The matching
// remote call runs in the background and its outcome is only logged and
// reported to the SyncObserver, never surfaced to the caller or rolled back.
type RosterStore struct {
	remote   Remote
	ids      identity.Generator
	logger   *slog.Logger
	observer SyncObserver
	now      func() time.Time
	pageSize int

	mu          sync.RWMutex
	clients     []domain.Client
	initialized bool
	selectedID  string
	pendingID   string

	inflight sync.WaitGroup
}

// StoreOption configures a RosterStore
type StoreOption func(*RosterStore)

// WithStoreLogger sets the diagnostics logger
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *RosterStore) { s.logger = l }
}

// WithSyncObserver registers an observer for remote call outcomes
func WithSyncObserver(o SyncObserver) StoreOption {
	return func(s *RosterStore) { s.observer = o }
}

// WithClock overrides the clock used to stamp registrations
func WithClock(now func() time.Time) StoreOption {
	return func(s *RosterStore) { s.now = now }
}

// WithPageSize sets the page size used by View
func WithPageSize(n int) StoreOption {
	return func(s *RosterStore) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewRosterStore creates an uninitialized store
func NewRosterStore(remote Remote, ids identity.Generator, opts ...StoreOption) *RosterStore {
	s := &RosterStore{
		remote:   remote,
		ids:      ids,
		logger:   slog.Default(),
		now:      time.Now,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the roster from the remote endpoint. Any failure is
// absorbed: on first load the store falls back to the demonstration roster
// so callers never see an empty or error state on startup. Calling it again
// reloads; a failed reload keeps the current roster and its local changes.
func (s *RosterStore) Initialize(ctx context.Context) Source {
	clients, err := s.remote.List(ctx)
	s.observe("list", err)

	s.mu.Lock()
	defer s.mu.Unlock()

	source := SourceRemote
	if err != nil {
		if s.initialized {
			s.logger.Warn("reloading roster from remote failed, keeping current roster", "error", err)
			return SourceKept
		}
		s.logger.Warn("loading roster from remote failed, using seed data", "error", err)
		clients = domain.SeedClients()
		source = SourceSeed
	}

	s.clients = clients
	s.initialized = true
	if s.indexOf(s.selectedID) < 0 {
		s.selectedID = ""
	}
	if s.indexOf(s.pendingID) < 0 {
		s.pendingID = ""
	}

	s.logger.Info("roster initialized", "source", source.String(), "clients", len(clients))
	return source
}

// Initialized reports whether Initialize has completed
func (s *RosterStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Add validates the candidate, assigns an id and registration time, and
// appends the client. Only a *domain.ValidationError (roster unchanged) or
// ErrNotInitialized is ever returned.
func (s *RosterStore) Add(ctx context.Context, candidate domain.NewClient) (domain.Client, error) {
	candidate = candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		return domain.Client{}, err
	}

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return domain.Client{}, ErrNotInitialized
	}
	client := candidate.Build(s.ids.NewID(), domain.NewTimestamp(s.now().UTC().Truncate(time.Second)))
	s.clients = append(s.clients, client)
	s.mu.Unlock()

	s.background(ctx, "create", client.ID, func(ctx context.Context) error {
		_, err := s.remote.Create(ctx, client)
		return err
	})
	return client, nil
}

// Update merges the supplied fields into the client with id. An unknown id
// is a no-op reported by ok == false. The merge is never rolled back.
func (s *RosterStore) Update(ctx context.Context, id string, patch domain.ClientPatch) (client domain.Client, ok bool, err error) {
	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		return domain.Client{}, false, err
	}

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return domain.Client{}, false, ErrNotInitialized
	}
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Client{}, false, nil
	}
	patch.Apply(&s.clients[i])
	client = s.clients[i]
	s.mu.Unlock()

	if patch.IsEmpty() {
		return client, true, nil
	}

	s.background(ctx, "update", id, func(ctx context.Context) error {
		_, err := s.remote.Update(ctx, id, patch)
		return err
	})
	return client, true, nil
}

// Remove deletes the client with id, clearing any selection or pending
// delete that pointed at it. Removing an absent id changes nothing locally;
// the remote delete is still attempted since the endpoint may hold the id.
func (s *RosterStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return false, ErrNotInitialized
	}
	removed := s.removeLocked(id)
	s.mu.Unlock()

	s.background(ctx, "delete", id, func(ctx context.Context) error {
		return s.remote.Delete(ctx, id)
	})
	return removed, nil
}

func (s *RosterStore) removeLocked(id string) bool {
	if s.selectedID == id {
		s.selectedID = ""
	}
	if s.pendingID == id {
		s.pendingID = ""
	}
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	return true
}

// Select marks the client with id as the one shown in the detail view
func (s *RosterStore) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

// Selected returns the current state of the selected client
func (s *RosterStore) Selected() (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.selectedID)
}

func (s *RosterStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// RequestDelete marks the client with id as awaiting delete confirmation
func (s *RosterStore) RequestDelete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.pendingID = id
	return true
}

// PendingDelete returns the client awaiting delete confirmation
func (s *RosterStore) PendingDelete() (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.pendingID)
}

func (s *RosterStore) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingID = ""
}

// ConfirmDelete removes the client awaiting confirmation, if any
func (s *RosterStore) ConfirmDelete(ctx context.Context) (domain.Client, bool, error) {
	pending, ok := s.PendingDelete()
	if !ok {
		return domain.Client{}, false, nil
	}
	removed, err := s.Remove(ctx, pending.ID)
	if err != nil {
		return domain.Client{}, false, err
	}
	return pending, removed, nil
}

// Clients returns a copy of the roster in order
func (s *RosterStore) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Get returns the client with id
func (s *RosterStore) Get(id string) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id)
}

func (s *RosterStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Stats returns the dashboard aggregates over the whole roster
func (s *RosterStore) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ComputeStats(s.clients)
}

// PageSize returns the page size used by View
func (s *RosterStore) PageSize() int {
	return s.pageSize
}

// View derives the requested page of clients matching query
func (s *RosterStore) View(query string, page int) Page {
	return DeriveView(s.Clients(), query, page, s.pageSize)
}

// Wait blocks until every remote call issued so far has finished
func (s *RosterStore) Wait() {
	s.inflight.Wait()
}

// background fires a remote call that outlives the caller's context.
// Its result is never applied to local state.
func (s *RosterStore) background(ctx context.Context, op, id string, call func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		err := call(ctx)
		s.observe(op, err)
		if err != nil {
			s.logger.Warn("remote sync failed, keeping local change", "op", op, "id", id, "error", err)
			return
		}
		s.logger.Debug("remote sync ok", "op", op, "id", id)
	}()
}

func (s *RosterStore) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveSync(op, err)
	}
}

// indexOf must be called with mu held
func (s *RosterStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *RosterStore) lookup(id string) (domain.Client, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Client{}, false
	}
	return s.clients[i], true
}
