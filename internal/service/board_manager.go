// internal/service/board_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/repository"
)

var (
	// ErrBoardUnavailable is returned for mutations on a board whose initial load failed.
	ErrBoardUnavailable = errors.New("board unavailable")
	// ErrSyncFailed wraps repository errors after a mutation was rolled back.
	ErrSyncFailed   = errors.New("board sync failed")
	ErrReloadFailed = errors.New("board reload failed")
)

const subscriberBuffer = 32

// BoardSnapshot is a copy of a board. LoadError is set when the board could not be loaded;
// Tasks is then empty.
type BoardSnapshot struct {
	Tasks     []board.Task
	LoadError error
}

// BoardEvent is published after every successful change of a board. PrevEventID is the
// event the task belonged to before the change; it is empty for new tasks.
type BoardEvent struct {
	Type        string
	Task        *board.Task
	PrevEventID string
	Tasks       []board.Task
	At          time.Time
}

// BoardManager owns one board.Store per organization. It loads boards lazily from the repository,
// persists every mutation and rolls the store back when persisting fails.
type BoardManager struct {
	repo      repository.TaskRepository
	logger    zerolog.Logger
	storeOpts []board.Option
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu      sync.Mutex
	store   *board.Store
	loaded  bool
	loadErr error
	subs    map[chan BoardEvent]struct{}
}

type BoardManagerOption func(*BoardManager)

func WithLogger(logger zerolog.Logger) BoardManagerOption {
	return func(m *BoardManager) { m.logger = logger }
}

// WithStoreOptions configures every board.Store the manager creates.
func WithStoreOptions(opts ...board.Option) BoardManagerOption {
	return func(m *BoardManager) { m.storeOpts = append(m.storeOpts, opts...) }
}

func WithManagerClock(now func() time.Time) BoardManagerOption {
	return func(m *BoardManager) { m.now = now }
}

func NewBoardManager(repo repository.TaskRepository, opts ...BoardManagerOption) *BoardManager {
	m := &BoardManager{
		repo:     repo,
		logger:   zerolog.Nop(),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *BoardManager) session(orgID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[orgID]
	if !ok {
		s = &session{
			store: board.NewStore(m.storeOpts...),
			subs:  make(map[chan BoardEvent]struct{}),
		}
		m.sessions[orgID] = s
	}
	return s
}

// ensureLoaded fetches the board on first use. A failed fetch leaves an empty board that
// remembers the error, unless the caller's context ended.
func (m *BoardManager) ensureLoaded(ctx context.Context, orgID string, s *session) error {
	if s.loaded {
		return nil
	}
	tasks, err := m.repo.ListBoard(ctx, orgID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		m.logger.Error().Err(err).Str("org", orgID).Msg("failed to load board")
		s.store.Replace(nil)
		s.loadErr = err
		s.loaded = true
		return nil
	}
	s.store.Replace(tasks)
	s.loadErr = nil
	s.loaded = true
	m.logger.Debug().Str("org", orgID).Int("tasks", len(tasks)).Msg("board loaded")
	return nil
}

// Snapshot returns the current board of orgID, loading it if needed.
func (m *BoardManager) Snapshot(ctx context.Context, orgID string) (BoardSnapshot, error) {
	s := m.session(orgID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, orgID, s); err != nil {
		return BoardSnapshot{}, err
	}
	return BoardSnapshot{Tasks: s.store.Tasks(), LoadError: s.loadErr}, nil
}

// Reload fetches the board again. On failure a loaded board is kept as it is and the error is
// returned; a board that never loaded keeps its load error.
func (m *BoardManager) Reload(ctx context.Context, orgID string) (BoardSnapshot, error) {
	s := m.session(orgID)
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := m.repo.ListBoard(ctx, orgID)
	if err != nil {
		if !s.loaded && ctx.Err() == nil {
			s.store.Replace(nil)
			s.loadErr = err
			s.loaded = true
		}
		return BoardSnapshot{}, fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}

	s.store.Replace(tasks)
	s.loadErr = nil
	s.loaded = true
	snap := BoardSnapshot{Tasks: s.store.Tasks()}
	m.publish(s, BoardEvent{Type: boardv1.EventReloaded, Tasks: snap.Tasks, At: m.now()})
	m.logger.Info().Str("org", orgID).Int("tasks", len(tasks)).Msg("board reloaded")
	return snap, nil
}

// Mutate applies fn to the board of orgID and persists the result. When persisting fails the
// board is restored to its previous state. eventType labels the published BoardEvent.
func (m *BoardManager) Mutate(ctx context.Context, orgID, eventType string, fn func(*board.Store) (board.Task, error)) (board.Task, error) {
	s := m.session(orgID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, orgID, s); err != nil {
		return board.Task{}, err
	}
	if s.loadErr != nil {
		return board.Task{}, fmt.Errorf("%w: %w", ErrBoardUnavailable, s.loadErr)
	}

	before := s.store.Tasks()
	task, err := fn(s.store)
	if err != nil {
		return board.Task{}, err
	}

	// Blank comments, unknown checklist items and same-column drops change nothing.
	after := s.store.Tasks()
	if cmp.Equal(before, after) {
		return task, nil
	}

	if err := m.repo.SaveBoard(ctx, orgID, after); err != nil {
		s.store.Replace(before)
		m.logger.Error().Err(err).Str("org", orgID).Str("task", task.ID).Msg("failed to persist board, rolled back")
		return board.Task{}, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	ev := BoardEvent{Type: eventType, Task: &task, At: m.now()}
	if prev, ok := findTask(before, task.ID); ok {
		ev.PrevEventID = prev.EventID
	}
	m.publish(s, ev)
	return task, nil
}

// Watch returns the current board together with a channel of subsequent events. The channel is
// closed when stop is called or when the subscriber falls behind.
func (m *BoardManager) Watch(ctx context.Context, orgID string) (BoardSnapshot, <-chan BoardEvent, func(), error) {
	s := m.session(orgID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, orgID, s); err != nil {
		return BoardSnapshot{}, nil, nil, err
	}

	ch := make(chan BoardEvent, subscriberBuffer)
	s.subs[ch] = struct{}{}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
	return BoardSnapshot{Tasks: s.store.Tasks(), LoadError: s.loadErr}, ch, stop, nil
}

// publish must be called with s.mu held. Subscribers whose buffer is full are dropped.
func (m *BoardManager) publish(s *session, ev BoardEvent) {
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			delete(s.subs, ch)
			close(ch)
			m.logger.Warn().Str("event", ev.Type).Msg("dropping slow board subscriber")
		}
	}
}

func findTask(tasks []board.Task, id string) (board.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return board.Task{}, false
}
