// internal/service/test_helpers.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/middleware"
	"github.com/gurkanbulca/opsboard/internal/repository"
)

// ErrInjected is returned by FlakyRepository when a failure is switched on.
var ErrInjected = errors.New("injected repository failure")

// FlakyRepository wraps a memory repository and fails on demand.
type FlakyRepository struct {
	*repository.MemoryTaskRepository

	mu       sync.Mutex
	failList bool
	failSave bool
	saves    int
}

func NewFlakyRepository() *FlakyRepository {
	return &FlakyRepository{MemoryTaskRepository: repository.NewMemoryTaskRepository()}
}

func (r *FlakyRepository) FailList(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failList = fail
}

func (r *FlakyRepository) FailSave(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failSave = fail
}

// Saves counts successful SaveBoard calls.
func (r *FlakyRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *FlakyRepository) ListBoard(ctx context.Context, orgID string) ([]board.Task, error) {
	r.mu.Lock()
	fail := r.failList
	r.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return r.MemoryTaskRepository.ListBoard(ctx, orgID)
}

func (r *FlakyRepository) SaveBoard(ctx context.Context, orgID string, tasks []board.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return ErrInjected
	}
	r.saves++
	return r.MemoryTaskRepository.SaveBoard(ctx, orgID, tasks)
}

// TestHelpers provides common test utilities
type TestHelpers struct {
	t       *testing.T
	Repo    *FlakyRepository
	Boards  *BoardManager
	Service *TaskService
	Now     time.Time

	mu     sync.Mutex
	nextID int
}

// NewTestHelpers wires a manager and service over a FlakyRepository with a fixed clock and
// sequential ids.
func NewTestHelpers(t *testing.T) *TestHelpers {
	h := &TestHelpers{
		t:    t,
		Repo: NewFlakyRepository(),
		Now:  time.Date(2026, 4, 17, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return h.Now }
	h.Boards = NewBoardManager(h.Repo,
		WithManagerClock(clock),
		WithStoreOptions(board.WithClock(clock), board.WithIDGenerator(h.newID)),
	)
	h.Service = NewTaskService(h.Boards, zerolog.Nop())
	return h
}

func (h *TestHelpers) newID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	return fmt.Sprintf("id-%03d", h.nextID)
}

// SeedBoard stores tasks for orgID in the repository before the board is first loaded.
func (h *TestHelpers) SeedBoard(orgID string, tasks ...board.Task) {
	require.NoError(h.t, h.Repo.Seed(context.Background(), orgID, tasks))
}

// SeedTask builds a minimal persisted task.
func (h *TestHelpers) SeedTask(orgID, id, title string, st board.Status) board.Task {
	return board.Task{
		ID:             id,
		OrganizationID: orgID,
		Title:          title,
		Status:         st,
		Priority:       board.PriorityMedium,
		Type:           board.TypeGeneral,
		Checklist:      []board.ChecklistItem{},
		Activity:       []board.Activity{},
		CreatedAt:      h.Now,
		UpdatedAt:      h.Now,
	}
}

// CreateTask creates a task through the service.
func (h *TestHelpers) CreateTask(orgID, title, status string) *boardv1.Task {
	resp, err := h.Service.CreateTask(context.Background(), &boardv1.CreateTaskRequest{
		OrganizationID: orgID,
		Title:          title,
		Status:         status,
	})
	require.NoError(h.t, err)
	return resp.Task
}

// StartServer serves the TaskService over bufconn with the production interceptor chain and
// returns a connected client.
func (h *TestHelpers) StartServer() boardv1.BoardServiceClient {
	lis := bufconn.Listen(1024 * 1024)

	metadataExtractor := middleware.NewMetadataExtractorInterceptor()
	validator := middleware.NewValidator(nil)
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(metadataExtractor.Unary(), validator.Unary()),
		grpc.ChainStreamInterceptor(metadataExtractor.Stream(), validator.Stream()),
	)
	boardv1.RegisterBoardServiceServer(server, h.Service)

	go func() {
		_ = server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(h.t, err)

	h.t.Cleanup(func() {
		conn.Close()
		server.Stop()
	})
	return boardv1.NewBoardServiceClient(conn)
}
