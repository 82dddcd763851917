// internal/repository/memory_task_repository.go
package repository

import (
	"context"
	"sync"

	"github.com/gurkanbulca/opsboard/internal/board"
)

// MemoryTaskRepository backs the board with mock data when no database is configured.
type MemoryTaskRepository struct {
	mu     sync.RWMutex
	boards map[string][]board.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		boards: make(map[string][]board.Task),
	}
}

// Seed replaces the board of orgID.
func (r *MemoryTaskRepository) Seed(ctx context.Context, orgID string, tasks []board.Task) error {
	return r.SaveBoard(ctx, orgID, tasks)
}

func (r *MemoryTaskRepository) ListBoard(ctx context.Context, orgID string) ([]board.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneTasks(r.boards[orgID]), nil
}

func (r *MemoryTaskRepository) SaveBoard(ctx context.Context, orgID string, tasks []board.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.boards[orgID] = cloneTasks(tasks)
	return nil
}

// Organizations lists the organization ids that have a board.
func (r *MemoryTaskRepository) Organizations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.boards))
	for id := range r.boards {
		out = append(out, id)
	}
	return out
}
