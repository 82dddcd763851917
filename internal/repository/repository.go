// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/gurkanbulca/opsboard/internal/board"
)

// TaskRepository loads and stores the ordered task list of a board.
type TaskRepository interface {
	// ListBoard returns the tasks of an organization in board order.
	ListBoard(ctx context.Context, orgID string) ([]board.Task, error)
	// SaveBoard persists tasks in the given order.
	SaveBoard(ctx context.Context, orgID string, tasks []board.Task) error
}

func cloneTasks(tasks []board.Task) []board.Task {
	out := make([]board.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
