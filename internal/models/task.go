// internal/models/task.go
package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gurkanbulca/opsboard/internal/board"
)

// TaskRow is one row of board_tasks. The full task travels in Document; the other columns
// exist for filtering and ordering.
type TaskRow struct {
	ID             string         `db:"id"`
	OrganizationID string         `db:"organization_id"`
	EventID        sql.NullString `db:"event_id"`
	Status         string         `db:"status"`
	Position       int            `db:"position"`
	Document       string         `db:"document"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// NewTaskRow encodes t at the given index of its board.
func NewTaskRow(t board.Task, position int) (TaskRow, error) {
	doc, err := json.Marshal(t)
	if err != nil {
		return TaskRow{}, fmt.Errorf("encode task %s: %w", t.ID, err)
	}
	return TaskRow{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		EventID:        sql.NullString{String: t.EventID, Valid: t.EventID != ""},
		Status:         string(t.Status),
		Position:       position,
		Document:       string(doc),
		CreatedAt:      t.CreatedAt.UTC(),
		UpdatedAt:      t.UpdatedAt.UTC(),
	}, nil
}

// Task decodes the row back into a board task.
func (r TaskRow) Task() (board.Task, error) {
	var t board.Task
	if err := json.Unmarshal([]byte(r.Document), &t); err != nil {
		return board.Task{}, fmt.Errorf("decode task %s: %w", r.ID, err)
	}
	return t, nil
}
