package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/opsboard/internal/board"
)

func TestTaskRow_RoundTrip(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	task := board.Task{
		ID:             "t-1",
		OrganizationID: "org-1",
		EventID:        "evt-1",
		Title:          "Check floodlights",
		Status:         board.StatusBlocked,
		Priority:       board.PriorityCritical,
		Type:           board.TypeWorkOrder,
		DueDate:        &due,
		Checklist:      []board.ChecklistItem{{ID: "c1", Text: "Tower A", Done: true}},
		Activity:       []board.Activity{},
		ChecklistTotal: 1,
		ChecklistDone:  1,
		CreatedAt:      time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
	}

	row, err := NewTaskRow(task, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, row.Position)
	assert.Equal(t, "BLOCKED", row.Status)
	assert.True(t, row.EventID.Valid)

	back, err := row.Task()
	require.NoError(t, err)
	assert.Equal(t, task, back)
}

func TestTaskRow_NoEvent(t *testing.T) {
	row, err := NewTaskRow(board.Task{ID: "t-2", Status: board.StatusTodo}, 0)
	require.NoError(t, err)
	assert.False(t, row.EventID.Valid)

	_, err = TaskRow{ID: "bad", Document: "{"}.Task()
	assert.Error(t, err)
}
