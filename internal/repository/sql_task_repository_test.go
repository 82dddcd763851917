package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/database"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, dialect.SQLite))
	return db
}

func sampleTask(id, org string, status board.Status, at time.Time) board.Task {
	return board.Task{
		ID:             id,
		OrganizationID: org,
		Title:          "task " + id,
		Status:         status,
		Priority:       board.PriorityMedium,
		Type:           board.TypeGeneral,
		Checklist:      []board.ChecklistItem{},
		Activity:       []board.Activity{},
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}

func TestSQLTaskRepository_SaveAndListKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(setupTestDB(t), dialect.SQLite)
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	a := sampleTask("a", "org-1", board.StatusTodo, at)
	a.EventID = "evt-1"
	b := sampleTask("b", "org-1", board.StatusDone, at)
	other := sampleTask("z", "org-2", board.StatusTodo, at)

	require.NoError(t, repo.SaveBoard(ctx, "org-1", []board.Task{b, a}))
	require.NoError(t, repo.SaveBoard(ctx, "org-2", []board.Task{other}))

	got, err := repo.ListBoard(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "evt-1", got[1].EventID)

	// Reorder and change a task: rows are upserted in place.
	a.Title = "renamed"
	require.NoError(t, repo.SaveBoard(ctx, "org-1", []board.Task{a, b}))

	got, err = repo.ListBoard(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "renamed", got[0].Title)
	assert.Equal(t, "b", got[1].ID)

	none, err := repo.ListBoard(ctx, "org-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLTaskRepository_RejectsForeignTask(t *testing.T) {
	repo := NewSQLTaskRepository(setupTestDB(t), dialect.SQLite)
	err := repo.SaveBoard(context.Background(), "org-1", []board.Task{
		sampleTask("x", "org-2", board.StatusTodo, time.Now()),
	})
	assert.Error(t, err)
}

func TestSQLTaskRepository_EmptySaveIsNoOp(t *testing.T) {
	repo := NewSQLTaskRepository(setupTestDB(t), dialect.SQLite)
	assert.NoError(t, repo.SaveBoard(context.Background(), "org-1", nil))
}

func TestSQLTaskRepository_SameIDInTwoOrganizations(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(setupTestDB(t), dialect.SQLite)
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	first := sampleTask("shared", "org-1", board.StatusTodo, at)
	first.Title = "org 1 copy"
	second := sampleTask("shared", "org-2", board.StatusDone, at)
	second.Title = "org 2 copy"

	require.NoError(t, repo.SaveBoard(ctx, "org-1", []board.Task{first}))
	require.NoError(t, repo.SaveBoard(ctx, "org-2", []board.Task{second}))

	got, err := repo.ListBoard(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "org 1 copy", got[0].Title)
	assert.Equal(t, "org-1", got[0].OrganizationID)

	got, err = repo.ListBoard(ctx, "org-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "org 2 copy", got[0].Title)
	assert.Equal(t, board.StatusDone, got[0].Status)
}
