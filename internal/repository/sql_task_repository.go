// internal/repository/sql_task_repository.go
package repository

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/database"
	"github.com/gurkanbulca/opsboard/internal/models"
)

var taskColumns = []string{
	"id", "organization_id", "event_id", "status", "position", "document", "created_at", "updated_at",
}

// SQLTaskRepository stores boards in the board_tasks table. Queries are built with ent's SQL
// builder for the configured dialect and executed through sqlx.
type SQLTaskRepository struct {
	db      *sqlx.DB
	dialect string
}

func NewSQLTaskRepository(db *sqlx.DB, dialect string) *SQLTaskRepository {
	return &SQLTaskRepository{
		db:      db,
		dialect: dialect,
	}
}

func (r *SQLTaskRepository) ListBoard(ctx context.Context, orgID string) ([]board.Task, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(taskColumns...).
		From(entsql.Table(database.BoardTasksTable)).
		Where(entsql.EQ("organization_id", orgID)).
		OrderBy("position").
		Query()

	var rows []models.TaskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query board %s: %w", orgID, err)
	}

	tasks := make([]board.Task, 0, len(rows))
	for _, row := range rows {
		t, err := row.Task()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// SaveBoard upserts every task with its current position in one transaction.
func (r *SQLTaskRepository) SaveBoard(ctx context.Context, orgID string, tasks []board.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	insert := entsql.Dialect(r.dialect).
		Insert(database.BoardTasksTable).
		Columns(taskColumns...)
	for i, t := range tasks {
		if t.OrganizationID == "" {
			t.OrganizationID = orgID
		}
		if t.OrganizationID != orgID {
			return fmt.Errorf("task %s belongs to %s, not %s", t.ID, t.OrganizationID, orgID)
		}
		row, err := models.NewTaskRow(t, i)
		if err != nil {
			return err
		}
		insert.Values(row.ID, row.OrganizationID, row.EventID, row.Status, row.Position, row.Document, row.CreatedAt, row.UpdatedAt)
	}
	insert.OnConflict(
		entsql.ConflictColumns("organization_id", "id"),
		entsql.ResolveWithNewValues(),
	)
	query, args := insert.Query()

	// Start transaction
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return rollback(tx, fmt.Errorf("save board %s: %w", orgID, err))
	}
	return tx.Commit()
}

// Helper function for transaction rollback
func rollback(tx *sqlx.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		err = fmt.Errorf("%w: %v", err, rerr)
	}
	return err
}
