// internal/database/schema.go
package database

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/jmoiron/sqlx"

	"github.com/gurkanbulca/opsboard/internal/board"
)

// BoardTasksTable is the name of the table holding board tasks.
const BoardTasksTable = "board_tasks"

var (
	// BoardTasksColumns holds the columns for the "board_tasks" table.
	BoardTasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "organization_id", Type: field.TypeString, Size: 64},
		{Name: "event_id", Type: field.TypeString, Nullable: true, Size: 64},
		{Name: "status", Type: field.TypeEnum, Enums: statusEnums()},
		{Name: "position", Type: field.TypeInt},
		{Name: "document", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// BoardTasks holds the schema information for the "board_tasks" table.
	// Task ids are unique per organization.
	BoardTasks = &schema.Table{
		Name:       BoardTasksTable,
		Columns:    BoardTasksColumns,
		PrimaryKey: []*schema.Column{BoardTasksColumns[1], BoardTasksColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "boardtask_organization_id_position",
				Unique:  false,
				Columns: []*schema.Column{BoardTasksColumns[1], BoardTasksColumns[4]},
			},
			{
				Name:    "boardtask_organization_id_event_id",
				Unique:  false,
				Columns: []*schema.Column{BoardTasksColumns[1], BoardTasksColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		BoardTasks,
	}
)

func statusEnums() []string {
	out := make([]string, len(board.Statuses))
	for i, s := range board.Statuses {
		out[i] = string(s)
	}
	return out
}

// Migrate creates or alters the schema on db. dialectName is an ent dialect
// (dialect.Postgres, dialect.SQLite).
func Migrate(ctx context.Context, db *sqlx.DB, dialectName string) error {
	drv := entsql.OpenDB(dialectName, db.DB)
	m, err := schema.NewMigrate(
		drv,
		schema.WithDropIndex(true),
		schema.WithDropColumn(true),
		schema.WithForeignKeys(true),
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("run auto migration: %w", err)
	}
	return nil
}
