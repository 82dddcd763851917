// internal/export/board_workbook.go
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gurkanbulca/opsboard/internal/board"
)

const (
	SheetName   = "Board"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []interface{}{
	"Status", "Position", "Title", "Priority", "Type", "Assignee", "Due", "Checklist", "Comments", "Updated",
}

var columnWidths = []float64{14, 10, 40, 12, 14, 20, 12, 12, 10, 20}

// BoardWorkbook renders the board as a single-sheet xlsx file, one row per task in column order.
// Position is the 1-based index of the task inside its column.
func BoardWorkbook(columns []board.Column) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"1F4E78"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}
	for i, w := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, col := range columns {
		for i, t := range col.Tasks {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := taskRow(t, i+1)
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return nil, fmt.Errorf("write task %s: %w", t.ID, err)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func taskRow(t board.Task, position int) []interface{} {
	assignee := ""
	if t.Assignee != nil {
		assignee = t.Assignee.Name
	}
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	return []interface{}{
		string(t.Status),
		position,
		t.Title,
		string(t.Priority),
		string(t.Type),
		assignee,
		due,
		fmt.Sprintf("%d/%d", t.ChecklistDone, t.ChecklistTotal),
		t.CommentsCount,
		t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
