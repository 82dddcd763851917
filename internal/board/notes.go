package board

import (
	"fmt"
	"time"

	"github.com/gurkanbulca/opsboard/pkg/optional"
)

const (
	noteSeparator = " · "
	dueDateLayout = "2006-01-02"
)

// describeChanges lists one human-readable line per notable field that up actually changes.
func describeChanges(t *Task, up TaskUpdate) []string {
	var changes []string

	if up.Status != nil && *up.Status != t.Status {
		changes = append(changes, fmt.Sprintf("Status changed to %s", *up.Status))
	}
	if up.Priority != nil && *up.Priority != t.Priority {
		changes = append(changes, fmt.Sprintf("Priority changed to %s", *up.Priority))
	}

	if up.Assignee.Present() {
		oldName, newName := "", ""
		if t.Assignee != nil {
			oldName = t.Assignee.Name
		}
		if a, ok := up.Assignee.Get(); ok {
			newName = a.Name
		}
		if oldName != newName {
			if newName == "" {
				changes = append(changes, "Unassigned")
			} else {
				changes = append(changes, fmt.Sprintf("Assigned to %s", newName))
			}
		}
	}

	if up.DueDate.Present() {
		newDue := up.DueDate.Ptr()
		if !sameDueDate(t.DueDate, newDue) {
			if newDue == nil {
				changes = append(changes, "Due date removed")
			} else {
				changes = append(changes, fmt.Sprintf("Due date set to %s", newDue.Format(dueDateLayout)))
			}
		}
	}

	if up.ImageURL.Present() {
		newImage, _ := up.ImageURL.Get()
		switch {
		case newImage == t.ImageURL:
		case newImage == "":
			changes = append(changes, "Image removed")
		case t.ImageURL == "":
			changes = append(changes, "Image added")
		default:
			changes = append(changes, "Image updated")
		}
	}

	return changes
}

func sameDueDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func applyUpdate(t *Task, up TaskUpdate) {
	if up.Title != nil {
		t.Title = *up.Title
	}
	if up.Status != nil {
		t.Status = *up.Status
	}
	if up.Priority != nil {
		t.Priority = *up.Priority
	}
	if up.Type != nil {
		t.Type = *up.Type
	}
	if up.Assignee.Present() {
		t.Assignee = up.Assignee.Ptr()
	}
	if up.DueDate.Present() {
		t.DueDate = up.DueDate.Ptr()
	}
	if up.Checklist.Present() {
		items, _ := up.Checklist.Get()
		t.Checklist = append([]ChecklistItem{}, items...)
	}

	setString(&t.Description, up.Description)
	setString(&t.EventID, up.EventID)
	setString(&t.RelatedIncidentID, up.RelatedIncidentID)
	setString(&t.RelatedWorkOrderID, up.RelatedWorkOrderID)
	setString(&t.RelatedSponsorshipID, up.RelatedSponsorshipID)
	setString(&t.RelatedLabel, up.RelatedLabel)
	setString(&t.ImageURL, up.ImageURL)
}

// setString writes v into dst when present; null clears to "".
func setString(dst *string, v optional.Value[string]) {
	if !v.Present() {
		return
	}
	*dst, _ = v.Get()
}
