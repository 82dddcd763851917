// internal/service/convert.go
package service

import (
	"strings"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/pkg/optional"
)

func convertCreateRequest(req *boardv1.CreateTaskRequest) (board.NewTask, error) {
	st, err := parseOr(req.Status, board.StatusTodo, board.ParseStatus)
	if err != nil {
		return board.NewTask{}, err
	}
	pr, err := parseOr(req.Priority, board.PriorityMedium, board.ParsePriority)
	if err != nil {
		return board.NewTask{}, err
	}
	typ, err := parseOr(req.Type, board.TypeGeneral, board.ParseType)
	if err != nil {
		return board.NewTask{}, err
	}

	in := board.NewTask{
		OrganizationID:       req.OrganizationID,
		EventID:              req.EventID,
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		Status:               st,
		Priority:             pr,
		Type:                 typ,
		DueDate:              req.DueDate,
		RelatedIncidentID:    req.RelatedIncidentID,
		RelatedWorkOrderID:   req.RelatedWorkOrderID,
		RelatedSponsorshipID: req.RelatedSponsorshipID,
		RelatedLabel:         req.RelatedLabel,
		ImageURL:             req.ImageURL,
		Checklist:            convertChecklistFromProto(req.Checklist),
	}
	if req.Assignee != nil {
		a := convertAssigneeFromProto(*req.Assignee)
		in.Assignee = &a
	}
	return in, nil
}

func convertUpdateRequest(req *boardv1.UpdateTaskRequest) (board.TaskUpdate, error) {
	up := board.TaskUpdate{
		Description:          req.Description,
		DueDate:              req.DueDate,
		EventID:              req.EventID,
		RelatedIncidentID:    req.RelatedIncidentID,
		RelatedWorkOrderID:   req.RelatedWorkOrderID,
		RelatedSponsorshipID: req.RelatedSponsorshipID,
		RelatedLabel:         req.RelatedLabel,
		ImageURL:             req.ImageURL,
	}

	if title, ok := req.Title.Get(); ok {
		title = strings.TrimSpace(title)
		up.Title = &title
	}
	if v, ok := req.Status.Get(); ok {
		st, err := board.ParseStatus(v)
		if err != nil {
			return board.TaskUpdate{}, err
		}
		up.Status = &st
	}
	if v, ok := req.Priority.Get(); ok {
		pr, err := board.ParsePriority(v)
		if err != nil {
			return board.TaskUpdate{}, err
		}
		up.Priority = &pr
	}
	if v, ok := req.Type.Get(); ok {
		typ, err := board.ParseType(v)
		if err != nil {
			return board.TaskUpdate{}, err
		}
		up.Type = &typ
	}

	if req.Assignee.Present() {
		if a, ok := req.Assignee.Get(); ok {
			up.Assignee = optional.Of(convertAssigneeFromProto(a))
		} else {
			up.Assignee = optional.Null[board.Assignee]()
		}
	}
	if req.Checklist.Present() {
		items, _ := req.Checklist.Get()
		up.Checklist = optional.Of(convertChecklistFromProto(items))
	}
	return up, nil
}

func parseOr[T ~string](value string, def T, parse func(string) (T, error)) (T, error) {
	if value == "" {
		return def, nil
	}
	return parse(value)
}

func convertAssigneeFromProto(a boardv1.Assignee) board.Assignee {
	return board.Assignee{ID: a.ID, Name: a.Name, Avatar: a.Avatar}
}

func convertChecklistFromProto(items []*boardv1.ChecklistItem) []board.ChecklistItem {
	out := make([]board.ChecklistItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, board.ChecklistItem{ID: item.ID, Text: strings.TrimSpace(item.Text), Done: item.Done})
	}
	return out
}

func convertTasksToProto(tasks []board.Task) []*boardv1.Task {
	out := make([]*boardv1.Task, len(tasks))
	for i, t := range tasks {
		out[i] = convertTaskToProto(t)
	}
	return out
}

func convertTaskToProto(t board.Task) *boardv1.Task {
	proto := &boardv1.Task{
		ID:                   t.ID,
		OrganizationID:       t.OrganizationID,
		EventID:              t.EventID,
		Title:                t.Title,
		Description:          t.Description,
		Status:               string(t.Status),
		Priority:             string(t.Priority),
		Type:                 string(t.Type),
		RelatedIncidentID:    t.RelatedIncidentID,
		RelatedWorkOrderID:   t.RelatedWorkOrderID,
		RelatedSponsorshipID: t.RelatedSponsorshipID,
		RelatedLabel:         t.RelatedLabel,
		ImageURL:             t.ImageURL,
		Checklist:            make([]*boardv1.ChecklistItem, len(t.Checklist)),
		Activity:             make([]*boardv1.Activity, len(t.Activity)),
		ChecklistTotal:       int32(t.ChecklistTotal),
		ChecklistDone:        int32(t.ChecklistDone),
		CommentsCount:        int32(t.CommentsCount),
		CreatedAt:            t.CreatedAt.UTC(),
		UpdatedAt:            t.UpdatedAt.UTC(),
	}

	if t.Assignee != nil {
		proto.Assignee = &boardv1.Assignee{ID: t.Assignee.ID, Name: t.Assignee.Name, Avatar: t.Assignee.Avatar}
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		proto.DueDate = &due
	}
	for i, item := range t.Checklist {
		proto.Checklist[i] = &boardv1.ChecklistItem{ID: item.ID, Text: item.Text, Done: item.Done}
	}
	for i, a := range t.Activity {
		proto.Activity[i] = &boardv1.Activity{
			ID:           a.ID,
			AuthorID:     a.AuthorID,
			AuthorName:   a.AuthorName,
			AuthorAvatar: a.AuthorAvatar,
			Message:      a.Message,
			Kind:         string(a.Kind),
			ImageURL:     a.ImageURL,
			CreatedAt:    a.CreatedAt.UTC(),
		}
	}
	return proto
}

// convertEventToProto returns nil when the event concerns a task outside eventID. A task that
// moved out of eventID is reported as REMOVED.
func convertEventToProto(ev BoardEvent, eventID string) *boardv1.BoardEvent {
	out := &boardv1.BoardEvent{Type: ev.Type, Timestamp: ev.At.UTC()}
	if ev.Task != nil {
		if eventID != "" && ev.Task.EventID != eventID {
			if ev.PrevEventID != eventID {
				return nil
			}
			out.Type = boardv1.EventRemoved
		}
		out.Task = convertTaskToProto(*ev.Task)
	}
	if ev.Tasks != nil {
		out.Tasks = convertTasksToProto(board.FilterByEvent(ev.Tasks, eventID))
	}
	return out
}
