// internal/board/task.go
package board

import (
	"fmt"
	"time"
)

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusBlocked    Status = "BLOCKED"
	StatusDone       Status = "DONE"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// TaskType links a task to the operational area it came from.
type TaskType string

const (
	TypeGeneral     TaskType = "GENERAL"
	TypeIncident    TaskType = "INCIDENT"
	TypeWorkOrder   TaskType = "WORK_ORDER"
	TypeSponsorship TaskType = "SPONSORSHIP"
	TypeReferee     TaskType = "REFEREE"
	TypeInventory   TaskType = "INVENTORY"
)

var TaskTypes = []TaskType{TypeGeneral, TypeIncident, TypeWorkOrder, TypeSponsorship, TypeReferee, TypeInventory}

type ActivityKind string

const (
	ActivityComment ActivityKind = "COMMENT"
	ActivityUpdate  ActivityKind = "UPDATE"
)

// System author used for generated activity notes.
const (
	SystemAuthorID   = "system"
	SystemAuthorName = "System"
)

type Assignee struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar"`
}

type ChecklistItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Activity is an immutable comment or system note attached to a task.
type Activity struct {
	ID           string       `json:"id" yaml:"id"`
	AuthorID     string       `json:"authorId" yaml:"authorId"`
	AuthorName   string       `json:"authorName" yaml:"authorName"`
	AuthorAvatar string       `json:"authorAvatar,omitempty" yaml:"authorAvatar"`
	Message      string       `json:"message" yaml:"message"`
	Kind         ActivityKind `json:"kind" yaml:"kind"`
	ImageURL     string       `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CreatedAt    time.Time    `json:"createdAt" yaml:"createdAt"`
}

// Author identifies who writes a comment.
type Author struct {
	ID     string
	Name   string
	Avatar string
}

// Task is one card on the board. Empty strings mean "not set" for the optional text fields.
type Task struct {
	ID                   string          `json:"id" yaml:"id"`
	OrganizationID       string          `json:"organizationId" yaml:"organizationId"`
	EventID              string          `json:"eventId,omitempty" yaml:"eventId"`
	Title                string          `json:"title" yaml:"title"`
	Description          string          `json:"description,omitempty" yaml:"description"`
	Status               Status          `json:"status" yaml:"status"`
	Priority             Priority        `json:"priority" yaml:"priority"`
	Type                 TaskType        `json:"type" yaml:"type"`
	Assignee             *Assignee       `json:"assignee,omitempty" yaml:"assignee"`
	DueDate              *time.Time      `json:"dueDate,omitempty" yaml:"dueDate"`
	RelatedIncidentID    string          `json:"relatedIncidentId,omitempty" yaml:"relatedIncidentId"`
	RelatedWorkOrderID   string          `json:"relatedWorkOrderId,omitempty" yaml:"relatedWorkOrderId"`
	RelatedSponsorshipID string          `json:"relatedSponsorshipId,omitempty" yaml:"relatedSponsorshipId"`
	RelatedLabel         string          `json:"relatedLabel,omitempty" yaml:"relatedLabel"`
	ImageURL             string          `json:"imageUrl,omitempty" yaml:"imageUrl"`
	Checklist            []ChecklistItem `json:"checklist" yaml:"checklist"`
	Activity             []Activity      `json:"activity" yaml:"activity"`
	ChecklistTotal       int             `json:"checklistTotal" yaml:"-"`
	ChecklistDone        int             `json:"checklistDone" yaml:"-"`
	CommentsCount        int             `json:"commentsCount" yaml:"-"`
	CreatedAt            time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (t Task) Clone() Task {
	c := t
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Checklist = append([]ChecklistItem{}, t.Checklist...)
	c.Activity = append([]Activity{}, t.Activity...)
	return c
}

// recount derives the summary counters from the live child slices.
func (t *Task) recount() {
	done := 0
	for _, item := range t.Checklist {
		if item.Done {
			done++
		}
	}
	t.ChecklistTotal = len(t.Checklist)
	t.ChecklistDone = done
	t.CommentsCount = len(t.Activity)
}

// Column is the stable sub-sequence of tasks that share a status.
type Column struct {
	Status Status `json:"status"`
	Tasks  []Task `json:"tasks"`
}

func ParseStatus(s string) (Status, error) {
	for _, v := range Statuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: status %q", ErrInvalidEnum, s)
}

func ParsePriority(s string) (Priority, error) {
	for _, v := range Priorities {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: priority %q", ErrInvalidEnum, s)
}

func ParseType(s string) (TaskType, error) {
	for _, v := range TaskTypes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: type %q", ErrInvalidEnum, s)
}

// FilterByEvent keeps tasks scoped to eventID. An empty eventID keeps everything.
func FilterByEvent(tasks []Task, eventID string) []Task {
	if eventID == "" {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out
}

func FilterByStatus(tasks []Task, status Status) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// GroupColumns splits a flat ordered list into one column per status, preserving order.
func GroupColumns(tasks []Task) []Column {
	cols := make([]Column, len(Statuses))
	for i, st := range Statuses {
		cols[i] = Column{Status: st, Tasks: FilterByStatus(tasks, st)}
	}
	return cols
}
