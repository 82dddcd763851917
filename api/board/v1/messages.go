// api/board/v1/messages.go
package boardv1

import (
	"time"

	"github.com/gurkanbulca/opsboard/pkg/optional"
)

// Event types carried by BoardEvent.
const (
	EventSnapshot  = "SNAPSHOT"
	EventCreated   = "CREATED"
	EventUpdated   = "UPDATED"
	EventMoved     = "MOVED"
	EventCommented = "COMMENTED"
	EventChecklist = "CHECKLIST"
	EventReloaded  = "RELOADED"
	EventRemoved   = "REMOVED"
)

type Assignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type ChecklistItem struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Activity struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Message      string    `json:"message"`
	Kind         string    `json:"kind"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Task struct {
	ID                   string           `json:"id"`
	OrganizationID       string           `json:"organizationId"`
	EventID              string           `json:"eventId,omitempty"`
	Title                string           `json:"title"`
	Description          string           `json:"description,omitempty"`
	Status               string           `json:"status"`
	Priority             string           `json:"priority"`
	Type                 string           `json:"type"`
	Assignee             *Assignee        `json:"assignee,omitempty"`
	DueDate              *time.Time       `json:"dueDate,omitempty"`
	RelatedIncidentID    string           `json:"relatedIncidentId,omitempty"`
	RelatedWorkOrderID   string           `json:"relatedWorkOrderId,omitempty"`
	RelatedSponsorshipID string           `json:"relatedSponsorshipId,omitempty"`
	RelatedLabel         string           `json:"relatedLabel,omitempty"`
	ImageURL             string           `json:"imageUrl,omitempty"`
	Checklist            []*ChecklistItem `json:"checklist"`
	Activity             []*Activity      `json:"activity"`
	ChecklistTotal       int32            `json:"checklistTotal"`
	ChecklistDone        int32            `json:"checklistDone"`
	CommentsCount        int32            `json:"commentsCount"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

type Column struct {
	Status string  `json:"status"`
	Tasks  []*Task `json:"tasks"`
}

type ListTasksRequest struct {
	OrganizationID string `json:"organizationId"`
	EventID        string `json:"eventId,omitempty"`
	Status         string `json:"status,omitempty"`
}

// ListTasksResponse carries LoadError when the board could not be loaded; Tasks is then empty.
type ListTasksResponse struct {
	Tasks     []*Task `json:"tasks"`
	LoadError string  `json:"loadError,omitempty"`
}

type GetBoardRequest struct {
	OrganizationID string `json:"organizationId"`
	EventID        string `json:"eventId,omitempty"`
}

type GetBoardResponse struct {
	Columns   []*Column `json:"columns"`
	LoadError string    `json:"loadError,omitempty"`
}

type CreateTaskRequest struct {
	OrganizationID       string           `json:"organizationId"`
	EventID              string           `json:"eventId,omitempty"`
	Title                string           `json:"title"`
	Description          string           `json:"description,omitempty"`
	Status               string           `json:"status,omitempty"`
	Priority             string           `json:"priority,omitempty"`
	Type                 string           `json:"type,omitempty"`
	Assignee             *Assignee        `json:"assignee,omitempty"`
	DueDate              *time.Time       `json:"dueDate,omitempty"`
	RelatedIncidentID    string           `json:"relatedIncidentId,omitempty"`
	RelatedWorkOrderID   string           `json:"relatedWorkOrderId,omitempty"`
	RelatedSponsorshipID string           `json:"relatedSponsorshipId,omitempty"`
	RelatedLabel         string           `json:"relatedLabel,omitempty"`
	ImageURL             string           `json:"imageUrl,omitempty"`
	Checklist            []*ChecklistItem `json:"checklist,omitempty"`
}

// UpdateTaskRequest is a partial update. Absent fields are left alone; null clears a field.
type UpdateTaskRequest struct {
	OrganizationID       string                           `json:"organizationId"`
	TaskID               string                           `json:"taskId"`
	Title                optional.Value[string]           `json:"title,omitzero"`
	Description          optional.Value[string]           `json:"description,omitzero"`
	Status               optional.Value[string]           `json:"status,omitzero"`
	Priority             optional.Value[string]           `json:"priority,omitzero"`
	Type                 optional.Value[string]           `json:"type,omitzero"`
	Assignee             optional.Value[Assignee]         `json:"assignee,omitzero"`
	DueDate              optional.Value[time.Time]        `json:"dueDate,omitzero"`
	EventID              optional.Value[string]           `json:"eventId,omitzero"`
	RelatedIncidentID    optional.Value[string]           `json:"relatedIncidentId,omitzero"`
	RelatedWorkOrderID   optional.Value[string]           `json:"relatedWorkOrderId,omitzero"`
	RelatedSponsorshipID optional.Value[string]           `json:"relatedSponsorshipId,omitzero"`
	RelatedLabel         optional.Value[string]           `json:"relatedLabel,omitzero"`
	ImageURL             optional.Value[string]           `json:"imageUrl,omitzero"`
	Checklist            optional.Value[[]*ChecklistItem] `json:"checklist,omitzero"`
}

type MoveTaskRequest struct {
	OrganizationID string `json:"organizationId"`
	TaskID         string `json:"taskId"`
	Status         string `json:"status"`
	OverTaskID     string `json:"overTaskId,omitempty"`
}

// AddCommentRequest falls back to the caller's x-user-id / x-user-name metadata when the author is empty.
type AddCommentRequest struct {
	OrganizationID string `json:"organizationId"`
	TaskID         string `json:"taskId"`
	Message        string `json:"message"`
	ImageURL       string `json:"imageUrl,omitempty"`
	AuthorID       string `json:"authorId,omitempty"`
	AuthorName     string `json:"authorName,omitempty"`
	AuthorAvatar   string `json:"authorAvatar,omitempty"`
}

type AddChecklistItemRequest struct {
	OrganizationID string `json:"organizationId"`
	TaskID         string `json:"taskId"`
	Text           string `json:"text"`
}

type ToggleChecklistItemRequest struct {
	OrganizationID string `json:"organizationId"`
	TaskID         string `json:"taskId"`
	ItemID         string `json:"itemId"`
}

// TaskResponse is returned by every single-task mutation.
type TaskResponse struct {
	Task *Task `json:"task"`
}

type ReloadBoardRequest struct {
	OrganizationID string `json:"organizationId"`
}

type WatchBoardRequest struct {
	OrganizationID string `json:"organizationId"`
	EventID        string `json:"eventId,omitempty"`
}

// BoardEvent is streamed by WatchBoard. SNAPSHOT and RELOADED carry Tasks, the others carry Task.
// A REMOVED task is no longer part of the watched event.
type BoardEvent struct {
	Type      string    `json:"type"`
	Task      *Task     `json:"task,omitempty"`
	Tasks     []*Task   `json:"tasks,omitempty"`
	LoadError string    `json:"loadError,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
