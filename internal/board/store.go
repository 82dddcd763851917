// internal/board/store.go
package board

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gurkanbulca/opsboard/pkg/optional"
)

// NewTask is the input of CreateTask. Enum fields are expected to be validated already.
type NewTask struct {
	OrganizationID       string
	EventID              string
	Title                string
	Description          string
	Status               Status
	Priority             Priority
	Type                 TaskType
	Assignee             *Assignee
	DueDate              *time.Time
	RelatedIncidentID    string
	RelatedWorkOrderID   string
	RelatedSponsorshipID string
	RelatedLabel         string
	ImageURL             string
	Checklist            []ChecklistItem
	Activity             []Activity
}

// TaskUpdate is a sparse set of fields to overwrite. Nil pointers and absent values leave the
// field unchanged; optional.Null clears it.
type TaskUpdate struct {
	Title                *string
	Description          optional.Value[string]
	Status               *Status
	Priority             *Priority
	Type                 *TaskType
	Assignee             optional.Value[Assignee]
	DueDate              optional.Value[time.Time]
	EventID              optional.Value[string]
	RelatedIncidentID    optional.Value[string]
	RelatedWorkOrderID   optional.Value[string]
	RelatedSponsorshipID optional.Value[string]
	RelatedLabel         optional.Value[string]
	ImageURL             optional.Value[string]
	Checklist            optional.Value[[]ChecklistItem]
}

// MoveOptions carries the drop target of a drag-and-drop move.
type MoveOptions struct {
	OverTaskID string
}

type CommentOptions struct {
	ImageURL string
}

// Store holds the ordered task list of one board. All columns share the one flat slice;
// a column is the sub-sequence of tasks with its status.
type Store struct {
	mu    sync.Mutex
	tasks []*Task
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for task, item and activity ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a deep copy of the current list in board order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Task returns a copy of a single task.
func (s *Store) Task(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.tasks[idx].Clone(), nil
}

func (s *Store) Columns() []Column {
	return GroupColumns(s.Tasks())
}

// Replace swaps the whole list, e.g. after loading from a backend or rolling back.
// Counters are recomputed so loaded data cannot carry drift.
func (s *Store) Replace(tasks []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]*Task, len(tasks))
	for i := range tasks {
		t := tasks[i].Clone()
		t.recount()
		s.tasks[i] = &t
	}
}

// CreateTask materialises a task and puts it at the head of the list.
func (s *Store) CreateTask(in NewTask) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := &Task{
		ID:                   s.newID(),
		OrganizationID:       in.OrganizationID,
		EventID:              in.EventID,
		Title:                in.Title,
		Description:          in.Description,
		Status:               in.Status,
		Priority:             in.Priority,
		Type:                 in.Type,
		RelatedIncidentID:    in.RelatedIncidentID,
		RelatedWorkOrderID:   in.RelatedWorkOrderID,
		RelatedSponsorshipID: in.RelatedSponsorshipID,
		RelatedLabel:         in.RelatedLabel,
		ImageURL:             in.ImageURL,
		Checklist:            []ChecklistItem{},
		Activity:             []Activity{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if in.Assignee != nil {
		a := *in.Assignee
		t.Assignee = &a
	}
	if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}
	for _, item := range in.Checklist {
		if item.ID == "" {
			item.ID = s.newID()
		}
		t.Checklist = append(t.Checklist, item)
	}
	for _, a := range in.Activity {
		if a.ID == "" {
			a.ID = s.newID()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		t.Activity = append(t.Activity, a)
	}
	t.recount()

	s.tasks = append([]*Task{t}, s.tasks...)
	return t.Clone()
}

// UpdateTask merges up into the task. Changes to status, priority, assignee, due date and
// image are summarised in a single system note.
func (s *Store) UpdateTask(id string, up TaskUpdate) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := s.tasks[idx]
	now := s.now()

	if changes := describeChanges(t, up); len(changes) > 0 {
		t.Activity = append(t.Activity, s.systemNote(strings.Join(changes, noteSeparator), now))
	}
	applyUpdate(t, up)
	for i := range t.Checklist {
		if t.Checklist[i].ID == "" {
			t.Checklist[i].ID = s.newID()
		}
	}

	t.recount()
	t.UpdatedAt = now
	return t.Clone(), nil
}

// MoveTask puts the task into status. With a valid drop target in that column the task lands
// right before it; otherwise it goes after the last task of the column, or at the very end
// when the column is empty. Dropping a task on its own column without a target is a no-op.
func (s *Store) MoveTask(id string, status Status, opts MoveOptions) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := s.tasks[idx]
	if t.Status == status && (opts.OverTaskID == "" || opts.OverTaskID == id) {
		return t.Clone(), nil
	}

	now := s.now()
	if t.Status != status {
		t.Activity = append(t.Activity, s.systemNote(fmt.Sprintf("Moved from %s to %s", t.Status, status), now))
	}

	rest := make([]*Task, 0, len(s.tasks))
	rest = append(rest, s.tasks[:idx]...)
	rest = append(rest, s.tasks[idx+1:]...)

	at := -1
	if opts.OverTaskID != "" && opts.OverTaskID != id {
		for i, other := range rest {
			if other.ID == opts.OverTaskID {
				if other.Status == status {
					at = i
				}
				break
			}
		}
	}
	if at < 0 {
		at = len(rest)
		for i := len(rest) - 1; i >= 0; i-- {
			if rest[i].Status == status {
				at = i + 1
				break
			}
		}
	}

	t.Status = status
	t.recount()
	t.UpdatedAt = now

	s.tasks = make([]*Task, 0, len(rest)+1)
	s.tasks = append(s.tasks, rest[:at]...)
	s.tasks = append(s.tasks, t)
	s.tasks = append(s.tasks, rest[at:]...)
	return t.Clone(), nil
}

// AddComment appends a user comment. Blank messages are ignored.
func (s *Store) AddComment(id, message string, author Author, opts CommentOptions) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := s.tasks[idx]

	message = strings.TrimSpace(message)
	if message == "" {
		return t.Clone(), nil
	}

	now := s.now()
	t.Activity = append(t.Activity, Activity{
		ID:           s.newID(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Message:      message,
		Kind:         ActivityComment,
		ImageURL:     opts.ImageURL,
		CreatedAt:    now,
	})
	t.recount()
	t.UpdatedAt = now
	return t.Clone(), nil
}

// ToggleChecklistItem flips the done flag of one item. An unknown item id changes nothing.
func (s *Store) ToggleChecklistItem(id, itemID string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := s.tasks[idx]

	found := false
	for i := range t.Checklist {
		if t.Checklist[i].ID == itemID {
			t.Checklist[i].Done = !t.Checklist[i].Done
			found = true
			break
		}
	}
	if !found {
		return t.Clone(), nil
	}

	t.recount()
	t.UpdatedAt = s.now()
	return t.Clone(), nil
}

// AddChecklistItem appends an open item. Blank text is ignored.
func (s *Store) AddChecklistItem(id, text string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := s.tasks[idx]

	text = strings.TrimSpace(text)
	if text == "" {
		return t.Clone(), nil
	}

	t.Checklist = append(t.Checklist, ChecklistItem{ID: s.newID(), Text: text})
	t.recount()
	t.UpdatedAt = s.now()
	return t.Clone(), nil
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) systemNote(message string, at time.Time) Activity {
	return Activity{
		ID:         s.newID(),
		AuthorID:   SystemAuthorID,
		AuthorName: SystemAuthorName,
		Message:    message,
		Kind:       ActivityUpdate,
		CreatedAt:  at,
	}
}
