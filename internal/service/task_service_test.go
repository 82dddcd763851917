package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/middleware"
	"github.com/gurkanbulca/opsboard/pkg/optional"
)

func titles(tasks []*boardv1.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestTaskService_CreateAndList(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg)
	ctx := context.Background()

	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	resp, err := h.Service.CreateTask(ctx, &boardv1.CreateTaskRequest{
		OrganizationID: testOrg,
		EventID:        "evt-1",
		Title:          "  Check generators  ",
		Priority:       "HIGH",
		Type:           "INCIDENT",
		Assignee:       &boardv1.Assignee{ID: "u1", Name: "Kim"},
		DueDate:        &due,
		Checklist:      []*boardv1.ChecklistItem{{Text: "fuel"}, {Text: "oil", Done: true}},
	})
	require.NoError(t, err)

	task := resp.Task
	assert.Equal(t, "id-001", task.ID)
	assert.Equal(t, "Check generators", task.Title)
	assert.Equal(t, "TODO", task.Status)
	assert.Equal(t, "HIGH", task.Priority)
	assert.Equal(t, "INCIDENT", task.Type)
	assert.Equal(t, "Kim", task.Assignee.Name)
	assert.Equal(t, due, *task.DueDate)
	assert.EqualValues(t, 2, task.ChecklistTotal)
	assert.EqualValues(t, 1, task.ChecklistDone)
	assert.EqualValues(t, 0, task.CommentsCount)

	h.CreateTask(testOrg, "Other event", "DONE")

	list, err := h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	assert.Equal(t, []string{"Other event", "Check generators"}, titles(list.Tasks))
	assert.Empty(t, list.LoadError)

	list, err = h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg, EventID: "evt-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Check generators"}, titles(list.Tasks))

	list, err = h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg, Status: "DONE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Other event"}, titles(list.Tasks))
}

func TestTaskService_GetBoard(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg,
		h.SeedTask(testOrg, "t1", "one", board.StatusTodo),
		h.SeedTask(testOrg, "d1", "done", board.StatusDone),
		h.SeedTask(testOrg, "t2", "two", board.StatusTodo),
	)

	resp, err := h.Service.GetBoard(context.Background(), &boardv1.GetBoardRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	require.Len(t, resp.Columns, 4)

	assert.Equal(t, "TODO", resp.Columns[0].Status)
	assert.Equal(t, []string{"one", "two"}, titles(resp.Columns[0].Tasks))
	assert.Empty(t, resp.Columns[1].Tasks)
	assert.Empty(t, resp.Columns[2].Tasks)
	assert.Equal(t, []string{"done"}, titles(resp.Columns[3].Tasks))
}

func TestTaskService_ErrorCodes(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg, h.SeedTask(testOrg, "a", "Stage lights", board.StatusTodo))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code codes.Code
	}{
		{
			name: "update unknown task",
			call: func() error {
				_, err := h.Service.UpdateTask(ctx, &boardv1.UpdateTaskRequest{OrganizationID: testOrg, TaskID: "nope", Title: optional.Of("x")})
				return err
			},
			code: codes.NotFound,
		},
		{
			name: "move unknown task",
			call: func() error {
				_, err := h.Service.MoveTask(ctx, &boardv1.MoveTaskRequest{OrganizationID: testOrg, TaskID: "nope", Status: "DONE"})
				return err
			},
			code: codes.NotFound,
		},
		{
			name: "toggle on unknown task",
			call: func() error {
				_, err := h.Service.ToggleChecklistItem(ctx, &boardv1.ToggleChecklistItemRequest{OrganizationID: testOrg, TaskID: "nope", ItemID: "i"})
				return err
			},
			code: codes.NotFound,
		},
		{
			name: "bad status",
			call: func() error {
				_, err := h.Service.MoveTask(ctx, &boardv1.MoveTaskRequest{OrganizationID: testOrg, TaskID: "a", Status: "OPEN"})
				return err
			},
			code: codes.InvalidArgument,
		},
		{
			name: "bad priority on create",
			call: func() error {
				_, err := h.Service.CreateTask(ctx, &boardv1.CreateTaskRequest{OrganizationID: testOrg, Title: "x", Priority: "URGENT"})
				return err
			},
			code: codes.InvalidArgument,
		},
		{
			name: "comment without author",
			call: func() error {
				_, err := h.Service.AddComment(ctx, &boardv1.AddCommentRequest{OrganizationID: testOrg, TaskID: "a", Message: "hi"})
				return err
			},
			code: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}

	list, err := h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "TODO", list.Tasks[0].Status)
	assert.Zero(t, h.Repo.Saves())
}

func TestTaskService_UpdateMoveCommentChecklist(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg,
		h.SeedTask(testOrg, "t1", "Stage lights", board.StatusTodo),
		h.SeedTask(testOrg, "p1", "Radio check", board.StatusInProgress),
	)
	ctx := middleware.WithClientInfo(context.Background(), middleware.ClientInfo{UserID: "u7", UserName: "Ana"})

	updated, err := h.Service.UpdateTask(ctx, &boardv1.UpdateTaskRequest{
		OrganizationID: testOrg,
		TaskID:         "t1",
		Status:         optional.Of("BLOCKED"),
		Assignee:       optional.Of(boardv1.Assignee{ID: "u1", Name: "Kim"}),
		Description:    optional.Of("rig 2 only"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BLOCKED", updated.Task.Status)
	assert.Equal(t, "rig 2 only", updated.Task.Description)
	require.Len(t, updated.Task.Activity, 1)
	assert.Equal(t, "Status changed to BLOCKED · Assigned to Kim", updated.Task.Activity[0].Message)
	assert.Equal(t, board.SystemAuthorName, updated.Task.Activity[0].AuthorName)

	cleared, err := h.Service.UpdateTask(ctx, &boardv1.UpdateTaskRequest{
		OrganizationID: testOrg,
		TaskID:         "t1",
		Assignee:       optional.Null[boardv1.Assignee](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Task.Assignee)
	assert.Equal(t, "Unassigned", cleared.Task.Activity[1].Message)

	moved, err := h.Service.MoveTask(ctx, &boardv1.MoveTaskRequest{
		OrganizationID: testOrg,
		TaskID:         "t1",
		Status:         "IN_PROGRESS",
		OverTaskID:     "deleted-task",
	})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", moved.Task.Status)
	assert.Equal(t, "Moved from BLOCKED to IN_PROGRESS", moved.Task.Activity[2].Message)

	list, err := h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg, Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Radio check", "Stage lights"}, titles(list.Tasks))

	commented, err := h.Service.AddComment(ctx, &boardv1.AddCommentRequest{OrganizationID: testOrg, TaskID: "t1", Message: "on it"})
	require.NoError(t, err)
	last := commented.Task.Activity[len(commented.Task.Activity)-1]
	assert.Equal(t, "u7", last.AuthorID)
	assert.Equal(t, "Ana", last.AuthorName)
	assert.Equal(t, "COMMENT", last.Kind)
	assert.EqualValues(t, 4, commented.Task.CommentsCount)

	withItem, err := h.Service.AddChecklistItem(ctx, &boardv1.AddChecklistItemRequest{OrganizationID: testOrg, TaskID: "t1", Text: "cables"})
	require.NoError(t, err)
	require.Len(t, withItem.Task.Checklist, 1)
	assert.EqualValues(t, 1, withItem.Task.ChecklistTotal)
	assert.EqualValues(t, 0, withItem.Task.ChecklistDone)

	toggled, err := h.Service.ToggleChecklistItem(ctx, &boardv1.ToggleChecklistItemRequest{
		OrganizationID: testOrg,
		TaskID:         "t1",
		ItemID:         withItem.Task.Checklist[0].ID,
	})
	require.NoError(t, err)
	assert.True(t, toggled.Task.Checklist[0].Done)
	assert.EqualValues(t, 1, toggled.Task.ChecklistDone)

	stored, err := h.Repo.ListBoard(context.Background(), testOrg)
	require.NoError(t, err)
	assert.Equal(t, "p1", stored[0].ID)
	assert.Equal(t, "t1", stored[1].ID)
	assert.Equal(t, 1, stored[1].ChecklistDone)
}

func TestTaskService_LoadFailureBanner(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg, h.SeedTask(testOrg, "a", "Stage lights", board.StatusTodo))
	h.Repo.FailList(true)
	ctx := context.Background()

	list, err := h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	assert.Empty(t, list.Tasks)
	assert.Contains(t, list.LoadError, ErrInjected.Error())

	_, err = h.Service.CreateTask(ctx, &boardv1.CreateTaskRequest{OrganizationID: testOrg, Title: "New"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = h.Service.ReloadBoard(ctx, &boardv1.ReloadBoardRequest{OrganizationID: testOrg})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	h.Repo.FailList(false)
	_, err = h.Service.ReloadBoard(ctx, &boardv1.ReloadBoardRequest{OrganizationID: testOrg})
	require.NoError(t, err)

	list, err = h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	assert.Len(t, list.Tasks, 1)
	assert.Empty(t, list.LoadError)
}

func TestTaskService_SyncFailureRollsBack(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg, h.SeedTask(testOrg, "a", "Stage lights", board.StatusTodo))
	h.Repo.FailSave(true)
	ctx := context.Background()

	_, err := h.Service.UpdateTask(ctx, &boardv1.UpdateTaskRequest{OrganizationID: testOrg, TaskID: "a", Priority: optional.Of("CRITICAL")})
	assert.Equal(t, codes.Internal, status.Code(err))

	list, err := h.Service.ListTasks(ctx, &boardv1.ListTasksRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", list.Tasks[0].Priority)
	assert.Empty(t, list.Tasks[0].Activity)
}

func TestTaskService_OverGRPC(t *testing.T) {
	h := NewTestHelpers(t)
	h.SeedBoard(testOrg, h.SeedTask(testOrg, "a", "Stage lights", board.StatusTodo))
	client := h.StartServer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.CreateTask(ctx, &boardv1.CreateTaskRequest{OrganizationID: testOrg, Title: " "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	stream, err := client.WatchBoard(ctx, &boardv1.WatchBoardRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, boardv1.EventSnapshot, first.Type)
	assert.Equal(t, []string{"Stage lights"}, titles(first.Tasks))

	created, err := client.CreateTask(ctx, &boardv1.CreateTaskRequest{OrganizationID: testOrg, Title: "Gate 3 barrier"})
	require.NoError(t, err)

	ev, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, boardv1.EventCreated, ev.Type)
	assert.Equal(t, created.Task.ID, ev.Task.ID)

	_, err = client.UpdateTask(ctx, &boardv1.UpdateTaskRequest{
		OrganizationID: testOrg,
		TaskID:         created.Task.ID,
		Assignee:       optional.Of(boardv1.Assignee{ID: "u1", Name: "Kim"}),
	})
	require.NoError(t, err)
	cleared, err := client.UpdateTask(ctx, &boardv1.UpdateTaskRequest{
		OrganizationID: testOrg,
		TaskID:         created.Task.ID,
		Assignee:       optional.Null[boardv1.Assignee](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Task.Assignee)

	mdCtx := metadata.AppendToOutgoingContext(ctx, middleware.HeaderUserID, "u9", middleware.HeaderUserName, "Sam")
	commented, err := client.AddComment(mdCtx, &boardv1.AddCommentRequest{OrganizationID: testOrg, TaskID: "a", Message: "lights out at 9"})
	require.NoError(t, err)
	assert.Equal(t, "Sam", commented.Task.Activity[0].AuthorName)

	_, err = client.MoveTask(ctx, &boardv1.MoveTaskRequest{OrganizationID: testOrg, TaskID: "missing", Status: "DONE"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.ReloadBoard(ctx, &boardv1.ReloadBoardRequest{OrganizationID: testOrg})
	require.NoError(t, err)

	got, err := client.GetBoard(ctx, &boardv1.GetBoardRequest{OrganizationID: testOrg})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gate 3 barrier", "Stage lights"}, titles(got.Columns[0].Tasks))
}

func TestTaskService_WatchRejectsMissingOrganization(t *testing.T) {
	h := NewTestHelpers(t)
	client := h.StartServer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.WatchBoard(ctx, &boardv1.WatchBoardRequest{})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestTaskService_WatchBoardFilteredByEvent(t *testing.T) {
	h := NewTestHelpers(t)
	a := h.SeedTask(testOrg, "a", "Stage lights", board.StatusTodo)
	a.EventID = "evt-1"
	b := h.SeedTask(testOrg, "b", "Radio check", board.StatusTodo)
	b.EventID = "evt-2"
	h.SeedBoard(testOrg, a, b)
	client := h.StartServer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.WatchBoard(ctx, &boardv1.WatchBoardRequest{OrganizationID: testOrg, EventID: "evt-1"})
	require.NoError(t, err)
	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, []string{"Stage lights"}, titles(first.Tasks))

	// Changes to other events are not streamed.
	_, err = client.UpdateTask(ctx, &boardv1.UpdateTaskRequest{OrganizationID: testOrg, TaskID: "b", Title: optional.Of("Radio check 2")})
	require.NoError(t, err)

	_, err = client.UpdateTask(ctx, &boardv1.UpdateTaskRequest{OrganizationID: testOrg, TaskID: "a", EventID: optional.Null[string]()})
	require.NoError(t, err)
	ev, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, boardv1.EventRemoved, ev.Type)
	require.NotNil(t, ev.Task)
	assert.Equal(t, "a", ev.Task.ID)
	assert.Empty(t, ev.Task.EventID)

	_, err = client.UpdateTask(ctx, &boardv1.UpdateTaskRequest{OrganizationID: testOrg, TaskID: "b", EventID: optional.Of("evt-1")})
	require.NoError(t, err)
	ev, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, boardv1.EventUpdated, ev.Type)
	assert.Equal(t, "b", ev.Task.ID)
}
