// internal/service/task_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/middleware"
)

type TaskService struct {
	boardv1.UnimplementedBoardServiceServer
	boards *BoardManager
	logger zerolog.Logger
}

func NewTaskService(boards *BoardManager, logger zerolog.Logger) *TaskService {
	return &TaskService{
		boards: boards,
		logger: logger,
	}
}

// ListTasks returns the flat board list, optionally narrowed to one event and one status.
func (s *TaskService) ListTasks(ctx context.Context, req *boardv1.ListTasksRequest) (*boardv1.ListTasksResponse, error) {
	snap, err := s.boards.Snapshot(ctx, req.OrganizationID)
	if err != nil {
		return nil, toStatus(err, "list tasks")
	}

	tasks := board.FilterByEvent(snap.Tasks, req.EventID)
	if req.Status != "" {
		st, err := board.ParseStatus(req.Status)
		if err != nil {
			return nil, toStatus(err, "list tasks")
		}
		tasks = board.FilterByStatus(tasks, st)
	}

	return &boardv1.ListTasksResponse{
		Tasks:     convertTasksToProto(tasks),
		LoadError: errorString(snap.LoadError),
	}, nil
}

// GetBoard returns the tasks grouped into status columns.
func (s *TaskService) GetBoard(ctx context.Context, req *boardv1.GetBoardRequest) (*boardv1.GetBoardResponse, error) {
	snap, err := s.boards.Snapshot(ctx, req.OrganizationID)
	if err != nil {
		return nil, toStatus(err, "get board")
	}

	cols := board.GroupColumns(board.FilterByEvent(snap.Tasks, req.EventID))
	resp := &boardv1.GetBoardResponse{
		Columns:   make([]*boardv1.Column, len(cols)),
		LoadError: errorString(snap.LoadError),
	}
	for i, col := range cols {
		resp.Columns[i] = &boardv1.Column{
			Status: string(col.Status),
			Tasks:  convertTasksToProto(col.Tasks),
		}
	}
	return resp, nil
}

func (s *TaskService) CreateTask(ctx context.Context, req *boardv1.CreateTaskRequest) (*boardv1.TaskResponse, error) {
	in, err := convertCreateRequest(req)
	if err != nil {
		return nil, toStatus(err, "create task")
	}

	task, err := s.boards.Mutate(ctx, req.OrganizationID, boardv1.EventCreated, func(st *board.Store) (board.Task, error) {
		return st.CreateTask(in), nil
	})
	if err != nil {
		return nil, toStatus(err, "create task")
	}
	return &boardv1.TaskResponse{Task: convertTaskToProto(task)}, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, req *boardv1.UpdateTaskRequest) (*boardv1.TaskResponse, error) {
	up, err := convertUpdateRequest(req)
	if err != nil {
		return nil, toStatus(err, "update task")
	}

	task, err := s.boards.Mutate(ctx, req.OrganizationID, boardv1.EventUpdated, func(st *board.Store) (board.Task, error) {
		return st.UpdateTask(req.TaskID, up)
	})
	if err != nil {
		return nil, toStatus(err, "update task")
	}
	return &boardv1.TaskResponse{Task: convertTaskToProto(task)}, nil
}

// MoveTask handles drag-and-drop. A drop target that is gone or sits in another column is
// ignored and the task goes to the end of the destination column.
func (s *TaskService) MoveTask(ctx context.Context, req *boardv1.MoveTaskRequest) (*boardv1.TaskResponse, error) {
	st, err := board.ParseStatus(req.Status)
	if err != nil {
		return nil, toStatus(err, "move task")
	}

	task, err := s.boards.Mutate(ctx, req.OrganizationID, boardv1.EventMoved, func(store *board.Store) (board.Task, error) {
		return store.MoveTask(req.TaskID, st, board.MoveOptions{OverTaskID: req.OverTaskID})
	})
	if err != nil {
		return nil, toStatus(err, "move task")
	}
	return &boardv1.TaskResponse{Task: convertTaskToProto(task)}, nil
}

// AddComment attributes the comment to the request author, or to the caller named by the
// x-user-id / x-user-name metadata.
func (s *TaskService) AddComment(ctx context.Context, req *boardv1.AddCommentRequest) (*boardv1.TaskResponse, error) {
	author := board.Author{ID: req.AuthorID, Name: req.AuthorName, Avatar: req.AuthorAvatar}
	if author.ID == "" && author.Name == "" {
		client := middleware.GetClientInfoFromContext(ctx)
		author.ID, author.Name = client.UserID, client.UserName
	}
	if author.Name == "" {
		author.Name = author.ID
	}
	if author.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "comment author is required")
	}

	task, err := s.boards.Mutate(ctx, req.OrganizationID, boardv1.EventCommented, func(st *board.Store) (board.Task, error) {
		return st.AddComment(req.TaskID, req.Message, author, board.CommentOptions{ImageURL: req.ImageURL})
	})
	if err != nil {
		return nil, toStatus(err, "add comment")
	}
	return &boardv1.TaskResponse{Task: convertTaskToProto(task)}, nil
}

func (s *TaskService) AddChecklistItem(ctx context.Context, req *boardv1.AddChecklistItemRequest) (*boardv1.TaskResponse, error) {
	task, err := s.boards.Mutate(ctx, req.OrganizationID, boardv1.EventChecklist, func(st *board.Store) (board.Task, error) {
		return st.AddChecklistItem(req.TaskID, req.Text)
	})
	if err != nil {
		return nil, toStatus(err, "add checklist item")
	}
	return &boardv1.TaskResponse{Task: convertTaskToProto(task)}, nil
}

func (s *TaskService) ToggleChecklistItem(ctx context.Context, req *boardv1.ToggleChecklistItemRequest) (*boardv1.TaskResponse, error) {
	task, err := s.boards.Mutate(ctx, req.OrganizationID, boardv1.EventChecklist, func(st *board.Store) (board.Task, error) {
		return st.ToggleChecklistItem(req.TaskID, req.ItemID)
	})
	if err != nil {
		return nil, toStatus(err, "toggle checklist item")
	}
	return &boardv1.TaskResponse{Task: convertTaskToProto(task)}, nil
}

// ReloadBoard re-reads the board from the repository; it is how clients retry a failed load.
func (s *TaskService) ReloadBoard(ctx context.Context, req *boardv1.ReloadBoardRequest) (*emptypb.Empty, error) {
	if _, err := s.boards.Reload(ctx, req.OrganizationID); err != nil {
		return nil, toStatus(err, "reload board")
	}
	return &emptypb.Empty{}, nil
}

// WatchBoard sends a SNAPSHOT event and then every change of the board until the client leaves.
func (s *TaskService) WatchBoard(req *boardv1.WatchBoardRequest, stream boardv1.BoardService_WatchBoardServer) error {
	ctx := stream.Context()
	snap, events, stop, err := s.boards.Watch(ctx, req.OrganizationID)
	if err != nil {
		return toStatus(err, "watch board")
	}
	defer stop()

	if err := stream.Send(&boardv1.BoardEvent{
		Type:      boardv1.EventSnapshot,
		Tasks:     convertTasksToProto(board.FilterByEvent(snap.Tasks, req.EventID)),
		LoadError: errorString(snap.LoadError),
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return status.Error(codes.Aborted, "board subscription closed, reconnect to resync")
			}
			out := convertEventToProto(ev, req.EventID)
			if out == nil {
				continue
			}
			if err := stream.Send(out); err != nil {
				s.logger.Debug().Err(err).Str("org", req.OrganizationID).Msg("watch stream send failed")
				return err
			}
		}
	}
}

// toStatus converts domain errors to gRPC status errors.
func toStatus(err error, action string) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, board.ErrTaskNotFound):
		return status.Error(codes.NotFound, "task not found")
	case errors.Is(err, board.ErrInvalidEnum):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrBoardUnavailable):
		return status.Errorf(codes.FailedPrecondition, "%s: %v; reload the board to retry", action, err)
	case errors.Is(err, ErrReloadFailed):
		return status.Errorf(codes.Unavailable, "%s: %v", action, err)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Errorf(codes.Internal, "failed to %s: %v", action, err)
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
