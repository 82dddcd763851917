// internal/httpapi/handler.go
package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/protobuf/types/known/emptypb"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
	"github.com/gurkanbulca/opsboard/internal/export"
	"github.com/gurkanbulca/opsboard/internal/middleware"
	"github.com/gurkanbulca/opsboard/internal/service"
)

// BoardAPI is the subset of the gRPC service the gateway calls in-process.
type BoardAPI interface {
	ListTasks(context.Context, *boardv1.ListTasksRequest) (*boardv1.ListTasksResponse, error)
	GetBoard(context.Context, *boardv1.GetBoardRequest) (*boardv1.GetBoardResponse, error)
	CreateTask(context.Context, *boardv1.CreateTaskRequest) (*boardv1.TaskResponse, error)
	UpdateTask(context.Context, *boardv1.UpdateTaskRequest) (*boardv1.TaskResponse, error)
	MoveTask(context.Context, *boardv1.MoveTaskRequest) (*boardv1.TaskResponse, error)
	AddComment(context.Context, *boardv1.AddCommentRequest) (*boardv1.TaskResponse, error)
	AddChecklistItem(context.Context, *boardv1.AddChecklistItemRequest) (*boardv1.TaskResponse, error)
	ToggleChecklistItem(context.Context, *boardv1.ToggleChecklistItemRequest) (*boardv1.TaskResponse, error)
	ReloadBoard(context.Context, *boardv1.ReloadBoardRequest) (*emptypb.Empty, error)
}

// BoardReader gives the export endpoint the domain view of a board.
type BoardReader interface {
	Snapshot(ctx context.Context, orgID string) (service.BoardSnapshot, error)
}

type BoardHandler struct {
	api       BoardAPI
	boards    BoardReader
	validator *middleware.Validator
}

func NewBoardHandler(api BoardAPI, boards BoardReader, validator *middleware.Validator) *BoardHandler {
	if validator == nil {
		validator = middleware.NewValidator(nil)
	}
	return &BoardHandler{
		api:       api,
		boards:    boards,
		validator: validator,
	}
}

// requestContext carries the dashboard user headers into the service layer.
func requestContext(c echo.Context) context.Context {
	req := c.Request()
	return middleware.WithClientInfo(req.Context(), middleware.ClientInfo{
		IPAddress: c.RealIP(),
		UserAgent: req.UserAgent(),
		UserID:    req.Header.Get(middleware.HeaderUserID),
		UserName:  req.Header.Get(middleware.HeaderUserName),
	})
}

func (h *BoardHandler) ListTasksHandler(c echo.Context) error {
	req := &boardv1.ListTasksRequest{
		OrganizationID: c.Param("org"),
		EventID:        c.QueryParam("eventId"),
		Status:         c.QueryParam("status"),
	}
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.ListTasks(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to list tasks", err)
	}
	return ResponseSuccess(c, http.StatusOK, "", resp)
}

func (h *BoardHandler) GetBoardHandler(c echo.Context) error {
	req := &boardv1.GetBoardRequest{
		OrganizationID: c.Param("org"),
		EventID:        c.QueryParam("eventId"),
	}
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.GetBoard(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to get board", err)
	}
	return ResponseSuccess(c, http.StatusOK, "", resp)
}

func (h *BoardHandler) CreateTaskHandler(c echo.Context) error {
	req := new(boardv1.CreateTaskRequest)
	if err := c.Bind(req); err != nil {
		return ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	req.OrganizationID = c.Param("org")
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.CreateTask(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to create task", err)
	}
	return ResponseSuccess(c, http.StatusCreated, "task created", resp.Task)
}

func (h *BoardHandler) UpdateTaskHandler(c echo.Context) error {
	req := new(boardv1.UpdateTaskRequest)
	if err := c.Bind(req); err != nil {
		return ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	req.OrganizationID, req.TaskID = c.Param("org"), c.Param("id")
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.UpdateTask(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to update task", err)
	}
	return ResponseSuccess(c, http.StatusOK, "task updated", resp.Task)
}

func (h *BoardHandler) MoveTaskHandler(c echo.Context) error {
	req := new(boardv1.MoveTaskRequest)
	if err := c.Bind(req); err != nil {
		return ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	req.OrganizationID, req.TaskID = c.Param("org"), c.Param("id")
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.MoveTask(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to move task", err)
	}
	return ResponseSuccess(c, http.StatusOK, "task moved", resp.Task)
}

func (h *BoardHandler) AddCommentHandler(c echo.Context) error {
	req := new(boardv1.AddCommentRequest)
	if err := c.Bind(req); err != nil {
		return ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	req.OrganizationID, req.TaskID = c.Param("org"), c.Param("id")
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.AddComment(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to add comment", err)
	}
	return ResponseSuccess(c, http.StatusOK, "comment added", resp.Task)
}

func (h *BoardHandler) AddChecklistItemHandler(c echo.Context) error {
	req := new(boardv1.AddChecklistItemRequest)
	if err := c.Bind(req); err != nil {
		return ResponseError(c, http.StatusBadRequest, "invalid request body", err)
	}
	req.OrganizationID, req.TaskID = c.Param("org"), c.Param("id")
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.AddChecklistItem(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to add checklist item", err)
	}
	return ResponseSuccess(c, http.StatusOK, "checklist item added", resp.Task)
}

func (h *BoardHandler) ToggleChecklistItemHandler(c echo.Context) error {
	req := &boardv1.ToggleChecklistItemRequest{
		OrganizationID: c.Param("org"),
		TaskID:         c.Param("id"),
		ItemID:         c.Param("itemId"),
	}
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	resp, err := h.api.ToggleChecklistItem(requestContext(c), req)
	if err != nil {
		return ResponseStatusError(c, "failed to toggle checklist item", err)
	}
	return ResponseSuccess(c, http.StatusOK, "checklist item toggled", resp.Task)
}

func (h *BoardHandler) ReloadBoardHandler(c echo.Context) error {
	req := &boardv1.ReloadBoardRequest{OrganizationID: c.Param("org")}
	if err := h.validator.Validate(req); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	if _, err := h.api.ReloadBoard(requestContext(c), req); err != nil {
		return ResponseStatusError(c, "failed to reload board", err)
	}
	return ResponseSuccess(c, http.StatusOK, "board reloaded", nil)
}

// ExportBoardHandler downloads the board as an xlsx workbook.
func (h *BoardHandler) ExportBoardHandler(c echo.Context) error {
	orgID := c.Param("org")
	if err := h.validator.Validate(&boardv1.GetBoardRequest{OrganizationID: orgID}); err != nil {
		return ResponseStatusError(c, "invalid request", err)
	}

	snap, err := h.boards.Snapshot(requestContext(c), orgID)
	if err != nil {
		return ResponseError(c, http.StatusInternalServerError, "failed to load board", err)
	}
	if snap.LoadError != nil {
		return ResponseError(c, http.StatusServiceUnavailable, "board could not be loaded", snap.LoadError)
	}

	tasks := board.FilterByEvent(snap.Tasks, c.QueryParam("eventId"))
	data, err := export.BoardWorkbook(board.GroupColumns(tasks))
	if err != nil {
		return ResponseError(c, http.StatusInternalServerError, "failed to export board", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="board-%s.xlsx"`, orgID))
	return c.Blob(http.StatusOK, export.ContentType, data)
}
