package middleware

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/pkg/optional"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(&ValidationConfig{
		MaxTitleLength:         10,
		MaxDescriptionLength:   20,
		MaxCommentLength:       5,
		MaxChecklistTextLength: 5,
	})

	tests := []struct {
		name    string
		req     interface{}
		wantErr string
	}{
		{name: "list ok", req: &boardv1.ListTasksRequest{OrganizationID: "org"}},
		{name: "list missing org", req: &boardv1.ListTasksRequest{}, wantErr: "organization ID is required"},
		{name: "list bad status", req: &boardv1.ListTasksRequest{OrganizationID: "org", Status: "OPEN"}, wantErr: `invalid status "OPEN"`},
		{name: "create ok", req: &boardv1.CreateTaskRequest{OrganizationID: "org", Title: "Fix", Priority: "HIGH"}},
		{name: "create blank title", req: &boardv1.CreateTaskRequest{OrganizationID: "org", Title: "   "}, wantErr: "title is required"},
		{name: "create long title", req: &boardv1.CreateTaskRequest{OrganizationID: "org", Title: strings.Repeat("x", 11)}, wantErr: "title too long"},
		{name: "create bad type", req: &boardv1.CreateTaskRequest{OrganizationID: "org", Title: "Fix", Type: "CHORE"}, wantErr: `invalid type "CHORE"`},
		{name: "create empty checklist text", req: &boardv1.CreateTaskRequest{
			OrganizationID: "org", Title: "Fix", Checklist: []*boardv1.ChecklistItem{{Text: ""}},
		}, wantErr: "checklist item 0: text is required"},
		{name: "update ok", req: &boardv1.UpdateTaskRequest{OrganizationID: "org", TaskID: "t1", Status: optional.Of("DONE")}},
		{name: "update missing task", req: &boardv1.UpdateTaskRequest{OrganizationID: "org"}, wantErr: "task ID is required"},
		{name: "update null title", req: &boardv1.UpdateTaskRequest{OrganizationID: "org", TaskID: "t1", Title: optional.Null[string]()}, wantErr: "title cannot be empty"},
		{name: "update null status", req: &boardv1.UpdateTaskRequest{OrganizationID: "org", TaskID: "t1", Status: optional.Null[string]()}, wantErr: "status cannot be null"},
		{name: "update bad priority", req: &boardv1.UpdateTaskRequest{OrganizationID: "org", TaskID: "t1", Priority: optional.Of("URGENT")}, wantErr: `invalid priority "URGENT"`},
		{name: "update clears assignee", req: &boardv1.UpdateTaskRequest{OrganizationID: "org", TaskID: "t1", Assignee: optional.Null[boardv1.Assignee]()}},
		{name: "move missing status", req: &boardv1.MoveTaskRequest{OrganizationID: "org", TaskID: "t1"}, wantErr: "status is required"},
		{name: "move ok", req: &boardv1.MoveTaskRequest{OrganizationID: "org", TaskID: "t1", Status: "BLOCKED", OverTaskID: "gone"}},
		{name: "comment too long", req: &boardv1.AddCommentRequest{OrganizationID: "org", TaskID: "t1", Message: "toolong"}, wantErr: "message too long"},
		{name: "comment empty passes", req: &boardv1.AddCommentRequest{OrganizationID: "org", TaskID: "t1"}},
		{name: "checklist text too long", req: &boardv1.AddChecklistItemRequest{OrganizationID: "org", TaskID: "t1", Text: "abcdef"}, wantErr: "text too long"},
		{name: "toggle missing item", req: &boardv1.ToggleChecklistItemRequest{OrganizationID: "org", TaskID: "t1"}, wantErr: "item ID is required"},
		{name: "reload missing org", req: &boardv1.ReloadBoardRequest{}, wantErr: "organization ID is required"},
		{name: "unknown type passes", req: struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_JoinsAllProblems(t *testing.T) {
	err := NewValidator(nil).Validate(&boardv1.MoveTaskRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organization ID is required; task ID is required; status is required")
}

func TestValidator_UnaryStopsInvalidRequests(t *testing.T) {
	interceptor := NewValidator(nil).Unary()
	called := false
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		return "ok", nil
	}
	info := &grpc.UnaryServerInfo{FullMethod: boardv1.BoardService_GetBoard_FullMethodName}

	_, err := interceptor(context.Background(), &boardv1.GetBoardRequest{}, info, handler)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.False(t, called)

	resp, err := interceptor(context.Background(), &boardv1.GetBoardRequest{OrganizationID: "org"}, info, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.True(t, called)
}
