// internal/middleware/validation.go
package middleware

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/board"
)

// ValidationConfig holds validation configuration
type ValidationConfig struct {
	MaxTitleLength         int
	MaxDescriptionLength   int
	MaxCommentLength       int
	MaxChecklistTextLength int
}

// DefaultValidationConfig returns default validation configuration
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxTitleLength:         200,
		MaxDescriptionLength:   5000,
		MaxCommentLength:       5000,
		MaxChecklistTextLength: 500,
	}
}

// Validator rejects malformed board requests before they reach the store. It backs both the gRPC
// interceptors and the REST handlers.
type Validator struct {
	config *ValidationConfig
}

func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}
	return &Validator{
		config: config,
	}
}

// Unary returns a unary server interceptor for request validation
func (v *Validator) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if err := v.Validate(req); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// Stream validates the request message of server-streaming calls as it is received.
func (v *Validator) Stream() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		stream grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		return handler(srv, &validatingServerStream{ServerStream: stream, validator: v})
	}
}

type validatingServerStream struct {
	grpc.ServerStream
	validator *Validator
}

func (s *validatingServerStream) RecvMsg(m interface{}) error {
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return err
	}
	return s.validator.Validate(m)
}

// Validate returns an InvalidArgument status listing every problem of req, or nil.
// Unknown request types pass.
func (v *Validator) Validate(req interface{}) error {
	var errs []string

	switch r := req.(type) {
	case *boardv1.ListTasksRequest:
		errs = requireOrg(errs, r.OrganizationID)
		if r.Status != "" {
			errs = checkEnum(errs, "status", r.Status, board.ParseStatus)
		}
	case *boardv1.GetBoardRequest:
		errs = requireOrg(errs, r.OrganizationID)
	case *boardv1.WatchBoardRequest:
		errs = requireOrg(errs, r.OrganizationID)
	case *boardv1.ReloadBoardRequest:
		errs = requireOrg(errs, r.OrganizationID)
	case *boardv1.CreateTaskRequest:
		errs = v.validateCreateTask(errs, r)
	case *boardv1.UpdateTaskRequest:
		errs = v.validateUpdateTask(errs, r)
	case *boardv1.MoveTaskRequest:
		errs = requireTask(errs, r.OrganizationID, r.TaskID)
		if r.Status == "" {
			errs = append(errs, "status is required")
		} else {
			errs = checkEnum(errs, "status", r.Status, board.ParseStatus)
		}
	case *boardv1.AddCommentRequest:
		errs = requireTask(errs, r.OrganizationID, r.TaskID)
		errs = v.checkLength(errs, "message", r.Message, v.config.MaxCommentLength)
	case *boardv1.AddChecklistItemRequest:
		errs = requireTask(errs, r.OrganizationID, r.TaskID)
		errs = v.checkLength(errs, "text", r.Text, v.config.MaxChecklistTextLength)
	case *boardv1.ToggleChecklistItemRequest:
		errs = requireTask(errs, r.OrganizationID, r.TaskID)
		if r.ItemID == "" {
			errs = append(errs, "item ID is required")
		}
	}

	if len(errs) > 0 {
		return status.Error(codes.InvalidArgument, strings.Join(errs, "; "))
	}
	return nil
}

func (v *Validator) validateCreateTask(errs []string, req *boardv1.CreateTaskRequest) []string {
	errs = requireOrg(errs, req.OrganizationID)

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, "title is required")
	}
	errs = v.checkLength(errs, "title", req.Title, v.config.MaxTitleLength)
	errs = v.checkLength(errs, "description", req.Description, v.config.MaxDescriptionLength)

	if req.Status != "" {
		errs = checkEnum(errs, "status", req.Status, board.ParseStatus)
	}
	if req.Priority != "" {
		errs = checkEnum(errs, "priority", req.Priority, board.ParsePriority)
	}
	if req.Type != "" {
		errs = checkEnum(errs, "type", req.Type, board.ParseType)
	}
	if req.Assignee != nil && req.Assignee.Name == "" {
		errs = append(errs, "assignee name is required")
	}
	return v.checkChecklist(errs, req.Checklist)
}

func (v *Validator) validateUpdateTask(errs []string, req *boardv1.UpdateTaskRequest) []string {
	errs = requireTask(errs, req.OrganizationID, req.TaskID)

	if req.Title.Present() {
		title, ok := req.Title.Get()
		if !ok || strings.TrimSpace(title) == "" {
			errs = append(errs, "title cannot be empty")
		}
		errs = v.checkLength(errs, "title", title, v.config.MaxTitleLength)
	}
	if desc, ok := req.Description.Get(); ok {
		errs = v.checkLength(errs, "description", desc, v.config.MaxDescriptionLength)
	}

	errs = checkRequiredEnum(errs, "status", req.Status.Present(), req.Status.Ptr(), board.ParseStatus)
	errs = checkRequiredEnum(errs, "priority", req.Priority.Present(), req.Priority.Ptr(), board.ParsePriority)
	errs = checkRequiredEnum(errs, "type", req.Type.Present(), req.Type.Ptr(), board.ParseType)

	if a, ok := req.Assignee.Get(); ok && a.Name == "" {
		errs = append(errs, "assignee name is required")
	}
	if items, ok := req.Checklist.Get(); ok {
		errs = v.checkChecklist(errs, items)
	}
	return errs
}

func (v *Validator) checkChecklist(errs []string, items []*boardv1.ChecklistItem) []string {
	for i, item := range items {
		if item == nil || strings.TrimSpace(item.Text) == "" {
			errs = append(errs, fmt.Sprintf("checklist item %d: text is required", i))
			continue
		}
		errs = v.checkLength(errs, fmt.Sprintf("checklist item %d", i), item.Text, v.config.MaxChecklistTextLength)
	}
	return errs
}

func (v *Validator) checkLength(errs []string, field, value string, max int) []string {
	if utf8.RuneCountInString(value) > max {
		errs = append(errs, fmt.Sprintf("%s too long (max %d characters)", field, max))
	}
	return errs
}

func requireOrg(errs []string, orgID string) []string {
	if orgID == "" {
		errs = append(errs, "organization ID is required")
	}
	return errs
}

func requireTask(errs []string, orgID, taskID string) []string {
	errs = requireOrg(errs, orgID)
	if taskID == "" {
		errs = append(errs, "task ID is required")
	}
	return errs
}

func checkEnum[T any](errs []string, field, value string, parse func(string) (T, error)) []string {
	if _, err := parse(value); err != nil {
		errs = append(errs, fmt.Sprintf("invalid %s %q", field, value))
	}
	return errs
}

// checkRequiredEnum validates an optional enum field that may be omitted but never nulled.
func checkRequiredEnum[T any](errs []string, field string, present bool, value *string, parse func(string) (T, error)) []string {
	if !present {
		return errs
	}
	if value == nil {
		return append(errs, fmt.Sprintf("%s cannot be null", field))
	}
	return checkEnum(errs, field, *value, parse)
}
