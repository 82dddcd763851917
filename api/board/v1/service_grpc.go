// api/board/v1/service_grpc.go
package boardv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "board.v1.BoardService"

const (
	BoardService_ListTasks_FullMethodName           = "/board.v1.BoardService/ListTasks"
	BoardService_GetBoard_FullMethodName            = "/board.v1.BoardService/GetBoard"
	BoardService_CreateTask_FullMethodName          = "/board.v1.BoardService/CreateTask"
	BoardService_UpdateTask_FullMethodName          = "/board.v1.BoardService/UpdateTask"
	BoardService_MoveTask_FullMethodName            = "/board.v1.BoardService/MoveTask"
	BoardService_AddComment_FullMethodName          = "/board.v1.BoardService/AddComment"
	BoardService_AddChecklistItem_FullMethodName    = "/board.v1.BoardService/AddChecklistItem"
	BoardService_ToggleChecklistItem_FullMethodName = "/board.v1.BoardService/ToggleChecklistItem"
	BoardService_ReloadBoard_FullMethodName         = "/board.v1.BoardService/ReloadBoard"
	BoardService_WatchBoard_FullMethodName          = "/board.v1.BoardService/WatchBoard"
)

// BoardServiceClient is the client API for BoardService. Every call is sent with the json content-subtype.
type BoardServiceClient interface {
	ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error)
	GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*GetBoardResponse, error)
	CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	MoveTask(ctx context.Context, in *MoveTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	AddChecklistItem(ctx context.Context, in *AddChecklistItemRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	ToggleChecklistItem(ctx context.Context, in *ToggleChecklistItemRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	ReloadBoard(ctx context.Context, in *ReloadBoardRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	WatchBoard(ctx context.Context, in *WatchBoardRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[BoardEvent], error)
}

type boardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBoardServiceClient(cc grpc.ClientConnInterface) BoardServiceClient {
	return &boardServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *boardServiceClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	out := new(ListTasksResponse)
	if err := c.cc.Invoke(ctx, BoardService_ListTasks_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*GetBoardResponse, error) {
	out := new(GetBoardResponse)
	if err := c.cc.Invoke(ctx, BoardService_GetBoard_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.cc.Invoke(ctx, BoardService_CreateTask_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.cc.Invoke(ctx, BoardService_UpdateTask_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) MoveTask(ctx context.Context, in *MoveTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.cc.Invoke(ctx, BoardService_MoveTask_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.cc.Invoke(ctx, BoardService_AddComment_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) AddChecklistItem(ctx context.Context, in *AddChecklistItemRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.cc.Invoke(ctx, BoardService_AddChecklistItem_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) ToggleChecklistItem(ctx context.Context, in *ToggleChecklistItemRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.cc.Invoke(ctx, BoardService_ToggleChecklistItem_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) ReloadBoard(ctx context.Context, in *ReloadBoardRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, BoardService_ReloadBoard_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) WatchBoard(ctx context.Context, in *WatchBoardRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[BoardEvent], error) {
	stream, err := c.cc.NewStream(ctx, &BoardService_ServiceDesc.Streams[0], BoardService_WatchBoard_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchBoardRequest, BoardEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// BoardService_WatchBoardServer is the server side of the WatchBoard stream.
type BoardService_WatchBoardServer = grpc.ServerStreamingServer[BoardEvent]

// BoardServiceServer is the server API for BoardService.
// Implementations must embed UnimplementedBoardServiceServer.
type BoardServiceServer interface {
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	GetBoard(context.Context, *GetBoardRequest) (*GetBoardResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*TaskResponse, error)
	MoveTask(context.Context, *MoveTaskRequest) (*TaskResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*TaskResponse, error)
	AddChecklistItem(context.Context, *AddChecklistItemRequest) (*TaskResponse, error)
	ToggleChecklistItem(context.Context, *ToggleChecklistItemRequest) (*TaskResponse, error)
	ReloadBoard(context.Context, *ReloadBoardRequest) (*emptypb.Empty, error)
	WatchBoard(*WatchBoardRequest, BoardService_WatchBoardServer) error
	mustEmbedUnimplementedBoardServiceServer()
}

type UnimplementedBoardServiceServer struct{}

func (UnimplementedBoardServiceServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListTasks not implemented")
}
func (UnimplementedBoardServiceServer) GetBoard(context.Context, *GetBoardRequest) (*GetBoardResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBoard not implemented")
}
func (UnimplementedBoardServiceServer) CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateTask not implemented")
}
func (UnimplementedBoardServiceServer) UpdateTask(context.Context, *UpdateTaskRequest) (*TaskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateTask not implemented")
}
func (UnimplementedBoardServiceServer) MoveTask(context.Context, *MoveTaskRequest) (*TaskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MoveTask not implemented")
}
func (UnimplementedBoardServiceServer) AddComment(context.Context, *AddCommentRequest) (*TaskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddComment not implemented")
}
func (UnimplementedBoardServiceServer) AddChecklistItem(context.Context, *AddChecklistItemRequest) (*TaskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddChecklistItem not implemented")
}
func (UnimplementedBoardServiceServer) ToggleChecklistItem(context.Context, *ToggleChecklistItemRequest) (*TaskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ToggleChecklistItem not implemented")
}
func (UnimplementedBoardServiceServer) ReloadBoard(context.Context, *ReloadBoardRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReloadBoard not implemented")
}
func (UnimplementedBoardServiceServer) WatchBoard(*WatchBoardRequest, BoardService_WatchBoardServer) error {
	return status.Errorf(codes.Unimplemented, "method WatchBoard not implemented")
}
func (UnimplementedBoardServiceServer) mustEmbedUnimplementedBoardServiceServer() {}

func RegisterBoardServiceServer(s grpc.ServiceRegistrar, srv BoardServiceServer) {
	s.RegisterService(&BoardService_ServiceDesc, srv)
}

func _BoardService_ListTasks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListTasksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).ListTasks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_ListTasks_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).ListTasks(ctx, req.(*ListTasksRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_GetBoard_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBoardRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).GetBoard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_GetBoard_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).GetBoard(ctx, req.(*GetBoardRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_CreateTask_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateTaskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).CreateTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_CreateTask_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).CreateTask(ctx, req.(*CreateTaskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_UpdateTask_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateTaskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).UpdateTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_UpdateTask_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).UpdateTask(ctx, req.(*UpdateTaskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_MoveTask_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MoveTaskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).MoveTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_MoveTask_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).MoveTask(ctx, req.(*MoveTaskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_AddComment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddCommentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).AddComment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_AddComment_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).AddComment(ctx, req.(*AddCommentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_AddChecklistItem_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddChecklistItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).AddChecklistItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_AddChecklistItem_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).AddChecklistItem(ctx, req.(*AddChecklistItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_ToggleChecklistItem_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ToggleChecklistItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).ToggleChecklistItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_ToggleChecklistItem_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).ToggleChecklistItem(ctx, req.(*ToggleChecklistItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_ReloadBoard_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReloadBoardRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).ReloadBoard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BoardService_ReloadBoard_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).ReloadBoard(ctx, req.(*ReloadBoardRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BoardService_WatchBoard_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchBoardRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(BoardServiceServer).WatchBoard(m, &grpc.GenericServerStream[WatchBoardRequest, BoardEvent]{ServerStream: stream})
}

// BoardService_ServiceDesc is the grpc.ServiceDesc for BoardService.
var BoardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListTasks", Handler: _BoardService_ListTasks_Handler},
		{MethodName: "GetBoard", Handler: _BoardService_GetBoard_Handler},
		{MethodName: "CreateTask", Handler: _BoardService_CreateTask_Handler},
		{MethodName: "UpdateTask", Handler: _BoardService_UpdateTask_Handler},
		{MethodName: "MoveTask", Handler: _BoardService_MoveTask_Handler},
		{MethodName: "AddComment", Handler: _BoardService_AddComment_Handler},
		{MethodName: "AddChecklistItem", Handler: _BoardService_AddChecklistItem_Handler},
		{MethodName: "ToggleChecklistItem", Handler: _BoardService_ToggleChecklistItem_Handler},
		{MethodName: "ReloadBoard", Handler: _BoardService_ReloadBoard_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchBoard",
			Handler:       _BoardService_WatchBoard_Handler,
			ServerStreams: true,
		},
	},
}
