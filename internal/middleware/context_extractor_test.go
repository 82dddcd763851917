package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func TestMetadataExtractor_Unary(t *testing.T) {
	ctx := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("10.0.0.7"), Port: 5555},
	})
	ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(
		"user-agent", "opsboard-cli/1.0",
		HeaderUserID, "u-42",
		HeaderUserName, "Dana Ops",
	))

	var got *ClientInfo
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = GetClientInfoFromContext(ctx)
		return nil, nil
	}
	_, err := NewMetadataExtractorInterceptor().Unary()(ctx, nil, &grpc.UnaryServerInfo{}, handler)
	require.NoError(t, err)

	assert.Equal(t, &ClientInfo{
		IPAddress: "10.0.0.7",
		UserAgent: "opsboard-cli/1.0",
		UserID:    "u-42",
		UserName:  "Dana Ops",
	}, got)
}

func TestGetClientInfoFromContext_Empty(t *testing.T) {
	assert.Equal(t, &ClientInfo{}, GetClientInfoFromContext(context.Background()))
}

func TestWithClientInfo_SkipsEmptyFields(t *testing.T) {
	ctx := WithClientInfo(context.Background(), ClientInfo{UserName: "Lee"})
	info := GetClientInfoFromContext(ctx)
	assert.Equal(t, "Lee", info.UserName)
	assert.Empty(t, info.UserID)
}

func TestLoggingInterceptor_Unary(t *testing.T) {
	var buf bytes.Buffer
	interceptor := NewLoggingInterceptor(zerolog.New(&buf)).Unary()
	ctx := WithClientInfo(context.Background(), ClientInfo{IPAddress: "127.0.0.1"})
	info := &grpc.UnaryServerInfo{FullMethod: "/board.v1.BoardService/MoveTask"}

	_, err := interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "task not found")
	})
	require.Error(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/board.v1.BoardService/MoveTask", entry["method"])
	assert.Equal(t, "NotFound", entry["code"])
	assert.Equal(t, "127.0.0.1", entry["ip"])

	buf.Reset()
	_, err = interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "OK", entry["code"])
}
