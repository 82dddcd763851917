// internal/middleware/context_extractor.go
package middleware

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

// ContextKeys for storing request metadata
type ContextKey string

const (
	ContextKeyIPAddress ContextKey = "ip_address"
	ContextKeyUserAgent ContextKey = "user_agent"
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyUserName  ContextKey = "user_name"
)

// Metadata headers naming the dashboard user. Authentication happens upstream; the board only
// uses them to attribute comments.
const (
	HeaderUserID   = "x-user-id"
	HeaderUserName = "x-user-name"
)

// MetadataExtractorInterceptor extracts client metadata and adds it to context
type MetadataExtractorInterceptor struct{}

// NewMetadataExtractorInterceptor creates a new metadata extractor interceptor
func NewMetadataExtractorInterceptor() *MetadataExtractorInterceptor {
	return &MetadataExtractorInterceptor{}
}

// Unary returns a unary server interceptor for metadata extraction
func (m *MetadataExtractorInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		// Extract metadata and add to context
		return handler(m.enrichContext(ctx), req)
	}
}

// Stream returns a stream server interceptor for metadata extraction
func (m *MetadataExtractorInterceptor) Stream() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		stream grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		// Wrap the stream so handlers see the enriched context
		wrappedStream := &enrichedServerStream{
			ServerStream: stream,
			ctx:          m.enrichContext(stream.Context()),
		}
		return handler(srv, wrappedStream)
	}
}

// enrichContext stores the caller's ip, user agent and user headers in ctx.
func (m *MetadataExtractorInterceptor) enrichContext(ctx context.Context) context.Context {
	info := ClientInfo{
		IPAddress: extractIPAddress(ctx),
		UserAgent: firstMetadataValue(ctx, "user-agent", "grpc-user-agent", "x-user-agent"),
		UserID:    firstMetadataValue(ctx, HeaderUserID),
		UserName:  firstMetadataValue(ctx, HeaderUserName),
	}
	return WithClientInfo(ctx, info)
}

// extractIPAddress extracts the client IP address from the context
func extractIPAddress(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}

	// Handle different address types
	if tcpAddr, ok := p.Addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}

	addr := p.Addr.String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func firstMetadataValue(ctx context.Context, keys ...string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	// First non-empty value wins
	for _, key := range keys {
		if values := md.Get(key); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return ""
}

// enrichedServerStream wraps grpc.ServerStream with enriched context
type enrichedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *enrichedServerStream) Context() context.Context {
	return s.ctx
}

// ClientInfo describes the caller of a request.
type ClientInfo struct {
	IPAddress string
	UserAgent string
	UserID    string
	UserName  string
}

// WithClientInfo stores the non-empty fields of info in ctx. The REST gateway uses it to hand
// request headers to the service layer.
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	if info.IPAddress != "" {
		ctx = context.WithValue(ctx, ContextKeyIPAddress, info.IPAddress)
	}
	if info.UserAgent != "" {
		ctx = context.WithValue(ctx, ContextKeyUserAgent, info.UserAgent)
	}
	if info.UserID != "" {
		ctx = context.WithValue(ctx, ContextKeyUserID, info.UserID)
	}
	if info.UserName != "" {
		ctx = context.WithValue(ctx, ContextKeyUserName, info.UserName)
	}
	return ctx
}

// GetClientInfoFromContext extracts all client information from context
func GetClientInfoFromContext(ctx context.Context) *ClientInfo {
	return &ClientInfo{
		IPAddress: stringValue(ctx, ContextKeyIPAddress),
		UserAgent: stringValue(ctx, ContextKeyUserAgent),
		UserID:    stringValue(ctx, ContextKeyUserID),
		UserName:  stringValue(ctx, ContextKeyUserName),
	}
}

func stringValue(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
