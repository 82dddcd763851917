package boardv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_UpdateTaskRequestKeepsAbsentAndNull(t *testing.T) {
	var codec Codec
	in := []byte(`{"organizationId":"org-1","taskId":"t1","title":"New","assignee":null}`)

	var req UpdateTaskRequest
	require.NoError(t, codec.Unmarshal(in, &req))

	title, ok := req.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "New", title)
	assert.True(t, req.Assignee.IsNull())
	assert.False(t, req.DueDate.Present())
	assert.False(t, req.EventID.Present())

	out, err := codec.Marshal(&req)
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
}

func TestCodec_ProtoMessages(t *testing.T) {
	var codec Codec
	out, err := codec.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))

	var empty emptypb.Empty
	assert.NoError(t, codec.Unmarshal([]byte("{}"), &empty))
}
