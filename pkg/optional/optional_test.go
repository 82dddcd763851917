package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	EventID Value[string] `json:"eventId,omitzero"`
	Label   Value[string] `json:"label,omitzero"`
}

func TestValue_UnmarshalDistinguishesAbsentAndNull(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPresent bool
		wantNull    bool
		wantValue   string
	}{
		{name: "absent", input: `{}`},
		{name: "null", input: `{"eventId":null}`, wantPresent: true, wantNull: true},
		{name: "value", input: `{"eventId":"evt-1"}`, wantPresent: true, wantValue: "evt-1"},
		{name: "empty string is a value", input: `{"eventId":""}`, wantPresent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))

			assert.Equal(t, tt.wantPresent, p.EventID.Present())
			assert.Equal(t, tt.wantNull, p.EventID.IsNull())
			v, ok := p.EventID.Get()
			assert.Equal(t, tt.wantPresent && !tt.wantNull, ok)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestValue_MarshalOmitsAbsent(t *testing.T) {
	p := patch{EventID: Null[string]()}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventId":null}`, string(data))

	p = patch{Label: Of("gate 4")}
	data, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"gate 4"}`, string(data))
}

func TestFromPtr(t *testing.T) {
	assert.True(t, FromPtr[string](nil).IsNull())

	s := "x"
	v := FromPtr(&s)
	require.NotNil(t, v.Ptr())
	assert.Equal(t, "x", *v.Ptr())
	assert.Nil(t, Null[int]().Ptr())
	assert.Nil(t, Value[int]{}.Ptr())
}
