package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "number", input: `{"id":1951882397156749314}`, want: "1951882397156749314"},
		{name: "string", input: `{"id":"1951882397156749314"}`, want: "1951882397156749314"},
		{name: "null", input: `{"id":null}`, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				ID ID `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.input), &payload))
			assert.Equal(t, tc.want, payload.ID)
		})
	}
}

func TestIDInt64(t *testing.T) {
	assert.Equal(t, int64(1001), ID("1001").Int64())
	assert.Equal(t, int64(0), ID("").Int64())
	assert.Equal(t, int64(0), ID("abc").Int64())
}
