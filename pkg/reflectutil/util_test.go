package reflectutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaggedFields(t *testing.T) {
	type request struct {
		State   string `session:"state,delete"`
		UserID  string `session:"user_id"`
		Code    string `json:"code"`
		private string `session:"private"`
	}

	req := request{}
	fields := TaggedFields(&req, "session")
	require.Len(t, fields, 2)

	require.Equal(t, "state", fields[0].Name)
	require.True(t, fields[0].HasOption("delete"))
	require.Equal(t, "user_id", fields[1].Name)
	require.False(t, fields[1].HasOption("delete"))

	fields[0].Value.SetString("abc")
	require.Equal(t, "abc", req.State)

	require.Nil(t, TaggedFields(req, "session"))
	require.Empty(t, req.private)
}
