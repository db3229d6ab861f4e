package apiclient_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want apiclient.ID
	}{
		{"string", `{"id":"6650a1"}`, "6650a1"},
		{"number", `{"id":42}`, "42"},
		{"null", `{"id":null}`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out struct {
				ID apiclient.ID `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.in), &out))
			require.Equal(t, tc.want, out.ID)
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var out struct {
			ID apiclient.ID `json:"id"`
		}
		require.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &out))
	})
}
