package apiclient

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// ID is a backend identifier. The backend sends either numbers or strings; both
// decode to the same text form used in URLs and session keys.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return err
	}
	*id = ID(data)
	return nil
}

func (id ID) String() string {
	return string(id)
}
