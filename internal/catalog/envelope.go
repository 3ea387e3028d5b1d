package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// envelope is the {success, data} wrapper some catalog endpoints use.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

var errEmptyBody = errors.New("empty catalog response")

// decodeList accepts either a bare JSON array or an enveloped one.
func decodeList(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errEmptyBody
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, out)
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		if env.Success != nil && !*env.Success {
			if env.Message != "" {
				return fmt.Errorf("catalog request unsuccessful: %s", env.Message)
			}
			return errors.New("catalog request unsuccessful")
		}
		data := bytes.TrimSpace(env.Data)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			return nil
		}
		if data[0] != '[' {
			return errors.New("catalog envelope data is not a list")
		}
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unexpected catalog response starting with %q", trimmed[0])
	}
}
