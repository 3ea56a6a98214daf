package display

import (
	"encoding/json"
)

// MarshalJSON marshals JSON with pretty formatting for human-readable output,
// compact when the consumer is a log pipeline.
func MarshalJSON(v interface{}, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
