package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx response from the student API.
type HTTPError struct {
	StatusCode int
	Message    string // the "error" field of the body, when present
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("student api: status=%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("student api: status=%d body=%s", e.StatusCode, string(e.Body))
}

// NotFound reports whether the API answered 404.
func (e *HTTPError) NotFound() bool {
	return e != nil && e.StatusCode == http.StatusNotFound
}

func decodeErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}
