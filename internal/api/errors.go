package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the single failure shape of the gateway. Status is the HTTP
// status code, or 0 when no response was received or it could not be used.
type APIError struct {
	Status int
	Detail string
	Cause  error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Detail)
	}
	if e.Cause != nil && e.Detail != e.Cause.Error() {
		return fmt.Sprintf("api error: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("api error: %s", e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type fieldDetail struct {
	Msg string `json:"msg"`
}

// extractDetail pulls the server's error message out of a failure body.
// It understands {"detail": "..."}, {"detail": [{"msg": "..."}]}, and
// {"error"|"message": "..."}; otherwise it falls back to the status text.
func extractDetail(data []byte, resp *http.Response) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if d := detailText(body.Detail); d != "" {
			return d
		}
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var list []fieldDetail
	if json.Unmarshal(raw, &list) == nil {
		msgs := make([]string, 0, len(list))
		for _, d := range list {
			if d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
