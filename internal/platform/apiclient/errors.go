package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const genericErrorMessage = "An unexpected error occurred"

// APIError is returned for every failed request. Status 0 means no response
// was received at all.
type APIError struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Err     error           `json:"-"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNetworkError reports a connectivity failure (no HTTP response).
func (e *APIError) IsNetworkError() bool { return e.Status == 0 }

// IsClientError reports a 4xx response.
func (e *APIError) IsClientError() bool { return e.Status >= 400 && e.Status < 500 }

// IsServerError reports a 5xx response.
func (e *APIError) IsServerError() bool { return e.Status >= 500 }

// IsNetworkError reports whether err carries an *APIError with status 0.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNetworkError()
}

// IsClientError reports whether err carries an *APIError with a 4xx status.
func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsClientError()
}

// IsServerError reports whether err carries an *APIError with a 5xx status.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsServerError()
}

// ValidationError is raised by the domain services before any request is
// sent. It lists every violated rule, not only the first one.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Invalid returns a *ValidationError when problems is non-empty and nil
// otherwise.
func Invalid(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// newAPIError builds the error for a non-2xx response body.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		if json.Valid([]byte(trimmed)) {
			e.Payload = json.RawMessage(trimmed)
		} else {
			e.Payload, _ = json.Marshal(trimmed)
		}
	}

	var envelope map[string]json.RawMessage
	if len(e.Payload) > 0 && json.Unmarshal(e.Payload, &envelope) == nil {
		if d, ok := envelope["detail"]; ok && string(d) != "null" {
			e.Detail = d
			e.Message = detailText(d)
		}
		if e.Message == "" {
			var msg string
			if m, ok := envelope["message"]; ok && json.Unmarshal(m, &msg) == nil {
				e.Message = msg
			}
		}
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("Request failed with status %d", status)
	}
	return e
}

// detailText flattens a server `detail` value. Strings are used as-is; arrays
// of {msg} objects (or plain strings) are joined with commas.
func detailText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		var parts []string
		for _, item := range items {
			var obj struct {
				Msg string `json:"msg"`
			}
			if json.Unmarshal(item, &obj) == nil && obj.Msg != "" {
				parts = append(parts, obj.Msg)
				continue
			}
			var str string
			if json.Unmarshal(item, &str) == nil && str != "" {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, ", ")
	}

	var obj struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Msg
	}
	return ""
}

// Describe collapses any error into a message fit for display. It prefers the
// server detail, then the error message, then the raw payload. The result is
// never empty for a non-nil error.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) && len(verr.Problems) > 0 {
		return strings.Join(verr.Problems, "; ")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Detail) > 0 {
			if text := detailText(apiErr.Detail); text != "" {
				return text
			}
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if len(apiErr.Payload) > 0 {
			return string(apiErr.Payload)
		}
		return genericErrorMessage
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericErrorMessage
}
