package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		detail  bool
	}{
		{"detail string", 400, `{"detail":"Email already registered"}`, "Email already registered", true},
		{"detail array", 422, `{"detail":[{"loc":["body","date"],"msg":"invalid date"},{"msg":"time required"}]}`, "invalid date, time required", true},
		{"message field", 409, `{"message":"conflict"}`, "conflict", false},
		{"null detail", 500, `{"detail":null}`, "Request failed with status 500", false},
		{"not json", 502, `Bad Gateway`, "Request failed with status 502", false},
		{"empty body", 503, ``, "Request failed with status 503", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(tt.status, []byte(tt.body))
			if e.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, e.Status)
			}
			if e.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, e.Message)
			}
			if (len(e.Detail) > 0) != tt.detail {
				t.Errorf("expected detail presence %v, got %q", tt.detail, e.Detail)
			}
			if tt.body != "" && !json.Valid(e.Payload) {
				t.Errorf("payload must always be valid JSON, got %q", e.Payload)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &ValidationError{Problems: []string{"Type is required", "Doctor is required"}}, "Type is required; Doctor is required"},
		{"detail string", newAPIError(400, []byte(`{"detail":"Invalid credentials"}`)), "Invalid credentials"},
		{"detail array", newAPIError(422, []byte(`{"detail":[{"msg":"a"},{"msg":"b"}]}`)), "a, b"},
		{"wrapped api error", fmt.Errorf("load chats: %w", newAPIError(404, []byte(`{"detail":"No chats"}`))), "No chats"},
		{"message only", &APIError{Status: 500, Message: "Request failed with status 500"}, "Request failed with status 500"},
		{"payload fallback", &APIError{Status: 500, Payload: json.RawMessage(`{"error":"x"}`)}, `{"error":"x"}`},
		{"bare api error", &APIError{Status: 500}, genericErrorMessage},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), "Request timed out"},
		{"plain", errors.New("something broke"), "something broke"},
		{"empty plain", errors.New(""), genericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe_NeverEmpty(t *testing.T) {
	errs := []error{
		&APIError{},
		&ValidationError{},
		errors.New(""),
		&APIError{Detail: json.RawMessage(`[]`)},
	}
	for _, err := range errs {
		if Describe(err) == "" {
			t.Errorf("Describe(%#v) returned empty string", err)
		}
	}
}

func TestInvalid(t *testing.T) {
	if Invalid(nil) != nil {
		t.Error("expected nil for no problems")
	}
	err := Invalid([]string{"x"})
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Problems) != 1 {
		t.Errorf("expected ValidationError with one problem, got %v", err)
	}
}

func TestAPIError_Predicates(t *testing.T) {
	if !(&APIError{Status: 0}).IsNetworkError() {
		t.Error("status 0 should be a network error")
	}
	if !(&APIError{Status: 401}).IsClientError() {
		t.Error("401 should be a client error")
	}
	if (&APIError{Status: 500}).IsClientError() {
		t.Error("500 is not a client error")
	}
	if !(&APIError{Status: 503}).IsServerError() {
		t.Error("503 should be a server error")
	}
	if IsServerError(errors.New("x")) {
		t.Error("plain errors are never server errors")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ValidationError{Problems: []string{"x"}}, 400},
		{&APIError{Status: 404}, 404},
		{&APIError{Status: 0}, 503},
		{&APIError{Status: 500}, 502},
		{errors.New("x"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
