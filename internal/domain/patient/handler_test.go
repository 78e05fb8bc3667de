package patient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
)

func newTestHandler() (*Handler, *echo.Echo, *mockBackend) {
	b := newMockBackend()
	h := NewHandler(newTestStore(b))
	return h, echo.New(), b
}

func TestHandler_RequestAppointment(t *testing.T) {
	h, e, _ := newTestHandler()

	body := `{"type":"checkup","doctor":"Dr. X","date":"2025-03-15","time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patient/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RequestAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var a Appointment
	json.Unmarshal(rec.Body.Bytes(), &a)
	if a.Doctor != "Dr. X" {
		t.Errorf("expected Dr. X, got %q", a.Doctor)
	}
}

func TestHandler_RequestAppointment_Invalid(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/patient/appointments", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.RequestAppointment(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if !strings.Contains(he.Message.(string), "Doctor is required") {
		t.Errorf("expected all problems in message, got %v", he.Message)
	}
}

func TestHandler_SelectChat_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/patient/chats/:chatId/select")
	c.SetParamNames("chatId")
	c.SetParamValues("missing")

	err := h.SelectChat(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_GetState(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/patient", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetState(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.UserID != "u-1" || snap.Loading {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestHandler_DismissError(t *testing.T) {
	h, e, b := newTestHandler()
	b.err = &apiclient.APIError{Status: 500, Message: "Scheduler offline"}
	h.store.LoadData(context.Background())
	if h.store.Err() == "" {
		t.Fatal("expected failed load to fill the error slot")
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/patient/error", nil)
	rec := httptest.NewRecorder()
	if err := h.DismissError(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Error != "" || h.store.Err() != "" {
		t.Errorf("expected cleared error, got %q", snap.Error)
	}
}
