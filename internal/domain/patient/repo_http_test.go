package patient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
)

func newFakeHospital(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var auth []string
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth = append(auth, c.Request().Header.Get("Authorization"))
			return next(c)
		}
	})
	e.POST("/new_chat/:userId", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"chat_id": "c-9", "chat_name": "Fever"})
	})
	e.POST("/patient/:userId/chat/:chatId", func(c echo.Context) error {
		var body map[string]string
		c.Bind(&body)
		return c.JSON(http.StatusOK, map[string]string{"response": "rest and fluids for " + body["query"]})
	})
	e.GET("/chats/:userId", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"chats": []map[string]interface{}{
			{"chat_id": "c-1", "chat_name": "One", "messages": []map[string]string{{"query": "q", "response": "r"}}},
			{"chat_id": "c-1", "chat_name": "Duplicate"},
			{"chat_id": "c-2"},
		}})
	})
	e.POST("/patient/appointment/:userId", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]string{"id": "a-1", "status": "pending"})
	})
	e.GET("/appointment/:userId", func(c echo.Context) error {
		if c.Param("userId") == "nobody" {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "No appointments found"})
		}
		return c.JSON(http.StatusOK, []map[string]string{
			{"id": "a-1", "date": "2025-03-20", "status": "approved"},
		})
	})
	e.POST("/feedback/:userId", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Feedback submitted"})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, &auth
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestHTTPBackend(t *testing.T) {
	srv, auth := newFakeHospital(t)
	api := apiclient.New(srv.URL, apiclient.WithTokenSource(staticToken("tok")))
	b := NewHTTPBackend(api)
	ctx := context.Background()

	chat, err := b.CreateChat(ctx, "u-1", NewChatRequest{})
	if err != nil || chat.ChatID != "c-9" || chat.CreatedAt.IsZero() {
		t.Fatalf("create chat: %+v, %v", chat, err)
	}

	msg, err := b.SendMessage(ctx, "u-1", "c-9", SendMessageRequest{Query: "fever"})
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if msg.Query != "fever" || msg.Response != "rest and fluids for fever" {
		t.Errorf("unexpected message %+v", msg)
	}

	chats, err := b.ListChats(ctx, "u-1")
	if err != nil {
		t.Fatalf("list chats: %v", err)
	}
	if len(chats) != 2 || chats[0].ChatName != "One" || len(chats[0].Messages) != 1 {
		t.Errorf("expected duplicate chat ids dropped, got %+v", chats)
	}

	appt, err := b.CreateAppointment(ctx, "u-1", AppointmentRequest{Type: "checkup", Doctor: "Dr. X", Date: "2025-03-15", Time: "10:00"})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if appt.Doctor != "Dr. X" || appt.UserID != "u-1" || appt.Status != StatusPending {
		t.Errorf("expected request fields filled in, got %+v", appt)
	}

	appts, err := b.ListAppointments(ctx, "u-1")
	if err != nil || len(appts) != 1 || appts[0].Status != StatusScheduled {
		t.Errorf("list appointments: %+v, %v", appts, err)
	}

	fb, err := b.SubmitFeedback(ctx, "u-1", FeedbackRequest{Message: "very helpful staff"})
	if err != nil {
		t.Fatalf("submit feedback: %v", err)
	}
	if fb.Message != "Feedback submitted" {
		t.Errorf("unexpected feedback %+v", fb)
	}

	for i, h := range *auth {
		if h != "Bearer tok" {
			t.Errorf("request %d: expected bearer token, got %q", i, h)
		}
	}
}

func TestHTTPBackend_NotFound(t *testing.T) {
	srv, _ := newFakeHospital(t)
	b := NewHTTPBackend(apiclient.New(srv.URL))

	_, err := b.ListAppointments(context.Background(), "nobody")
	if !apiclient.IsClientError(err) {
		t.Fatalf("expected client error, got %v", err)
	}
	if apiclient.Describe(err) != "No appointments found" {
		t.Errorf("unexpected description %q", apiclient.Describe(err))
	}
}
