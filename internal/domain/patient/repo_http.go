package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/pkg/wire"
)

type httpBackend struct {
	api apiclient.Requester
	now func() time.Time
}

func NewHTTPBackend(api apiclient.Requester) Backend {
	return &httpBackend{api: api, now: time.Now}
}

func (b *httpBackend) CreateChat(ctx context.Context, userID string, req NewChatRequest) (*Chat, error) {
	var rec chatRecord
	if err := b.api.Post(ctx, "/new_chat/"+url.PathEscape(userID), req, &rec); err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	c := mapChat(rec)
	if c.ChatID == "" {
		return nil, fmt.Errorf("create chat: backend returned no chat_id")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = b.now()
	}
	return &c, nil
}

func (b *httpBackend) SendMessage(ctx context.Context, userID, chatID string, req SendMessageRequest) (*ChatMessage, error) {
	var rec chatMessageRecord
	endpoint := fmt.Sprintf("/patient/%s/chat/%s", url.PathEscape(userID), url.PathEscape(chatID))
	if err := b.api.Post(ctx, endpoint, req, &rec); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	m := mapMessage(rec)
	if m.Query == "" {
		m.Query = req.Query
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = b.now()
	}
	return &m, nil
}

func (b *httpBackend) ListChats(ctx context.Context, userID string) ([]Chat, error) {
	var raw json.RawMessage
	if err := b.api.Get(ctx, "/chats/"+url.PathEscape(userID), &raw); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	recs, err := wire.List[chatRecord](raw, "chats")
	if err != nil {
		return nil, fmt.Errorf("list chats: decode: %w", err)
	}
	chats := make([]Chat, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		c := mapChat(r)
		if c.ChatID == "" || seen[c.ChatID] {
			continue
		}
		seen[c.ChatID] = true
		chats = append(chats, c)
	}
	return chats, nil
}

func (b *httpBackend) CreateAppointment(ctx context.Context, userID string, req AppointmentRequest) (*Appointment, error) {
	var rec appointmentRecord
	if err := b.api.Post(ctx, "/patient/appointment/"+url.PathEscape(userID), req, &rec); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	a := mapAppointment(rec)
	// Fill from the request when the backend only acknowledges.
	if a.Type == "" {
		a.Type = req.Type
	}
	if a.Doctor == "" {
		a.Doctor = req.Doctor
	}
	if a.Date == "" {
		a.Date = req.Date
	}
	if a.Time == "" {
		a.Time = req.Time
	}
	if a.ReasonForVisit == "" {
		a.ReasonForVisit = req.ReasonForVisit
	}
	if a.UserID == "" {
		a.UserID = userID
	}
	return &a, nil
}

func (b *httpBackend) ListAppointments(ctx context.Context, userID string) ([]Appointment, error) {
	var raw json.RawMessage
	if err := b.api.Get(ctx, "/appointment/"+url.PathEscape(userID), &raw); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	recs, err := wire.List[appointmentRecord](raw, "appointments")
	if err != nil {
		return nil, fmt.Errorf("list appointments: decode: %w", err)
	}
	out := make([]Appointment, 0, len(recs))
	for _, r := range recs {
		out = append(out, mapAppointment(r))
	}
	return out, nil
}

func (b *httpBackend) SubmitFeedback(ctx context.Context, userID string, req FeedbackRequest) (*Feedback, error) {
	var rec feedbackRecord
	if err := b.api.Post(ctx, "/feedback/"+url.PathEscape(userID), req, &rec); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	f := mapFeedback(rec)
	if f.Message == "" {
		f.Message = req.Message
	}
	if f.Rating == 0 && req.Rating != nil {
		f.Rating = *req.Rating
	}
	if f.Category == "general" && req.Category != "" {
		f.Category = req.Category
	}
	if f.UserID == "" {
		f.UserID = userID
	}
	return &f, nil
}
