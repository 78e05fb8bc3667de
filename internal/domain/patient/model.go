package patient

import (
	"strings"
	"time"

	"github.com/hms/hms/pkg/wire"
)

// AppointmentStatus is the canonical appointment lifecycle. The backend also
// sends "approved", which means the same as scheduled.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// NormalizeStatus folds wire spellings into the canonical enum. Unknown values
// pass through lowercased so they can still be displayed.
func NormalizeStatus(s string) AppointmentStatus {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "approved", "accepted":
		return StatusScheduled
	case "canceled":
		return StatusCancelled
	case "":
		return StatusPending
	default:
		return AppointmentStatus(v)
	}
}

type ChatMessage struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat is a conversation with the assistant. Messages only grow and keep
// insertion order.
type Chat struct {
	ChatID    string        `json:"chat_id"`
	ChatName  string        `json:"chat_name"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
}

type Appointment struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Type           string            `json:"type"`
	Doctor         string            `json:"doctor"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	ReasonForVisit string            `json:"reason_for_visit,omitempty"`
	Status         AppointmentStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type AppointmentRequest struct {
	Type           string `json:"type"`
	Doctor         string `json:"doctor"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	ReasonForVisit string `json:"reason_for_visit,omitempty"`
}

type FeedbackRequest struct {
	Category string `json:"category,omitempty"`
	Message  string `json:"message"`
	Rating   *int   `json:"rating,omitempty"`
}

type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Query string `json:"query"`
}

type NewChatRequest struct {
	ChatName string `json:"chat_name,omitempty"`
}

// -- Wire records --

type chatMessageRecord struct {
	Query     *string `json:"query"`
	Response  *string `json:"response"`
	Timestamp *string `json:"timestamp"`
}

type chatRecord struct {
	ChatID    *string             `json:"chat_id"`
	ID        *string             `json:"id"`
	ChatName  *string             `json:"chat_name"`
	Messages  []chatMessageRecord `json:"messages"`
	CreatedAt *string             `json:"created_at"`
}

type appointmentRecord struct {
	ID             *string `json:"id"`
	AppointmentID  *string `json:"appointment_id"`
	UserID         *string `json:"user_id"`
	Type           *string `json:"type"`
	Doctor         *string `json:"doctor"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	ReasonForVisit *string `json:"reason_for_visit"`
	Status         *string `json:"status"`
	CreatedAt      *string `json:"created_at"`
	UpdatedAt      *string `json:"updated_at"`
}

type feedbackRecord struct {
	ID        *string `json:"id"`
	UserID    *string `json:"user_id"`
	Category  *string `json:"category"`
	Message   *string `json:"message"`
	Rating    *int    `json:"rating"`
	Sentiment *string `json:"sentiment"`
	CreatedAt *string `json:"created_at"`
}

func mapMessage(r chatMessageRecord) ChatMessage {
	return ChatMessage{
		Query:     wire.Str(r.Query, ""),
		Response:  wire.Str(r.Response, ""),
		Timestamp: wire.Time(r.Timestamp),
	}
}

func mapChat(r chatRecord) Chat {
	c := Chat{
		ChatID:    wire.Str(r.ChatID, wire.Str(r.ID, "")),
		ChatName:  wire.Str(r.ChatName, "New Chat"),
		Messages:  make([]ChatMessage, 0, len(r.Messages)),
		CreatedAt: wire.Time(r.CreatedAt),
	}
	for _, m := range r.Messages {
		c.Messages = append(c.Messages, mapMessage(m))
	}
	return c
}

func mapAppointment(r appointmentRecord) Appointment {
	return Appointment{
		ID:             wire.Str(r.ID, wire.Str(r.AppointmentID, "")),
		UserID:         wire.Str(r.UserID, ""),
		Type:           wire.Str(r.Type, ""),
		Doctor:         wire.Str(r.Doctor, ""),
		Date:           wire.Str(r.Date, ""),
		Time:           wire.Str(r.Time, ""),
		ReasonForVisit: wire.Str(r.ReasonForVisit, ""),
		Status:         NormalizeStatus(wire.Str(r.Status, "")),
		CreatedAt:      wire.Time(r.CreatedAt),
		UpdatedAt:      wire.Time(r.UpdatedAt),
	}
}

func mapFeedback(r feedbackRecord) Feedback {
	return Feedback{
		ID:        wire.Str(r.ID, ""),
		UserID:    wire.Str(r.UserID, ""),
		Category:  wire.Str(r.Category, "general"),
		Message:   wire.Str(r.Message, ""),
		Rating:    wire.Int(r.Rating, 0),
		Sentiment: wire.Str(r.Sentiment, "neutral"),
		CreatedAt: wire.Time(r.CreatedAt),
	}
}
