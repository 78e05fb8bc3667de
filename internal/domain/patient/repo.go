package patient

import "context"

// Backend is the patient-facing slice of the hospital API.
type Backend interface {
	CreateChat(ctx context.Context, userID string, req NewChatRequest) (*Chat, error)
	SendMessage(ctx context.Context, userID, chatID string, req SendMessageRequest) (*ChatMessage, error)
	ListChats(ctx context.Context, userID string) ([]Chat, error)
	CreateAppointment(ctx context.Context, userID string, req AppointmentRequest) (*Appointment, error)
	ListAppointments(ctx context.Context, userID string) ([]Appointment, error)
	SubmitFeedback(ctx context.Context, userID string, req FeedbackRequest) (*Feedback, error)
}
