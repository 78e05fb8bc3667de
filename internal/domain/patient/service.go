package patient

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apiclient"
)

// Service validates patient requests and forwards them to the backend.
// It holds no session state.
type Service struct {
	backend Backend
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(backend Backend, logger zerolog.Logger) *Service {
	return &Service{backend: backend, logger: logger, now: time.Now}
}

// -- Chat --

func (s *Service) CreateChat(ctx context.Context, userID, name string) (*Chat, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	c, err := s.backend.CreateChat(ctx, userID, NewChatRequest{ChatName: strings.TrimSpace(name)})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user_id", userID).Str("chat_id", c.ChatID).Msg("chat created")
	return c, nil
}

func (s *Service) SendMessage(ctx context.Context, userID, chatID, query string) (*ChatMessage, error) {
	var problems []string
	if userID == "" {
		problems = append(problems, "User is required")
	}
	if chatID == "" {
		problems = append(problems, "Chat is required")
	}
	if strings.TrimSpace(query) == "" {
		problems = append(problems, "Message is required")
	}
	if err := apiclient.Invalid(problems); err != nil {
		return nil, err
	}
	return s.backend.SendMessage(ctx, userID, chatID, SendMessageRequest{Query: strings.TrimSpace(query)})
}

func (s *Service) ListChats(ctx context.Context, userID string) ([]Chat, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.backend.ListChats(ctx, userID)
}

// -- Appointment --

func (s *Service) CreateAppointment(ctx context.Context, userID string, req AppointmentRequest) (*Appointment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := apiclient.Invalid(ValidateAppointment(req, s.now())); err != nil {
		return nil, err
	}
	req.Type = strings.TrimSpace(req.Type)
	req.Doctor = strings.TrimSpace(req.Doctor)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.ReasonForVisit = strings.TrimSpace(req.ReasonForVisit)

	a, err := s.backend.CreateAppointment(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("appointment_id", a.ID).Str("date", a.Date).Msg("appointment requested")
	return a, nil
}

func (s *Service) ListAppointments(ctx context.Context, userID string) ([]Appointment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.backend.ListAppointments(ctx, userID)
}

// -- Feedback --

func (s *Service) SubmitFeedback(ctx context.Context, userID string, req FeedbackRequest) (*Feedback, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := apiclient.Invalid(ValidateFeedback(req)); err != nil {
		return nil, err
	}
	req.Message = strings.TrimSpace(req.Message)
	return s.backend.SubmitFeedback(ctx, userID, req)
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apiclient.Invalid([]string{"User is required"})
	}
	return nil
}
