package patient

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hms/hms/pkg/wire"
)

const (
	minFeedbackLength = 10
	minRating         = 1
	maxRating         = 5
)

// ValidateAppointment returns every rule the request breaks. A date equal to
// the current calendar day of now is accepted.
func ValidateAppointment(req AppointmentRequest, now time.Time) []string {
	var problems []string
	if strings.TrimSpace(req.Type) == "" {
		problems = append(problems, "Appointment type is required")
	}
	if strings.TrimSpace(req.Doctor) == "" {
		problems = append(problems, "Doctor is required")
	}
	if strings.TrimSpace(req.Date) == "" {
		problems = append(problems, "Appointment date is required")
	} else if d, ok := wire.ParseDate(req.Date, now.Location()); !ok {
		problems = append(problems, "Appointment date must be in YYYY-MM-DD format")
	} else if d.Before(wire.Day(now)) {
		problems = append(problems, "Appointment date must be today or in the future")
	}
	if strings.TrimSpace(req.Time) == "" {
		problems = append(problems, "Appointment time is required")
	}
	return problems
}

func ValidateFeedback(req FeedbackRequest) []string {
	var problems []string
	msg := strings.TrimSpace(req.Message)
	switch {
	case msg == "":
		problems = append(problems, "Message is required")
	case utf8.RuneCountInString(msg) < minFeedbackLength:
		problems = append(problems, "Message must be at least 10 characters")
	}
	if req.Rating != nil && (*req.Rating < minRating || *req.Rating > maxRating) {
		problems = append(problems, "Rating must be between 1 and 5")
	}
	return problems
}
