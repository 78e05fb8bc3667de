package admin

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apiclient"
)

type Service struct {
	doctors       DoctorRepository
	patients      PatientRepository
	feedback      FeedbackRepository
	notifications NotificationRepository
	appointments  AppointmentRepository
	logger        zerolog.Logger
}

func NewService(doc DoctorRepository, pat PatientRepository, fb FeedbackRepository, notif NotificationRepository, appt AppointmentRepository, logger zerolog.Logger) *Service {
	return &Service{
		doctors:       doc,
		patients:      pat,
		feedback:      fb,
		notifications: notif,
		appointments:  appt,
		logger:        logger,
	}
}

// NewHTTPService wires every repository to the same backend client.
func NewHTTPService(api apiclient.Requester, logger zerolog.Logger) *Service {
	return NewService(
		NewDoctorRepoHTTP(api),
		NewPatientRepoHTTP(api),
		NewFeedbackRepoHTTP(api),
		NewNotificationRepoHTTP(api),
		NewAppointmentRepoHTTP(api),
		logger,
	)
}

// -- Doctor --

func (s *Service) ListDoctors(ctx context.Context, adminID string) ([]Doctor, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	return s.doctors.List(ctx, adminID)
}

func (s *Service) CreateDoctor(ctx context.Context, adminID string, in DoctorInput) (*Doctor, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	if err := apiclient.Invalid(ValidateDoctor(in)); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Status == "" {
		in.Status = StatusActive
	}
	d, err := s.doctors.Create(ctx, adminID, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin_id", adminID).Str("doctor_id", d.ID).Msg("doctor created")
	return d, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, adminID, doctorID string, in DoctorInput) (*Doctor, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	problems := ValidateDoctor(in)
	if doctorID == "" {
		problems = append(problems, "Doctor id is required")
	}
	if err := apiclient.Invalid(problems); err != nil {
		return nil, err
	}
	return s.doctors.Update(ctx, adminID, doctorID, in)
}

// -- Patient --

func (s *Service) ListPatients(ctx context.Context, adminID string) ([]Patient, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	return s.patients.List(ctx, adminID)
}

func (s *Service) UpdatePatient(ctx context.Context, adminID, patientID string, in PatientInput) (*Patient, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	problems := ValidatePatient(in)
	if patientID == "" {
		problems = append(problems, "Patient id is required")
	}
	if err := apiclient.Invalid(problems); err != nil {
		return nil, err
	}
	return s.patients.Update(ctx, adminID, patientID, in)
}

// -- Feedback --

func (s *Service) ListFeedback(ctx context.Context) ([]FeedbackItem, error) {
	return s.feedback.List(ctx)
}

// -- Notification --

func (s *Service) ListNotifications(ctx context.Context, adminID string) ([]Notification, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	return s.notifications.List(ctx, adminID)
}

func (s *Service) SendNotification(ctx context.Context, adminID string, in NotificationInput) (*Notification, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	if err := apiclient.Invalid(ValidateNotification(in)); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = "info"
	}
	if in.Audience == "" {
		in.Audience = "all"
	}
	return s.notifications.Create(ctx, adminID, in)
}

// -- Appointment --

func (s *Service) AcceptAppointment(ctx context.Context, adminID, appointmentID string) error {
	if err := requireAdmin(adminID); err != nil {
		return err
	}
	if strings.TrimSpace(appointmentID) == "" {
		return apiclient.Invalid([]string{"Appointment id is required"})
	}
	if err := s.appointments.Accept(ctx, adminID, appointmentID); err != nil {
		return err
	}
	s.logger.Info().Str("admin_id", adminID).Str("appointment_id", appointmentID).Msg("appointment accepted")
	return nil
}

func requireAdmin(adminID string) error {
	if strings.TrimSpace(adminID) == "" {
		return apiclient.Invalid([]string{"Admin id is required"})
	}
	return nil
}
