package admin

import (
	"context"
	"sync"

	"github.com/hms/hms/internal/platform/state"
)

// topCategoryLimit is how many categories the dashboard breaks down.
const topCategoryLimit = 5

// Dashboard is a copy of the admin store plus its derived analytics.
type Dashboard struct {
	AdminID       string          `json:"admin_id"`
	Doctors       []Doctor        `json:"doctors"`
	Patients      []Patient       `json:"patients"`
	Feedback      []FeedbackItem  `json:"feedback"`
	Notifications []Notification  `json:"notifications"`
	Sentiment     Distribution    `json:"sentiment"`
	Categories    []CategoryShare `json:"categories"`
	AverageRating float64         `json:"average_rating"`
	Loading       bool            `json:"loading"`
	Error         string          `json:"error,omitempty"`
}

// Store is the in-memory state of one admin session.
type Store struct {
	*state.Envelope

	svc     *Service
	adminID string

	mu            sync.RWMutex
	doctors       []Doctor
	patients      []Patient
	feedback      []FeedbackItem
	notifications []Notification
}

func NewStore(svc *Service, adminID string) *Store {
	return &Store{
		Envelope: state.NewEnvelope(svc.logger.With().Str("store", "admin").Str("admin_id", adminID).Logger()),
		svc:      svc,
		adminID:  adminID,
	}
}

// LoadData fetches doctors, patients, feedback and notifications. State is
// only replaced when every call succeeds.
func (s *Store) LoadData(ctx context.Context) error {
	return s.Run(ctx, "load_data", func(ctx context.Context) error {
		doctors, err := s.svc.ListDoctors(ctx, s.adminID)
		if err != nil {
			return err
		}
		patients, err := s.svc.ListPatients(ctx, s.adminID)
		if err != nil {
			return err
		}
		feedback, err := s.svc.ListFeedback(ctx)
		if err != nil {
			return err
		}
		notifications, err := s.svc.ListNotifications(ctx, s.adminID)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.doctors = doctors
		s.patients = patients
		s.feedback = feedback
		s.notifications = notifications
		s.mu.Unlock()
		return nil
	})
}

func (s *Store) RefreshData(ctx context.Context) error {
	return s.LoadData(ctx)
}

func (s *Store) AddDoctor(ctx context.Context, in DoctorInput) (*Doctor, error) {
	var created *Doctor
	err := s.Run(ctx, "add_doctor", func(ctx context.Context) error {
		d, err := s.svc.CreateDoctor(ctx, s.adminID, in)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.doctors = append(s.doctors, *d)
		s.mu.Unlock()
		created = d
		return nil
	})
	return created, err
}

func (s *Store) UpdateDoctor(ctx context.Context, doctorID string, in DoctorInput) (*Doctor, error) {
	var updated *Doctor
	err := s.Run(ctx, "update_doctor", func(ctx context.Context) error {
		d, err := s.svc.UpdateDoctor(ctx, s.adminID, doctorID, in)
		if err != nil {
			return err
		}
		s.mu.Lock()
		replaced := false
		for i := range s.doctors {
			if s.doctors[i].ID == d.ID {
				s.doctors[i] = *d
				replaced = true
				break
			}
		}
		if !replaced {
			s.doctors = append(s.doctors, *d)
		}
		s.mu.Unlock()
		updated = d
		return nil
	})
	return updated, err
}

func (s *Store) UpdatePatient(ctx context.Context, patientID string, in PatientInput) (*Patient, error) {
	var updated *Patient
	err := s.Run(ctx, "update_patient", func(ctx context.Context) error {
		p, err := s.svc.UpdatePatient(ctx, s.adminID, patientID, in)
		if err != nil {
			return err
		}
		s.mu.Lock()
		for i := range s.patients {
			if s.patients[i].ID == p.ID {
				s.patients[i] = *p
				break
			}
		}
		s.mu.Unlock()
		updated = p
		return nil
	})
	return updated, err
}

// SendNotification prepends the created notification.
func (s *Store) SendNotification(ctx context.Context, in NotificationInput) (*Notification, error) {
	var created *Notification
	err := s.Run(ctx, "send_notification", func(ctx context.Context) error {
		n, err := s.svc.SendNotification(ctx, s.adminID, in)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.notifications = append([]Notification{*n}, s.notifications...)
		s.mu.Unlock()
		created = n
		return nil
	})
	return created, err
}

func (s *Store) AcceptAppointment(ctx context.Context, appointmentID string) error {
	return s.Run(ctx, "accept_appointment", func(ctx context.Context) error {
		return s.svc.AcceptAppointment(ctx, s.adminID, appointmentID)
	})
}

// -- Reads --

func (s *Store) Doctors() []Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Doctor{}, s.doctors...)
}

func (s *Store) Patients() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Patient{}, s.patients...)
}

func (s *Store) Feedback() []FeedbackItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FeedbackItem{}, s.feedback...)
}

func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification{}, s.notifications...)
}

func (s *Store) Sentiment() Distribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SentimentDistribution(s.feedback)
}

func (s *Store) Categories() []CategoryShare {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CategoryBreakdown(TopCategories(s.feedback, topCategoryLimit), len(s.feedback))
}

func (s *Store) Snapshot() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dashboard{
		AdminID:       s.adminID,
		Doctors:       append([]Doctor{}, s.doctors...),
		Patients:      append([]Patient{}, s.patients...),
		Feedback:      append([]FeedbackItem{}, s.feedback...),
		Notifications: append([]Notification{}, s.notifications...),
		Sentiment:     SentimentDistribution(s.feedback),
		Categories:    CategoryBreakdown(TopCategories(s.feedback, topCategoryLimit), len(s.feedback)),
		AverageRating: AverageRating(s.feedback),
		Loading:       s.Loading(),
		Error:         s.Err(),
	}
}
