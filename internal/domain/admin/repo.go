package admin

import "context"

type DoctorRepository interface {
	List(ctx context.Context, adminID string) ([]Doctor, error)
	Create(ctx context.Context, adminID string, in DoctorInput) (*Doctor, error)
	Update(ctx context.Context, adminID, doctorID string, in DoctorInput) (*Doctor, error)
}

type PatientRepository interface {
	List(ctx context.Context, adminID string) ([]Patient, error)
	Update(ctx context.Context, adminID, patientID string, in PatientInput) (*Patient, error)
}

type FeedbackRepository interface {
	List(ctx context.Context) ([]FeedbackItem, error)
}

type NotificationRepository interface {
	List(ctx context.Context, adminID string) ([]Notification, error)
	Create(ctx context.Context, adminID string, in NotificationInput) (*Notification, error)
}

type AppointmentRepository interface {
	Accept(ctx context.Context, adminID, appointmentID string) error
}
