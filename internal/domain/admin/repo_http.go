package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/pkg/wire"
)

func adminPath(adminID, rest string) string {
	return "/admin/" + url.PathEscape(adminID) + rest
}

// -- Doctor --

type doctorRepoHTTP struct {
	api apiclient.Requester
}

func NewDoctorRepoHTTP(api apiclient.Requester) DoctorRepository {
	return &doctorRepoHTTP{api: api}
}

func (r *doctorRepoHTTP) List(ctx context.Context, adminID string) ([]Doctor, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, adminPath(adminID, "/doctors"), &raw); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	recs, err := wire.List[doctorRecord](raw, "doctors")
	if err != nil {
		return nil, fmt.Errorf("list doctors: decode: %w", err)
	}
	out := make([]Doctor, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapDoctor(rec))
	}
	return out, nil
}

func (r *doctorRepoHTTP) Create(ctx context.Context, adminID string, in DoctorInput) (*Doctor, error) {
	var rec doctorRecord
	if err := r.api.Post(ctx, adminPath(adminID, "/doctors"), in, &rec); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	d := mergeDoctor(mapDoctor(rec), in)
	return &d, nil
}

func (r *doctorRepoHTTP) Update(ctx context.Context, adminID, doctorID string, in DoctorInput) (*Doctor, error) {
	var rec doctorRecord
	if err := r.api.Put(ctx, adminPath(adminID, "/doctors/"+url.PathEscape(doctorID)), in, &rec); err != nil {
		return nil, fmt.Errorf("update doctor %s: %w", doctorID, err)
	}
	d := mergeDoctor(mapDoctor(rec), in)
	if d.ID == "" {
		d.ID = doctorID
	}
	return &d, nil
}

// mergeDoctor fills fields the backend left out of its answer from what was
// sent.
func mergeDoctor(d Doctor, in DoctorInput) Doctor {
	if d.Name == "" {
		d.Name = in.Name
	}
	if d.Email == "" {
		d.Email = in.Email
	}
	if d.Phone == "" {
		d.Phone = in.Phone
	}
	if d.Specialization == "General" && in.Specialization != "" {
		d.Specialization = in.Specialization
	}
	if d.YearsOfExperience == 0 {
		d.YearsOfExperience = in.YearsOfExperience
	}
	if in.Status != "" && d.Status == StatusActive {
		d.Status = in.Status
	}
	return d
}

// -- Patient --

type patientRepoHTTP struct {
	api apiclient.Requester
}

func NewPatientRepoHTTP(api apiclient.Requester) PatientRepository {
	return &patientRepoHTTP{api: api}
}

func (r *patientRepoHTTP) List(ctx context.Context, adminID string) ([]Patient, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, adminPath(adminID, "/patients"), &raw); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	recs, err := wire.List[patientRecord](raw, "patients")
	if err != nil {
		return nil, fmt.Errorf("list patients: decode: %w", err)
	}
	out := make([]Patient, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapPatient(rec))
	}
	return out, nil
}

func (r *patientRepoHTTP) Update(ctx context.Context, adminID, patientID string, in PatientInput) (*Patient, error) {
	var rec patientRecord
	if err := r.api.Put(ctx, adminPath(adminID, "/patients/"+url.PathEscape(patientID)), in, &rec); err != nil {
		return nil, fmt.Errorf("update patient %s: %w", patientID, err)
	}
	p := mapPatient(rec)
	if p.ID == "" {
		p.ID = patientID
	}
	if p.Name == "" {
		p.Name = in.Name
	}
	if p.Email == "" {
		p.Email = in.Email
	}
	if p.Age == 0 {
		p.Age = in.Age
	}
	if in.Status != "" && p.Status == StatusActive {
		p.Status = in.Status
	}
	return &p, nil
}

// -- Feedback --

type feedbackRepoHTTP struct {
	api apiclient.Requester
}

func NewFeedbackRepoHTTP(api apiclient.Requester) FeedbackRepository {
	return &feedbackRepoHTTP{api: api}
}

func (r *feedbackRepoHTTP) List(ctx context.Context) ([]FeedbackItem, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, "/feedback/", &raw); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	recs, err := wire.List[feedbackRecord](raw, "feedback")
	if err != nil {
		return nil, fmt.Errorf("list feedback: decode: %w", err)
	}
	out := make([]FeedbackItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapFeedback(rec))
	}
	return out, nil
}

// -- Notification --

type notificationRepoHTTP struct {
	api apiclient.Requester
}

func NewNotificationRepoHTTP(api apiclient.Requester) NotificationRepository {
	return &notificationRepoHTTP{api: api}
}

func (r *notificationRepoHTTP) List(ctx context.Context, adminID string) ([]Notification, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, adminPath(adminID, "/notifications"), &raw); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	recs, err := wire.List[notificationRecord](raw, "notifications")
	if err != nil {
		return nil, fmt.Errorf("list notifications: decode: %w", err)
	}
	out := make([]Notification, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapNotification(rec))
	}
	return out, nil
}

func (r *notificationRepoHTTP) Create(ctx context.Context, adminID string, in NotificationInput) (*Notification, error) {
	var rec notificationRecord
	if err := r.api.Post(ctx, adminPath(adminID, "/notifications"), in, &rec); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	n := mapNotification(rec)
	if n.Title == "" {
		n.Title = in.Title
	}
	if n.Message == "" {
		n.Message = in.Message
	}
	if in.Type != "" && n.Type == "info" {
		n.Type = in.Type
	}
	if in.Audience != "" && n.Audience == "all" {
		n.Audience = in.Audience
	}
	return &n, nil
}

// -- Appointment --

type appointmentRepoHTTP struct {
	api apiclient.Requester
}

func NewAppointmentRepoHTTP(api apiclient.Requester) AppointmentRepository {
	return &appointmentRepoHTTP{api: api}
}

func (r *appointmentRepoHTTP) Accept(ctx context.Context, adminID, appointmentID string) error {
	endpoint := fmt.Sprintf("/admin/accept_appointment/%s/%s", url.PathEscape(adminID), url.PathEscape(appointmentID))
	if err := r.api.Post(ctx, endpoint, nil, nil); err != nil {
		return fmt.Errorf("accept appointment %s: %w", appointmentID, err)
	}
	return nil
}
