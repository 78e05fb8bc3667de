package admin

import (
	"testing"

	"github.com/hms/hms/pkg/wire"
)

func TestMapDoctor_Defaults(t *testing.T) {
	d := mapDoctor(doctorRecord{})
	if d.Status != StatusActive {
		t.Errorf("expected active status, got %q", d.Status)
	}
	if d.Specialization != "General" || d.YearsOfExperience != 0 || d.Name != "" {
		t.Errorf("unexpected defaults %+v", d)
	}

	d = mapDoctor(doctorRecord{
		DoctorID:   wire.Ptr("d-1"),
		Experience: wire.Ptr(12),
		Status:     wire.Ptr(StatusSuspended),
		CreatedAt:  wire.Ptr("2025-01-02T10:00:00Z"),
	})
	if d.ID != "d-1" || d.YearsOfExperience != 12 || d.Status != StatusSuspended || d.CreatedAt.IsZero() {
		t.Errorf("unexpected mapping %+v", d)
	}
}

func TestMapPatient_Defaults(t *testing.T) {
	p := mapPatient(patientRecord{Name: wire.Ptr("Ravi")})
	if p.Name != "Ravi" || p.Status != StatusActive || p.Language != "English" || p.Age != 0 {
		t.Errorf("unexpected defaults %+v", p)
	}
	if !p.LastVisit.IsZero() {
		t.Error("expected zero last visit")
	}
	p = mapPatient(patientRecord{LastVisit: wire.Ptr("garbage")})
	if !p.LastVisit.IsZero() {
		t.Error("unparseable timestamps map to zero time")
	}
}

func TestMapFeedback_Defaults(t *testing.T) {
	f := mapFeedback(feedbackRecord{Message: wire.Ptr("ok")})
	if f.Sentiment != SentimentNeutral || f.Category != "general" || f.PatientName != "Anonymous" {
		t.Errorf("unexpected defaults %+v", f)
	}
}

func TestMapNotification_Defaults(t *testing.T) {
	n := mapNotification(notificationRecord{Title: wire.Ptr("Maintenance")})
	if n.Type != "info" || n.Audience != "all" || n.Read {
		t.Errorf("unexpected defaults %+v", n)
	}
}

func TestValidateDoctor(t *testing.T) {
	tests := []struct {
		name     string
		in       DoctorInput
		problems int
	}{
		{"valid", DoctorInput{Name: "Dr. Rao", Email: "rao@example.com", Specialization: "Cardiology", YearsOfExperience: 10}, 0},
		{"empty", DoctorInput{}, 3},
		{"bad email", DoctorInput{Name: "Dr. Rao", Email: "rao", Specialization: "Cardiology"}, 1},
		{"negative experience", DoctorInput{Name: "Dr. Rao", Email: "rao@example.com", Specialization: "Cardiology", YearsOfExperience: -1}, 1},
		{"bad status", DoctorInput{Name: "Dr. Rao", Email: "rao@example.com", Specialization: "Cardiology", Status: "retired"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateDoctor(tt.in); len(got) != tt.problems {
				t.Errorf("expected %d problems, got %v", tt.problems, got)
			}
		})
	}
}

func TestValidatePatient(t *testing.T) {
	if got := ValidatePatient(PatientInput{}); len(got) != 3 {
		t.Errorf("expected 3 problems, got %v", got)
	}
	if got := ValidatePatient(PatientInput{Name: "Ravi", Email: "ravi@example.com", Age: 40}); len(got) != 0 {
		t.Errorf("expected no problems, got %v", got)
	}
}

func TestValidateNotification(t *testing.T) {
	if got := ValidateNotification(NotificationInput{}); len(got) != 2 {
		t.Errorf("expected 2 problems, got %v", got)
	}
	got := ValidateNotification(NotificationInput{Title: "t", Message: "m", Type: "spam", Audience: "everyone"})
	if len(got) != 2 {
		t.Errorf("expected type and audience problems, got %v", got)
	}
}

func TestFormatting(t *testing.T) {
	if FormatStatus(StatusSuspended) != "Suspended" || StatusClass(StatusActive) != "bg-green-100 text-green-800" {
		t.Error("unexpected status formatting")
	}
	if FormatSentiment(SentimentNegative) != "Negative" || SentimentClass(SentimentPositive) != "text-green-600" {
		t.Error("unexpected sentiment formatting")
	}
	for _, unknown := range []string{"", "archived", "Active"} {
		if FormatStatus(unknown) != unknown || StatusClass(unknown) != unknown ||
			FormatSentiment(unknown) != unknown || SentimentClass(unknown) != unknown {
			t.Errorf("unknown key %q must come back unchanged", unknown)
		}
	}
}
