package admin

import (
	"time"

	"github.com/hms/hms/pkg/wire"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

var validStatuses = map[string]bool{
	StatusActive: true, StatusInactive: true, StatusSuspended: true,
}

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

type Doctor struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Specialization    string    `json:"specialization"`
	YearsOfExperience int       `json:"years_of_experience"`
	Status            string    `json:"status"`
	AppointmentCount  int       `json:"appointment_count"`
	Rating            float64   `json:"rating"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Patient struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	Language         string    `json:"language"`
	Status           string    `json:"status"`
	AppointmentCount int       `json:"appointment_count"`
	LastVisit        time.Time `json:"last_visit"`
	CreatedAt        time.Time `json:"created_at"`
}

type FeedbackItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PatientName string    `json:"patient_name"`
	Category    string    `json:"category"`
	Sentiment   string    `json:"sentiment"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Audience  string    `json:"audience"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// DoctorInput is the payload for creating or updating a doctor.
type DoctorInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Specialization    string `json:"specialization"`
	YearsOfExperience int    `json:"years_of_experience"`
	Status            string `json:"status,omitempty"`
}

type PatientInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Age      int    `json:"age"`
	Gender   string `json:"gender,omitempty"`
	Language string `json:"language,omitempty"`
	Status   string `json:"status,omitempty"`
}

type NotificationInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// -- Wire records --

type doctorRecord struct {
	ID                *string  `json:"id"`
	DoctorID          *string  `json:"doctor_id"`
	Name              *string  `json:"name"`
	Email             *string  `json:"email"`
	Phone             *string  `json:"phone"`
	Specialization    *string  `json:"specialization"`
	YearsOfExperience *int     `json:"years_of_experience"`
	Experience        *int     `json:"experience"`
	Status            *string  `json:"status"`
	AppointmentCount  *int     `json:"appointment_count"`
	Rating            *float64 `json:"rating"`
	CreatedAt         *string  `json:"created_at"`
	UpdatedAt         *string  `json:"updated_at"`
}

type patientRecord struct {
	ID               *string `json:"id"`
	PatientID        *string `json:"patient_id"`
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Age              *int    `json:"age"`
	Gender           *string `json:"gender"`
	Language         *string `json:"language"`
	Status           *string `json:"status"`
	AppointmentCount *int    `json:"appointment_count"`
	LastVisit        *string `json:"last_visit"`
	CreatedAt        *string `json:"created_at"`
}

type feedbackRecord struct {
	ID          *string `json:"id"`
	UserID      *string `json:"user_id"`
	PatientName *string `json:"patient_name"`
	Category    *string `json:"category"`
	Sentiment   *string `json:"sentiment"`
	Rating      *int    `json:"rating"`
	Message     *string `json:"message"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type notificationRecord struct {
	ID        *string `json:"id"`
	Title     *string `json:"title"`
	Message   *string `json:"message"`
	Type      *string `json:"type"`
	Audience  *string `json:"audience"`
	Read      *bool   `json:"read"`
	CreatedAt *string `json:"created_at"`
}

// -- Mapping --
//
// Every mapping is total: a missing field gets its documented default.

func mapDoctor(r doctorRecord) Doctor {
	return Doctor{
		ID:                wire.Str(r.ID, wire.Str(r.DoctorID, "")),
		Name:              wire.Str(r.Name, ""),
		Email:             wire.Str(r.Email, ""),
		Phone:             wire.Str(r.Phone, ""),
		Specialization:    wire.Str(r.Specialization, "General"),
		YearsOfExperience: wire.Int(r.YearsOfExperience, wire.Int(r.Experience, 0)),
		Status:            wire.Str(r.Status, StatusActive),
		AppointmentCount:  wire.Int(r.AppointmentCount, 0),
		Rating:            wire.Float(r.Rating, 0),
		CreatedAt:         wire.Time(r.CreatedAt),
		UpdatedAt:         wire.Time(r.UpdatedAt),
	}
}

func mapPatient(r patientRecord) Patient {
	return Patient{
		ID:               wire.Str(r.ID, wire.Str(r.PatientID, "")),
		Name:             wire.Str(r.Name, ""),
		Email:            wire.Str(r.Email, ""),
		Phone:            wire.Str(r.Phone, ""),
		Age:              wire.Int(r.Age, 0),
		Gender:           wire.Str(r.Gender, ""),
		Language:         wire.Str(r.Language, "English"),
		Status:           wire.Str(r.Status, StatusActive),
		AppointmentCount: wire.Int(r.AppointmentCount, 0),
		LastVisit:        wire.Time(r.LastVisit),
		CreatedAt:        wire.Time(r.CreatedAt),
	}
}

func mapFeedback(r feedbackRecord) FeedbackItem {
	return FeedbackItem{
		ID:          wire.Str(r.ID, ""),
		UserID:      wire.Str(r.UserID, ""),
		PatientName: wire.Str(r.PatientName, "Anonymous"),
		Category:    wire.Str(r.Category, "general"),
		Sentiment:   wire.Str(r.Sentiment, SentimentNeutral),
		Rating:      wire.Int(r.Rating, 0),
		Message:     wire.Str(r.Message, ""),
		CreatedAt:   wire.Time(r.CreatedAt),
		UpdatedAt:   wire.Time(r.UpdatedAt),
	}
}

func mapNotification(r notificationRecord) Notification {
	return Notification{
		ID:        wire.Str(r.ID, ""),
		Title:     wire.Str(r.Title, ""),
		Message:   wire.Str(r.Message, ""),
		Type:      wire.Str(r.Type, "info"),
		Audience:  wire.Str(r.Audience, "all"),
		Read:      wire.Bool(r.Read, false),
		CreatedAt: wire.Time(r.CreatedAt),
	}
}
