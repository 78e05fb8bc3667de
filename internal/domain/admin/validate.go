package admin

import (
	"net/mail"
	"strings"
)

const (
	maxExperienceYears = 70
	maxPatientAge      = 150
)

var validNotificationTypes = map[string]bool{
	"info": true, "warning": true, "alert": true, "success": true,
}

var validAudiences = map[string]bool{
	"all": true, "doctors": true, "patients": true,
}

// ValidateDoctor returns every rule the input breaks.
func ValidateDoctor(in DoctorInput) []string {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "Name is required")
	}
	problems = append(problems, checkEmail(in.Email)...)
	if strings.TrimSpace(in.Specialization) == "" {
		problems = append(problems, "Specialization is required")
	}
	if in.YearsOfExperience < 0 || in.YearsOfExperience > maxExperienceYears {
		problems = append(problems, "Years of experience must be between 0 and 70")
	}
	if in.Status != "" && !validStatuses[in.Status] {
		problems = append(problems, "Status must be one of active, inactive, suspended")
	}
	return problems
}

func ValidatePatient(in PatientInput) []string {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "Name is required")
	}
	problems = append(problems, checkEmail(in.Email)...)
	if in.Age <= 0 || in.Age > maxPatientAge {
		problems = append(problems, "Age must be between 1 and 150")
	}
	if in.Status != "" && !validStatuses[in.Status] {
		problems = append(problems, "Status must be one of active, inactive, suspended")
	}
	return problems
}

func ValidateNotification(in NotificationInput) []string {
	var problems []string
	if strings.TrimSpace(in.Title) == "" {
		problems = append(problems, "Title is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		problems = append(problems, "Message is required")
	}
	if in.Type != "" && !validNotificationTypes[in.Type] {
		problems = append(problems, "Type must be one of info, warning, alert, success")
	}
	if in.Audience != "" && !validAudiences[in.Audience] {
		problems = append(problems, "Audience must be one of all, doctors, patients")
	}
	return problems
}

func checkEmail(email string) []string {
	email = strings.TrimSpace(email)
	if email == "" {
		return []string{"Email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []string{"Email is not valid"}
	}
	return nil
}
