package bloodbank

import (
	"strings"
	"time"

	"github.com/hms/hms/pkg/wire"
)

const (
	minDonorAge    = 16
	maxDonorAge    = 70
	maxHorizonDays = 90
)

// ValidateDonorData returns every rule d breaks. Dates are calendar dates in
// the location of now.
func ValidateDonorData(d DonorData, now time.Time) []string {
	var problems []string
	if strings.TrimSpace(d.DonorID) == "" {
		problems = append(problems, "Donor ID is required")
	}
	if strings.TrimSpace(d.BloodType) == "" {
		problems = append(problems, "Blood type is required")
	} else if !validBloodTypes[d.BloodType] {
		problems = append(problems, "Blood type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	if d.Age < minDonorAge || d.Age > maxDonorAge {
		problems = append(problems, "Age must be between 16 and 70")
	}
	if strings.TrimSpace(d.Gender) == "" {
		problems = append(problems, "Gender is required")
	}

	donation, donationOK := parseRequiredDate(d.DonationDate, "Donation date", now, &problems)
	expiry, expiryOK := parseRequiredDate(d.ExpiryDate, "Expiry date", now, &problems)
	if donationOK && donation.After(wire.Day(now)) {
		problems = append(problems, "Donation date cannot be in the future")
	}
	if donationOK && expiryOK && !expiry.After(donation) {
		problems = append(problems, "Expiry date must be after donation date")
	}
	return problems
}

func parseRequiredDate(s, field string, now time.Time, problems *[]string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		*problems = append(*problems, field+" is required")
		return time.Time{}, false
	}
	t, ok := wire.ParseDate(s, now.Location())
	if !ok {
		*problems = append(*problems, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return t, true
}

func ValidateForecast(req ForecastRequest) []string {
	var problems []string
	if req.BloodType != "" && !validBloodTypes[req.BloodType] {
		problems = append(problems, "Blood type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	if req.HorizonDays < 1 || req.HorizonDays > maxHorizonDays {
		problems = append(problems, "Forecast horizon must be between 1 and 90 days")
	}
	return problems
}
