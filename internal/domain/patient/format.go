package patient

var statusLabels = map[string]string{
	"pending":   "Pending",
	"scheduled": "Scheduled",
	"approved":  "Scheduled",
	"completed": "Completed",
	"cancelled": "Cancelled",
}

var statusClasses = map[string]string{
	"pending":   "bg-yellow-100 text-yellow-800",
	"scheduled": "bg-green-100 text-green-800",
	"approved":  "bg-green-100 text-green-800",
	"completed": "bg-blue-100 text-blue-800",
	"cancelled": "bg-red-100 text-red-800",
}

var typeLabels = map[string]string{
	"checkup":      "General Checkup",
	"consultation": "Consultation",
	"follow_up":    "Follow-up",
	"follow-up":    "Follow-up",
	"emergency":    "Emergency",
	"specialist":   "Specialist Visit",
	"vaccination":  "Vaccination",
	"lab_test":     "Lab Test",
}

// FormatAppointmentStatus returns the display label, or status unchanged.
func FormatAppointmentStatus(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// AppointmentStatusClass returns the badge class for status, or status
// unchanged.
func AppointmentStatusClass(status string) string {
	if c, ok := statusClasses[status]; ok {
		return c
	}
	return status
}

func FormatAppointmentType(t string) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return t
}
