package admin

var statusLabels = map[string]string{
	StatusActive:    "Active",
	StatusInactive:  "Inactive",
	StatusSuspended: "Suspended",
}

var statusClasses = map[string]string{
	StatusActive:    "bg-green-100 text-green-800",
	StatusInactive:  "bg-gray-100 text-gray-800",
	StatusSuspended: "bg-red-100 text-red-800",
}

var sentimentLabels = map[string]string{
	SentimentPositive: "Positive",
	SentimentNegative: "Negative",
	SentimentNeutral:  "Neutral",
}

var sentimentClasses = map[string]string{
	SentimentPositive: "text-green-600",
	SentimentNegative: "text-red-600",
	SentimentNeutral:  "text-gray-600",
}

func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// FormatStatus labels a doctor or patient status. Unknown keys come back
// unchanged.
func FormatStatus(status string) string { return lookup(statusLabels, status) }

func StatusClass(status string) string { return lookup(statusClasses, status) }

func FormatSentiment(s string) string { return lookup(sentimentLabels, s) }

func SentimentClass(s string) string { return lookup(sentimentClasses, s) }
