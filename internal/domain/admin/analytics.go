package admin

import (
	"math"
	"sort"
	"strings"
)

// Distribution counts feedback per sentiment. Unrecognized holds items whose
// sentiment is none of the three known values; they are in no bucket.
type Distribution struct {
	Positive     int `json:"positive"`
	Negative     int `json:"negative"`
	Neutral      int `json:"neutral"`
	Unrecognized int `json:"unrecognized"`
}

// Total is the number of items in the three known buckets.
func (d Distribution) Total() int {
	return d.Positive + d.Negative + d.Neutral
}

func SentimentDistribution(items []FeedbackItem) Distribution {
	var d Distribution
	for _, it := range items {
		switch it.Sentiment {
		case SentimentPositive:
			d.Positive++
		case SentimentNegative:
			d.Negative++
		case SentimentNeutral:
			d.Neutral++
		default:
			d.Unrecognized++
		}
	}
	return d
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CategoryShare struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TopCategories returns the n most frequent categories, ties broken by name.
// n <= 0 returns all of them.
func TopCategories(items []FeedbackItem, n int) []CategoryCount {
	counts := make(map[string]int)
	for _, it := range items {
		cat := strings.TrimSpace(it.Category)
		if cat == "" {
			cat = "general"
		}
		counts[cat]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, c := range counts {
		out = append(out, CategoryCount{Category: cat, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CategoryBreakdown gives each category its rounded share of total.
func CategoryBreakdown(top []CategoryCount, total int) []CategoryShare {
	out := make([]CategoryShare, 0, len(top))
	for _, c := range top {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(c.Count) / float64(total) * 100))
		}
		out = append(out, CategoryShare{Category: c.Category, Count: c.Count, Percentage: pct})
	}
	return out
}

// AverageRating ignores unrated items. It returns 0 when nothing is rated.
func AverageRating(items []FeedbackItem) float64 {
	sum, n := 0, 0
	for _, it := range items {
		if it.Rating > 0 {
			sum += it.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}
