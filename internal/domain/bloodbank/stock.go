package bloodbank

import (
	"math"
	"time"

	"github.com/hms/hms/pkg/wire"
)

// ShelfLife is how long donated red cells stay usable.
const ShelfLife = 42 * 24 * time.Hour

type Level string

const (
	LevelCritical Level = "critical"
	LevelLow      Level = "low"
	LevelNormal   Level = "normal"
	LevelHigh     Level = "high"
)

type StockLevel struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// StockLevelFor classifies a unit count: up to 10 is critical, up to 25 low,
// up to 50 normal, anything above is high.
func StockLevelFor(units int) StockLevel {
	switch {
	case units <= 10:
		return StockLevel{LevelCritical, "Critical shortage - immediate action required"}
	case units <= 25:
		return StockLevel{LevelLow, "Low stock - schedule donation drives"}
	case units <= 50:
		return StockLevel{LevelNormal, "Stock levels adequate"}
	default:
		return StockLevel{LevelHigh, "High stock - monitor for expiry"}
	}
}

// DefaultExpiry returns the expiry of a unit donated on donation.
func DefaultExpiry(donation time.Time) time.Time {
	return wire.Day(donation).AddDate(0, 0, int(ShelfLife/(24*time.Hour)))
}

// DaysUntilExpiry counts calendar days from now to expiry. It is negative
// once the unit has expired.
func DaysUntilExpiry(expiry, now time.Time) int {
	d := wire.Day(expiry.In(now.Location())).Sub(wire.Day(now))
	return int(math.Round(d.Hours() / 24))
}
