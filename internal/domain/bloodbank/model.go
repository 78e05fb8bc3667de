package bloodbank

import (
	"time"

	"github.com/hms/hms/pkg/wire"
)

// BloodTypes lists every accepted ABO/Rh group.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var validBloodTypes = func() map[string]bool {
	m := make(map[string]bool, len(BloodTypes))
	for _, t := range BloodTypes {
		m[t] = true
	}
	return m
}()

type DonorData struct {
	DonorID         string  `json:"donor_id"`
	BloodType       string  `json:"blood_type"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	WeightKg        float64 `json:"weight_kg,omitempty"`
	HemoglobinLevel float64 `json:"hemoglobin_level,omitempty"`
	Location        string  `json:"location,omitempty"`
	ScreeningPassed bool    `json:"screening_passed"`
	DonationDate    string  `json:"donation_date"`
	ExpiryDate      string  `json:"expiry_date"`
}

type IngestResult struct {
	DonorID  string `json:"donor_id"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

type InventoryStatus struct {
	BloodType     string     `json:"blood_type"`
	CurrentStock  int        `json:"current_stock"`
	ExpiringSoon  int        `json:"expiring_soon"`
	NextExpiry    string     `json:"next_expiry,omitempty"`
	Level         StockLevel `json:"level"`
	DaysToExpiry  int        `json:"days_to_expiry"`
	LastUpdatedAt time.Time  `json:"last_updated_at"`
}

type ForecastRequest struct {
	BloodType   string `json:"blood_type"`
	HorizonDays int    `json:"horizon_days"`
}

type DailyForecast struct {
	Date            string  `json:"date"`
	PredictedDemand float64 `json:"predicted_demand"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

type ForecastResponse struct {
	BloodType   string          `json:"blood_type"`
	Predictions []DailyForecast `json:"predictions"`
	TotalDemand float64         `json:"total_demand"`
	Confidence  float64         `json:"confidence"`
	ModelName   string          `json:"model_name"`
}

type Recommendation struct {
	BloodType string `json:"blood_type"`
	Action    string `json:"action"`
	Units     int    `json:"units"`
	Reason    string `json:"reason"`
}

type OptimizationResult struct {
	Recommendations    []Recommendation `json:"recommendations"`
	ProjectedShortages []string         `json:"projected_shortages"`
	WasteReductionPct  float64          `json:"waste_reduction_pct"`
}

// -- Wire records --

type inventoryRecord struct {
	BloodType     *string `json:"blood_type"`
	CurrentStock  *int    `json:"current_stock"`
	Units         *int    `json:"units"`
	ExpiringSoon  *int    `json:"expiring_soon"`
	NextExpiry    *string `json:"next_expiry"`
	LastUpdatedAt *string `json:"last_updated_at"`
}

type forecastPointRecord struct {
	Date            *string  `json:"date"`
	PredictedDemand *float64 `json:"predicted_demand"`
	LowerBound      *float64 `json:"lower_bound"`
	UpperBound      *float64 `json:"upper_bound"`
}

type forecastRecord struct {
	BloodType   *string               `json:"blood_type"`
	Predictions []forecastPointRecord `json:"predictions"`
	Confidence  *float64              `json:"confidence"`
	ModelName   *string               `json:"model_name"`
}

func mapInventory(r inventoryRecord) InventoryStatus {
	return InventoryStatus{
		BloodType:     wire.Str(r.BloodType, "unknown"),
		CurrentStock:  wire.Int(r.CurrentStock, wire.Int(r.Units, 0)),
		ExpiringSoon:  wire.Int(r.ExpiringSoon, 0),
		NextExpiry:    wire.Str(r.NextExpiry, ""),
		LastUpdatedAt: wire.Time(r.LastUpdatedAt),
	}
}

// classify fills the computed fields of an inventory row.
func (inv *InventoryStatus) classify(now time.Time) {
	inv.Level = StockLevelFor(inv.CurrentStock)
	if exp, ok := wire.ParseDate(inv.NextExpiry, now.Location()); ok {
		inv.DaysToExpiry = DaysUntilExpiry(exp, now)
	}
}

func mapForecast(r forecastRecord, req ForecastRequest) ForecastResponse {
	out := ForecastResponse{
		BloodType:   wire.Str(r.BloodType, req.BloodType),
		Predictions: make([]DailyForecast, 0, len(r.Predictions)),
		Confidence:  wire.Float(r.Confidence, 0),
		ModelName:   wire.Str(r.ModelName, ""),
	}
	for _, p := range r.Predictions {
		f := DailyForecast{
			Date:            wire.Str(p.Date, ""),
			PredictedDemand: wire.Float(p.PredictedDemand, 0),
		}
		f.LowerBound = wire.Float(p.LowerBound, f.PredictedDemand)
		f.UpperBound = wire.Float(p.UpperBound, f.PredictedDemand)
		out.TotalDemand += f.PredictedDemand
		out.Predictions = append(out.Predictions, f)
	}
	return out
}
