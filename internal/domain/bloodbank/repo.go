package bloodbank

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/pkg/wire"
)

// Forecaster is the remote forecasting and inventory service.
type Forecaster interface {
	IngestDonor(ctx context.Context, d DonorData) (*IngestResult, error)
	Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error)
	Inventory(ctx context.Context) ([]InventoryStatus, error)
	Optimize(ctx context.Context) (*OptimizationResult, error)
}

type forecasterHTTP struct {
	api apiclient.Requester
}

// NewHTTPForecaster talks to the blood-bank service. api should point at its
// own base URL.
func NewHTTPForecaster(api apiclient.Requester) Forecaster {
	return &forecasterHTTP{api: api}
}

func (f *forecasterHTTP) IngestDonor(ctx context.Context, d DonorData) (*IngestResult, error) {
	var res struct {
		DonorID  *string `json:"donor_id"`
		Accepted *bool   `json:"accepted"`
		Message  *string `json:"message"`
	}
	if err := f.api.Post(ctx, "/blood-bank/donors", d, &res); err != nil {
		return nil, fmt.Errorf("ingest donor %s: %w", d.DonorID, err)
	}
	return &IngestResult{
		DonorID:  wire.Str(res.DonorID, d.DonorID),
		Accepted: wire.Bool(res.Accepted, true),
		Message:  wire.Str(res.Message, "Donor data recorded"),
	}, nil
}

func (f *forecasterHTTP) Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error) {
	var rec forecastRecord
	if err := f.api.Post(ctx, "/blood-bank/forecast", req, &rec); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	out := mapForecast(rec, req)
	return &out, nil
}

// Inventory returns the raw stock rows. Level and DaysToExpiry are left for
// the caller to compute.
func (f *forecasterHTTP) Inventory(ctx context.Context) ([]InventoryStatus, error) {
	var raw json.RawMessage
	if err := f.api.Get(ctx, "/blood-bank/inventory", &raw); err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	recs, err := wire.List[inventoryRecord](raw, "inventory")
	if err != nil {
		return nil, fmt.Errorf("inventory: decode: %w", err)
	}
	out := make([]InventoryStatus, 0, len(recs))
	for _, r := range recs {
		out = append(out, mapInventory(r))
	}
	return out, nil
}

func (f *forecasterHTTP) Optimize(ctx context.Context) (*OptimizationResult, error) {
	var res OptimizationResult
	if err := f.api.Post(ctx, "/blood-bank/optimize", struct{}{}, &res); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	if res.Recommendations == nil {
		res.Recommendations = []Recommendation{}
	}
	if res.ProjectedShortages == nil {
		res.ProjectedShortages = []string{}
	}
	return &res, nil
}
