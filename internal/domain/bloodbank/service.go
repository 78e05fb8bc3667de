package bloodbank

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/pkg/wire"
)

const defaultHorizonDays = 7

type Service struct {
	remote Forecaster
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(remote Forecaster, logger zerolog.Logger) *Service {
	return &Service{remote: remote, logger: logger, now: time.Now}
}

// NormalizeDonor trims the donor id, upper-cases the blood type and fills a
// missing expiry date with DefaultExpiry.
func NormalizeDonor(d DonorData, loc *time.Location) DonorData {
	d.DonorID = strings.TrimSpace(d.DonorID)
	d.BloodType = strings.ToUpper(strings.TrimSpace(d.BloodType))
	if strings.TrimSpace(d.ExpiryDate) == "" {
		if exp, ok := DefaultExpiryFor(d.DonationDate, loc); ok {
			d.ExpiryDate = exp
		}
	}
	return d
}

// CheckDonor normalizes a record and returns it with its validation
// problems. Ingest accepts exactly the records this reports no problems for.
func CheckDonor(d DonorData, now time.Time) (DonorData, []string) {
	d = NormalizeDonor(d, now.Location())
	return d, ValidateDonorData(d, now)
}

// IngestDonor validates a donation record and sends it to the forecasting
// service.
func (s *Service) IngestDonor(ctx context.Context, d DonorData) (*IngestResult, error) {
	d, problems := CheckDonor(d, s.now())
	if err := apiclient.Invalid(problems); err != nil {
		return nil, err
	}
	res, err := s.remote.IngestDonor(ctx, d)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("donor_id", d.DonorID).Str("blood_type", d.BloodType).Msg("donor ingested")
	return res, nil
}

func (s *Service) Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error) {
	req.BloodType = strings.ToUpper(strings.TrimSpace(req.BloodType))
	if req.HorizonDays == 0 {
		req.HorizonDays = defaultHorizonDays
	}
	if err := apiclient.Invalid(ValidateForecast(req)); err != nil {
		return nil, err
	}
	return s.remote.Forecast(ctx, req)
}

// Inventory returns current stock per blood type, each classified with
// StockLevelFor.
func (s *Service) Inventory(ctx context.Context) ([]InventoryStatus, error) {
	rows, err := s.remote.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range rows {
		rows[i].classify(now)
		if rows[i].Level.Level == LevelCritical {
			s.logger.Warn().Str("blood_type", rows[i].BloodType).Int("units", rows[i].CurrentStock).Msg("critical stock")
		}
	}
	return rows, nil
}

func (s *Service) Optimize(ctx context.Context) (*OptimizationResult, error) {
	return s.remote.Optimize(ctx)
}

// DefaultExpiryFor formats DefaultExpiry for a YYYY-MM-DD donation date.
func DefaultExpiryFor(donationDate string, loc *time.Location) (string, bool) {
	d, ok := wire.ParseDate(donationDate, loc)
	if !ok {
		return "", false
	}
	return DefaultExpiry(d).Format(wire.DateLayout), true
}
