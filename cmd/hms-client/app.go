package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/admin"
	"github.com/hms/hms/internal/domain/auth"
	"github.com/hms/hms/internal/domain/bloodbank"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/internal/platform/session"
	"github.com/hms/hms/internal/platform/telemetry"
)

// app holds everything built from configuration. Commands construct one on
// demand so purely local commands run without a backend.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	tokens  session.TokenStore
	metrics *telemetry.ClientMetrics

	hospital  *apiclient.Client
	bloodBank *apiclient.Client

	closers []func() error
}

func newApp(reg prometheus.Registerer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: newLogger(cfg)}
	a.metrics = telemetry.NewClientMetrics(reg)

	switch cfg.TokenStore {
	case "redis":
		rdb, err := session.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		a.tokens = session.NewRedisStore(rdb, cfg.TokenKeyPrefix, "default")
	default:
		a.tokens = session.NewMemoryStore()
	}

	a.hospital = a.newClient("hospital", cfg.APIBaseURL)
	a.bloodBank = a.newClient("blood-bank", cfg.BloodBankAPIURL)
	return a, nil
}

func (a *app) newClient(name, baseURL string) *apiclient.Client {
	opts := []apiclient.Option{
		apiclient.WithTokenSource(a.tokens),
		apiclient.WithLogger(a.logger.With().Str("backend", name).Logger()),
		apiclient.WithTimeout(a.cfg.RequestTimeout),
		apiclient.WithMetrics(a.metrics),
	}
	if a.cfg.BreakerEnabled {
		opts = append(opts, apiclient.WithBreaker(apiclient.NewBreaker(name, a.cfg.BreakerFailures, a.logger, a.metrics)))
	}
	return apiclient.New(baseURL, opts...)
}

func (a *app) authService() *auth.Service {
	return auth.NewService(a.hospital, a.tokens, a.logger)
}

func (a *app) patientService() *patient.Service {
	return patient.NewService(patient.NewHTTPBackend(a.hospital), a.logger)
}

func (a *app) adminService() *admin.Service {
	return admin.NewHTTPService(a.hospital, a.logger)
}

func (a *app) bloodBankService() *bloodbank.Service {
	return bloodbank.NewService(bloodbank.NewHTTPForecaster(a.bloodBank), a.logger)
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn().Err(err).Msg("close")
		}
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// userID picks the flag value over the configured default.
func userID(flag, fallback, what string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%s id is required: pass --%s or set %s_ID", what, what, strings.ToUpper(what))
}
