package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/admin"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/gateway"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the local gateway for a UI process",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	a, err := newApp(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	deps := gateway.Deps{
		Auth:      a.authService(),
		BloodBank: a.bloodBankService(),
	}
	if a.cfg.UserID != "" {
		deps.Patient = patient.NewStore(a.patientService(), a.cfg.UserID)
	}
	if a.cfg.AdminID != "" {
		deps.Admin = admin.NewStore(a.adminService(), a.cfg.AdminID)
	}

	// a store load makes up to four sequential backend calls
	srv := gateway.New(gateway.Options{
		CORSOrigins:    a.cfg.CORSOrigins,
		RequestTimeout: 4 * a.cfg.RequestTimeout,
	}, deps, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if deps.Patient != nil {
		go deps.Patient.LoadData(ctx)
	}
	if deps.Admin != nil {
		go deps.Admin.LoadData(ctx)
	}

	go func() {
		addr := ":" + a.cfg.GatewayPort
		if err := srv.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("gateway error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gateway")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway shutdown failed")
		return err
	}
	logger.Info().Msg("gateway stopped")
	return nil
}
