package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-FieldScheduler/internal/api"
	"github.com/m04kA/SMC-FieldScheduler/internal/app"
	"github.com/m04kA/SMC-FieldScheduler/internal/integrations/textgen"
	adminService "github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
	analyticsService "github.com/m04kA/SMC-FieldScheduler/internal/service/analytics"
	bookingsService "github.com/m04kA/SMC-FieldScheduler/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-FieldScheduler/internal/usecase/create_booking"
	getAvailableTechniciansUC "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_available_technicians"
	getOpenPeriodsUC "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_open_periods"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the provisional booking sweeper",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg, log := rt.cfg, rt.log
	log.Info("Starting SMC-FieldScheduler (config=%s, storage=%s)", cfgPath, cfg.Storage.Backend)

	// Инициализируем интеграционных клиентов
	var fallbacks textgen.FallbackCounter
	if rt.metrics != nil {
		fallbacks = rt.metrics.TextGenFallbacks
	}
	textgenClient := textgen.NewClient(
		cfg.TextGen.Endpoint,
		cfg.TextGen.APIKey,
		cfg.TextGen.Model,
		time.Duration(cfg.TextGen.Timeout)*time.Second,
		log,
		fallbacks,
	)

	// Инициализируем сервисы
	adminSvc := adminService.NewService(rt.state, log)
	deps := api.Deps{
		AvailableTechnicians: getAvailableTechniciansUC.NewUseCase(rt.state, log),
		OpenPeriods:          getOpenPeriodsUC.NewUseCase(rt.state, log),
		CreateBooking:        createBookingUC.NewUseCase(rt.state, rt.metrics, log),
		Bookings:             bookingsService.NewService(rt.state, textgenClient, log),
		Admin:                adminSvc,
		Analytics:            analyticsService.NewService(rt.state, log),
		Sync:                 rt.remoteService(),
		Metrics:              rt.metrics,
		Logger:               log.With("http"),
	}

	if cfg.Auth.Enabled {
		if err := ensureBootstrapUser(ctx, adminSvc, rt); err != nil {
			return err
		}
	} else {
		log.Warn("Authentication disabled, requests run as %q", cfg.Scheduler.Actor)
	}

	opts := api.Options{
		AuthEnabled: cfg.Auth.Enabled,
		Realm:       cfg.Auth.Realm,
		NoAuthActor: cfg.Scheduler.Actor,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	router := api.NewRouter(deps, opts)

	sweeper := app.NewExpirySweeper(rt.state, time.Duration(cfg.Scheduler.ExpiryInterval)*time.Second, log.With("sweeper"))
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// ensureBootstrapUser создает первого администратора, если в снапшоте нет пользователей
func ensureBootstrapUser(ctx context.Context, adminSvc *adminService.Service, rt *runtime) error {
	auth := rt.cfg.Auth
	if auth.BootstrapPassword == "" {
		users, err := adminSvc.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			rt.log.Warn("No users configured and FS_ADMIN_PASSWORD is empty: protected routes are unreachable")
		}
		return nil
	}

	created, err := adminSvc.EnsureBootstrapUser(ctx, auth.BootstrapUser, auth.BootstrapPassword, rt.cfg.Scheduler.Actor)
	if err != nil {
		return fmt.Errorf("bootstrap user: %w", err)
	}
	if created {
		rt.log.Info("Bootstrap user %s created", auth.BootstrapUser)
	}
	return nil
}
