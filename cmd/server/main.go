package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homehero/homehero/internal/auth"
	"github.com/homehero/homehero/internal/chores"
	"github.com/homehero/homehero/internal/config"
	"github.com/homehero/homehero/internal/expenses"
	"github.com/homehero/homehero/internal/groceries"
	"github.com/homehero/homehero/internal/handler"
	"github.com/homehero/homehero/internal/households"
	"github.com/homehero/homehero/internal/impact"
	"github.com/homehero/homehero/internal/router"
	"github.com/homehero/homehero/internal/schedules"
	"github.com/homehero/homehero/internal/storage/sqlite"
	"github.com/homehero/homehero/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	var estimator impact.Estimator = impact.Fixed(impact.Fallback)
	if cfg.OpenRouterAPIKey != "" {
		estimator = impact.NewOpenRouterEstimator(cfg.OpenRouterAPIKey, cfg.ImpactTimeout)
		slog.Info("impact scoring enabled")
	} else {
		slog.Info("impact scoring disabled, using fixed fallback", "impact", impact.Fallback)
	}

	householdSvc := households.NewService(store)
	choreSvc := chores.NewService(store, estimator)
	expenseSvc := expenses.NewService(store)
	grocerySvc := groceries.NewService(store)
	scheduleSvc := schedules.NewService(store)

	engine := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(authenticator, jwtManager),
		Profile:   handler.NewProfileHandler(store),
		Household: handler.NewHouseholdHandler(householdSvc),
		Chore:     handler.NewChoreHandler(choreSvc),
		Expense:   handler.NewExpenseHandler(expenseSvc),
		Grocery:   handler.NewGroceryHandler(grocerySvc),
		Schedule:  handler.NewScheduleHandler(scheduleSvc),
	}, jwtManager)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}
