package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/revenia/revenia/adapter/cli"
	cliAudit "github.com/revenia/revenia/adapter/cli/audit"
	cliBilling "github.com/revenia/revenia/adapter/cli/billing"
	cliPlan "github.com/revenia/revenia/adapter/cli/plan"
	"github.com/revenia/revenia/internal/app"
	"github.com/revenia/revenia/pkg/config"
	"github.com/revenia/revenia/pkg/observability"
)

func main() {
	// Setup logger
	logger := observability.NewLogger(observability.DefaultLogConfig())

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger based on config
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = cfg.LogLevel
	logger = observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp = cli.NewApp(
			container.Engine,
			container.Subscriptions,
			container.PlanRepository,
			container.AssignPlanHandler,
			container.ChangePlanHandler,
			container.EvaluateAccessHandler,
			container.AuditService,
		)
		cliApp.SetCurrentUserID(cfg.UserID)
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(cliBilling.Cmd)
	cli.AddCommand(cliPlan.Cmd)
	cli.AddCommand(cliAudit.Cmd)

	// Execute CLI
	cli.Execute()
}
