package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	auditApp "github.com/revenia/revenia/internal/audit/application"
	auditInfra "github.com/revenia/revenia/internal/audit/infrastructure"
	billingApp "github.com/revenia/revenia/internal/billing/application"
	billingDomain "github.com/revenia/revenia/internal/billing/domain"
	billingAudit "github.com/revenia/revenia/internal/billing/infrastructure/audit"
	billingMetrics "github.com/revenia/revenia/internal/billing/infrastructure/metrics"
	billingPersistence "github.com/revenia/revenia/internal/billing/infrastructure/persistence"
	plansApp "github.com/revenia/revenia/internal/plans/application"
	plansDomain "github.com/revenia/revenia/internal/plans/domain"
	plansPersistence "github.com/revenia/revenia/internal/plans/infrastructure/persistence"
	"github.com/revenia/revenia/internal/shared/infrastructure/eventbus"
	"github.com/revenia/revenia/internal/shared/infrastructure/outbox"
	"github.com/revenia/revenia/pkg/config"

	_ "modernc.org/sqlite"
)

// Container holds all application dependencies wired together.
//
// Three storage modes exist. With DATABASE_URL set, billing state lives in
// Postgres and audit events go through the transactional outbox for the
// worker to deliver. With SQLITE_PATH set, state lives in a local SQLite
// file and audit events go through a SQLite outbox drained by an in-process
// processor into the local audit log. Otherwise everything is in memory and
// audit events are dispatched synchronously on the in-process bus.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Billing
	Engine        *billingApp.Engine
	Subscriptions billingDomain.SubscriptionRepository
	Invoices      billingDomain.InvoiceRepository

	// Plans
	PlanRepository        plansDomain.PlanRepository
	AssignmentRepository  plansDomain.PlanAssignmentRepository
	AssignPlanHandler     *plansApp.AssignPlanHandler
	ChangePlanHandler     *plansApp.ChangePlanHandler
	EvaluateAccessHandler *plansApp.EvaluateAccessHandler

	// Audit
	AuditService *auditApp.Service
	EventBus     *eventbus.InProcessEventBus

	// Outbox (postgres and sqlite modes)
	OutboxRepository outbox.Repository
	OutboxProcessor  *outbox.Processor

	closers []func()
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	var (
		subscriptions billingDomain.SubscriptionRepository
		invoices      billingDomain.InvoiceRepository
		auditRepo     = auditInfra.NewMemoryRepository()
		planRepo      plansDomain.PlanRepository
		assignments   plansDomain.PlanAssignmentRepository
		publisher     billingDomain.AuditPublisher
	)

	bus := eventbus.NewInProcessEventBus(logger)
	c.EventBus = bus

	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)

		subscriptions = billingPersistence.NewPostgresSubscriptionRepository(pool)
		invoices = billingPersistence.NewPostgresInvoiceRepository(pool)
		c.OutboxRepository = outbox.NewPostgresRepository(pool)
		publisher = billingAudit.NewOutboxPublisher(c.OutboxRepository)

		// The catalog and the local audit view stay in memory; durable
		// audit delivery runs through the outbox and the worker.
		planRepo = plansPersistence.NewMemoryPlanRepository()
		assignments = plansPersistence.NewMemoryAssignmentRepository()
		logger.Info("storage initialized", "driver", "postgres")

	case cfg.SQLitePath != "":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		c.closers = append(c.closers, func() { _ = db.Close() })

		if err := billingPersistence.EnsureSQLiteSchema(ctx, db); err != nil {
			return nil, err
		}
		if err := plansPersistence.EnsureSQLiteSchema(ctx, db); err != nil {
			return nil, err
		}
		if err := auditInfra.EnsureSQLiteSchema(ctx, db); err != nil {
			return nil, err
		}

		subscriptions = billingPersistence.NewSQLiteSubscriptionRepository(db)
		invoices = billingPersistence.NewSQLiteInvoiceRepository(db)
		planRepo = plansPersistence.NewSQLitePlanRepository(db)
		assignments = plansPersistence.NewSQLiteAssignmentRepository(db)

		sqliteAudit := auditInfra.NewSQLiteRepository(db)
		bus.RegisterConsumer(auditInfra.NewBillingEventConsumer(sqliteAudit))
		c.AuditService = auditApp.NewService(sqliteAudit)

		// Audit events go through a local outbox. The in-process processor
		// drains them into the bus: backlog from earlier runs on startup,
		// this run's events on Close.
		outboxRepo := outbox.NewSQLiteRepository(db)
		if err := outboxRepo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		c.OutboxRepository = outboxRepo
		publisher = billingAudit.NewOutboxPublisher(outboxRepo)

		c.OutboxProcessor = outbox.NewProcessor(outboxRepo, bus, outbox.ProcessorConfig{
			PollInterval: cfg.OutboxPollInterval,
			BatchSize:    cfg.OutboxBatchSize,
			MaxRetries:   cfg.OutboxMaxRetries,
		}, logger)
		if err := c.OutboxProcessor.ProcessOnce(ctx); err != nil {
			logger.Warn("outbox drain failed", "error", err)
		}
		c.closers = append(c.closers, func() {
			if err := c.OutboxProcessor.ProcessOnce(context.Background()); err != nil {
				logger.Warn("outbox drain failed", "error", err)
			}
		})
		logger.Info("storage initialized", "driver", "sqlite", "path", cfg.SQLitePath)

	default:
		subscriptions = billingPersistence.NewMemorySubscriptionRepository()
		invoices = billingPersistence.NewMemoryInvoiceRepository()
		planRepo = plansPersistence.NewMemoryPlanRepository()
		assignments = plansPersistence.NewMemoryAssignmentRepository()

		bus.RegisterConsumer(auditInfra.NewBillingEventConsumer(auditRepo))
		publisher = billingAudit.NewBreakerPublisher(billingAudit.NewEventBusPublisher(bus), logger)
		logger.Info("storage initialized", "driver", "memory")
	}

	if c.AuditService == nil {
		c.AuditService = auditApp.NewService(auditRepo)
	}

	var metrics billingApp.ReconcileMetrics
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		c.closers = append(c.closers, func() { _ = client.Close() })
		metrics = billingMetrics.NewRedisReconcileMetrics(client, logger)
	} else {
		metrics = billingMetrics.NewMemoryReconcileMetrics()
	}

	c.Subscriptions = subscriptions
	c.Invoices = invoices
	c.Engine = billingApp.NewEngine(subscriptions, invoices, publisher, metrics, logger)

	c.PlanRepository = planRepo
	c.AssignmentRepository = assignments
	c.AssignPlanHandler = plansApp.NewAssignPlanHandler(planRepo, assignments)
	c.ChangePlanHandler = plansApp.NewChangePlanHandler(planRepo, assignments)
	c.EvaluateAccessHandler = plansApp.NewEvaluateAccessHandler(c.Engine, assignments)

	return c, nil
}

// Close releases all container resources in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
