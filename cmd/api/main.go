package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk/internal/api/http"
	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/mail"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/sla"
	"github.com/spec-kit/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	evaluator, err := buildEvaluator(cfg, logger)
	if err != nil {
		logger.Fatal("invalid schedule configuration", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	timeEntryRepo := repository.NewTimeEntryRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	mailer, err := mail.NewMailer(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	authService := service.NewAuthService(*cfg, userRepo, redis)
	if admin, err := authService.EnsureSeedAdmin(ctx, cfg.Seed); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	} else if admin != nil {
		logger.Info("seed admin ready", zap.String("email", admin.Email))
	}
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		CommentRepo:    commentRepo,
		AttachmentRepo: attachmentRepo,
		TimeEntryRepo:  timeEntryRepo,
		EventRepo:      eventRepo,
		CategoryRepo:   categoryRepo,
		UserRepo:       userRepo,
		Evaluator:      evaluator,
		Dispatcher:     dispatcher,
	})
	dashboardService := service.NewDashboardService(ticketRepo, timeEntryRepo, evaluator, redis)
	reportService := service.NewReportService(ticketRepo, timeEntryRepo, evaluator)
	notificationService := service.NewNotificationService(dispatcher, ticketRepo, userRepo, mailer, logger, cfg.SMTP)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService, userRepo),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Reports:        handlers.NewReportsHandler(reportService),
		Lookups:        handlers.NewLookupsHandler(categoryRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildEvaluator(cfg *config.Config, logger *zap.Logger) (*sla.Evaluator, error) {
	location := sla.ResolveLocation(cfg.Schedule.TimeZone)
	if location.String() != cfg.Schedule.TimeZone {
		logger.Warn("schedule time zone unavailable, using fallback",
			zap.String("configured", cfg.Schedule.TimeZone),
			zap.String("using", location.String()))
	}
	schedule, err := sla.NewWorkSchedule(
		time.Duration(cfg.Schedule.StartMinutes)*time.Minute,
		time.Duration(cfg.Schedule.EndMinutes)*time.Minute,
		cfg.Schedule.WorkDays,
		location,
	)
	if err != nil {
		return nil, err
	}
	thresholds := sla.Thresholds{
		NoneHours:     cfg.SLA.NoneHours,
		LowHours:      cfg.SLA.LowHours,
		MediumHours:   cfg.SLA.MediumHours,
		HighHours:     cfg.SLA.HighHours,
		CriticalHours: cfg.SLA.CriticalHours,
	}
	return sla.NewEvaluator(sla.NewCalculator(schedule), thresholds), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
