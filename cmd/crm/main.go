package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/uzeyirrr/yenicrm-sub000/internal/app"
	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/config"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"github.com/uzeyirrr/yenicrm-sub000/internal/notify"
	"github.com/uzeyirrr/yenicrm-sub000/internal/reconciler"
	"github.com/uzeyirrr/yenicrm-sub000/internal/repository"
	"github.com/uzeyirrr/yenicrm-sub000/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting CRM agent",
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.BackendURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := backend.NewClient(cfg.BackendURL, cfg.BackendIdentity, cfg.BackendPassword,
		logger, backend.WithBaseDelay(cfg.RetryBaseDelay))

	if err := client.Session().EnsureValid(ctx); err != nil {
		logger.Fatal("Backend authentication failed", zap.Error(err))
	}

	slotRepo := repository.NewSlotRepository(client)
	apptRepo := repository.NewAppointmentRepository(client)
	customerRepo := repository.NewCustomerRepository(client)
	companyRepo := repository.NewCompanyRepository(client)
	teamRepo := repository.NewTeamRepository(client)
	userRepo := repository.NewUserRepository(client)

	if me, err := userRepo.GetByID(ctx, client.Session().RecordID()); err != nil {
		logger.Warn("Could not load own user record", zap.Error(err))
	} else if me != nil {
		logger.Info("Running as agent",
			zap.String("name", me.Name),
			zap.String("team", me.TeamID),
			zap.Bool("admin", me.IsAdmin))
	}

	directory := service.NewDirectoryService(companyRepo, teamRepo, logger)
	if overview, err := directory.Overview(ctx); err != nil {
		logger.Warn("Could not load company directory", zap.Error(err))
	} else {
		for _, entry := range overview {
			logger.Info("Company registered",
				zap.String("company", entry.Company.Name),
				zap.Int("teams", len(entry.Teams)))
		}
	}

	var notifier service.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal("Telegram notifier setup failed", zap.Error(err))
		}
		notifier = tg
		logger.Info("Booking notifications enabled",
			zap.Int64("chat_id", cfg.TelegramChatID))
	}

	apptService := service.NewAppointmentService(apptRepo, customerRepo, notifier, logger)

	weekStart, weekEnd := model.WeekBounds(time.Now())
	rec := reconciler.New(slotRepo, apptRepo, reconciler.ClientFeed{Client: client},
		weekStart, weekEnd, logger,
		reconciler.WithDebounce(cfg.DebounceWindow, 4*cfg.DebounceWindow))

	reaper := app.NewReaper(apptRepo, apptService, cfg.ClaimTTL, cfg.ReaperInterval, logger)
	if err := reaper.Start(ctx); err != nil {
		logger.Fatal("Failed to start claim reaper", zap.Error(err))
	}
	defer reaper.Stop()

	if tg, ok := notifier.(*notify.TelegramNotifier); ok {
		report := app.NewWeekReport(rec, tg, cfg.WeekReportCron, logger)
		if err := report.Start(ctx); err != nil {
			logger.Fatal("Failed to start week report", zap.Error(err))
		}
		defer report.Stop()
	}

	if err := rec.Run(ctx); err != nil {
		logger.Error("Reconciler stopped with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
