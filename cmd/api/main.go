package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/httplog/v3"

	"github.com/venueops/timecard-recon-go/internal/config"
	appHTTP "github.com/venueops/timecard-recon-go/internal/handler/http"
	"github.com/venueops/timecard-recon-go/internal/pkg/cron"
	"github.com/venueops/timecard-recon-go/internal/pkg/database"
	"github.com/venueops/timecard-recon-go/internal/pkg/hris"
	"github.com/venueops/timecard-recon-go/internal/pkg/jwt"
	"github.com/venueops/timecard-recon-go/internal/pkg/pos"
	reportRender "github.com/venueops/timecard-recon-go/internal/pkg/report"
	"github.com/venueops/timecard-recon-go/internal/pkg/slack"
	"github.com/venueops/timecard-recon-go/internal/pkg/storage"
	"github.com/venueops/timecard-recon-go/internal/pkg/vault"
	"github.com/venueops/timecard-recon-go/internal/repository/postgresql"
	reconService "github.com/venueops/timecard-recon-go/internal/service/recon"
	reportService "github.com/venueops/timecard-recon-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecard-recon"),
		slog.String("env", cfg.Environment.Name),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	venueDirectory := postgresql.NewVenueDirectory(db)
	runRepo := postgresql.NewRunRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	vaultClient, err := vault.NewClient(cfg.Vault, logger)
	if err != nil {
		log.Fatal("Failed to initialize vault client: ", err)
	}

	posClient := pos.NewClient(cfg.POS, vaultClient)
	hrisClient := hris.NewClient(cfg.HRIS, vaultClient, venueDirectory)

	renderer, err := reportRender.NewRenderer()
	if err != nil {
		log.Fatal("Failed to initialize report renderer: ", err)
	}
	notifier := slack.NewClient(cfg.Slack.WebhookURL, cfg.Slack.Channel, logger)
	publisher := reportService.NewPublisher(renderer, storage.NewLocalStore(cfg.Report.OutputPath), notifier, logger)

	svc := reconService.NewReconciliationService(
		posClient,
		hrisClient,
		venueDirectory,
		runRepo,
		vaultClient,
		publisher,
		cfg.Recon,
		cfg.Environment.Name,
		logger,
	)

	scheduler := cron.NewScheduler()
	cron.NewReconJobs(svc, cfg.Recon.DefaultTimezone).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	reconHandler := appHTTP.NewReconHandler(svc)
	router := appHTTP.NewRouter(logger, jwtService, reconHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		logger.Info("server listening", slog.String("addr", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	_ = server.Close()
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
