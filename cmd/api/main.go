package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/bridgetunes-raffle/api/routes"
	"github.com/ArowuTest/bridgetunes-raffle/internal/config"
	"github.com/ArowuTest/bridgetunes-raffle/internal/handlers"
	"github.com/ArowuTest/bridgetunes-raffle/internal/metrics"
	mongorepo "github.com/ArowuTest/bridgetunes-raffle/internal/repositories/mongodb"
	"github.com/ArowuTest/bridgetunes-raffle/internal/services"
	"github.com/ArowuTest/bridgetunes-raffle/internal/utils"
	"github.com/ArowuTest/bridgetunes-raffle/pkg/jwt"
	"github.com/ArowuTest/bridgetunes-raffle/pkg/mongodb"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	flags := pflag.NewFlagSet("raffle-api", pflag.ExitOnError)
	flags.String("config", "", "path to a config file")
	flags.String("port", "", "HTTP listen port")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("template", "", "default report template file")
	flags.String("algorithm", "", "default shuffle algorithm")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	logger, err := utils.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	template, err := cfg.Raffle.Template()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	participantRepo := mongorepo.NewParticipantRepository(db)
	drawRepo := mongorepo.NewDrawRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)
	templateRepo := mongorepo.NewTemplateRepository(db)
	adminRepo := mongorepo.NewAdminUserRepository(db)

	settings := services.DrawSettings{
		Tiers:            cfg.Raffle.Tiers(),
		Layout:           cfg.Raffle.Layout(),
		DefaultAlgorithm: cfg.Raffle.Algorithm,
		DefaultTemplate:  template,
	}
	tokens := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	authService := services.NewAuthService(adminRepo, tokens)
	drawService := services.NewDrawService(drawRepo, winnerRepo, participantRepo, templateRepo, settings, m)
	participantService := services.NewParticipantService(participantRepo, m)
	templateService := services.NewTemplateService(templateRepo, settings)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.PasswordHash); err != nil {
		return err
	}
	if n, err := participantService.Count(ctx); err == nil {
		m.SetParticipants(int(n))
	}

	router := routes.SetupRouter(routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		DrawHandler:        handlers.NewDrawHandler(drawService),
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		TemplateHandler:    handlers.NewTemplateHandler(templateService),
		Tokens:             tokens,
		Metrics:            m,
		Gatherer:           reg,
		Database:           mongoClient,
		Logger:             logger,
		AllowedHosts:       cfg.Server.AllowedHosts,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("Server exiting")
	return nil
}
