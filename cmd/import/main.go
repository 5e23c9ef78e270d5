// Command import loads a participant CSV into MongoDB, replacing the
// stored participant set.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/bridgetunes-raffle/internal/config"
	"github.com/ArowuTest/bridgetunes-raffle/internal/metrics"
	mongorepo "github.com/ArowuTest/bridgetunes-raffle/internal/repositories/mongodb"
	"github.com/ArowuTest/bridgetunes-raffle/internal/services"
	"github.com/ArowuTest/bridgetunes-raffle/internal/utils"
	"github.com/ArowuTest/bridgetunes-raffle/pkg/mongodb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("Warning: .env file not found, using environment variables")
	}

	flags := pflag.NewFlagSet("raffle-import", pflag.ExitOnError)
	flags.String("config", "", "path to a config file")
	flags.String("participants", "", "participant CSV file")
	flags.String("log-level", "", "debug, info, warn or error")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		slog.Error("Invalid log level", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	path := cfg.Raffle.ParticipantsFile
	if flags.NArg() > 0 {
		path = flags.Arg(0)
	}
	if path == "" {
		slog.Error("CSV file path is required as --participants or an argument")
		os.Exit(2)
	}

	if err := importParticipants(cfg, path); err != nil {
		slog.Error("Failed to import participants", "error", err)
		os.Exit(1)
	}
}

func importParticipants(cfg *config.Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDB.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	svc := services.NewParticipantService(mongorepo.NewParticipantRepository(db), metrics.New(prometheus.NewRegistry()))
	summary, err := svc.Import(ctx, file)
	if err != nil {
		return err
	}
	slog.Info("Data imported successfully",
		"participants", summary.Participants,
		"tickets", summary.TotalTickets,
		"digest", summary.Digest)
	return nil
}
