// Command raffle draws the winners of one raffle and prints the filled
// report to stdout.
//
//	raffle [flags] <seed>
//
// The seed is a hexadecimal u64. Diagnostics go to stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/bridgetunes-raffle/internal/config"
	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/report"
	"github.com/ArowuTest/bridgetunes-raffle/internal/utils"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitParse      = 2
	exitExhausted  = 3
	exitInvariant  = 4
	exitUnverified = 5
)

var errNoParticipantsFile = errors.New("no participants file given")

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("raffle", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.String("config", "", "path to a config file")
	flags.String("participants", "", "participant CSV file")
	flags.String("template", "", "report template file (default: built-in)")
	flags.String("algorithm", "", "shuffle algorithm: chacha8, chacha12 or chacha20")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("manifest", "", "write a YAML audit manifest to this file")
	flags.String("verify", "", "re-run the draw recorded in this manifest and compare")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: raffle [flags] <seed>")
		flags.PrintDefaults()
	}
	return flags
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitParse
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitParse
	}
	logger, err := utils.NewLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitParse
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		return exitParse
	}

	verifyPath, _ := flags.GetString("verify")
	if verifyPath != "" {
		return verify(cfg, verifyPath, logger, stdout)
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return exitParse
	}
	seed, err := raffle.ParseSeed(flags.Arg(0))
	if err != nil {
		logger.Error("Invalid seed", "error", err)
		return exitParse
	}

	participants, err := loadParticipants(cfg)
	if err != nil {
		logger.Error("Failed to load participants", "error", err)
		return exitCode(err)
	}
	template, err := cfg.Raffle.Template()
	if err != nil {
		logger.Error("Failed to load template", "error", err)
		return exitParse
	}

	alg, _ := prng.ParseAlgorithm(cfg.Raffle.Algorithm)
	tiers := cfg.Raffle.Tiers()
	layout := cfg.Raffle.Layout()
	for _, w := range report.Count(template, tiers, layout).Mismatches(tiers) {
		logger.Warn("Template does not match prize table", "detail", w)
	}

	logger.Info("Running draw",
		"seed", raffle.FormatSeed(seed),
		"algorithm", alg,
		"participants", len(participants))

	res, err := raffle.Run(participants, raffle.Options{Seed: seed, Algorithm: alg, Tiers: tiers})
	if err != nil {
		logger.Error("Draw failed", "error", err)
		return exitCode(err)
	}
	logger.Info("Draw completed",
		"tickets", res.Stats.TotalTickets,
		"drawn", res.Stats.Drawn,
		"burned", res.Stats.Burned,
		"skipped", res.Stats.Skipped)

	if path, _ := flags.GetString("manifest"); path != "" {
		m := raffle.NewManifest(seed, string(alg), raffle.ParticipantDigest(participants), res)
		if err := writeManifest(path, m); err != nil {
			logger.Error("Failed to write manifest", "error", err)
			return exitError
		}
		logger.Info("Manifest written", "path", path)
	}

	if _, err := io.WriteString(stdout, report.Fill(template, res, layout)); err != nil {
		return exitError
	}
	return exitOK
}

// verify re-draws the manifest's seed and algorithm over the configured
// participants.
func verify(cfg *config.Config, path string, logger *slog.Logger, stdout io.Writer) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open manifest", "error", err)
		return exitError
	}
	defer f.Close()
	m, err := raffle.ReadManifest(f)
	if err != nil {
		logger.Error("Failed to read manifest", "error", err)
		return exitParse
	}
	seed, err := raffle.ParseSeed(m.Seed)
	if err != nil {
		logger.Error("Invalid seed in manifest", "error", err)
		return exitParse
	}
	alg, err := prng.ParseAlgorithm(m.Algorithm)
	if err != nil {
		logger.Error("Invalid algorithm in manifest", "error", err)
		return exitParse
	}

	participants, err := loadParticipants(cfg)
	if err != nil {
		logger.Error("Failed to load participants", "error", err)
		return exitCode(err)
	}

	tiers := raffle.Tiers{GrandPrizes: len(m.GrandPrize), Consolation: len(m.Consolation)}
	for _, g := range m.Vouchers {
		tiers.VoucherGroups = append(tiers.VoucherGroups, raffle.VoucherGroupSpec{Name: g.Name, Count: len(g.Winners)})
	}
	res, err := raffle.Run(participants, raffle.Options{Seed: seed, Algorithm: alg, Tiers: tiers})
	if err != nil {
		logger.Error("Draw failed", "error", err)
		return exitCode(err)
	}

	mismatches := m.Mismatches(raffle.ParticipantDigest(participants), res)
	for _, mm := range mismatches {
		fmt.Fprintln(stdout, "MISMATCH:", mm)
	}
	if len(mismatches) > 0 {
		return exitUnverified
	}
	fmt.Fprintln(stdout, "verified", m.Seed, m.Algorithm)
	return exitOK
}

func loadParticipants(cfg *config.Config) ([]models.Participant, error) {
	if cfg.Raffle.ParticipantsFile == "" {
		return nil, errNoParticipantsFile
	}
	res, err := utils.NewParticipantCSVImporter().ImportFile(cfg.Raffle.ParticipantsFile)
	if err != nil {
		return nil, err
	}
	return res.Participants, nil
}

func writeManifest(path string, m *raffle.Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, raffle.ErrPoolExhausted):
		return exitExhausted
	case errors.Is(err, raffle.ErrInvariantViolation):
		return exitInvariant
	case errors.Is(err, errNoParticipantsFile),
		errors.Is(err, raffle.ErrInvalidSeed),
		errors.Is(err, raffle.ErrInvalidTiers),
		errors.Is(err, prng.ErrUnknownAlgorithm),
		errors.Is(err, utils.ErrMissingColumn),
		errors.Is(err, utils.ErrMalformedRow),
		errors.Is(err, utils.ErrInvalidBool),
		errors.Is(err, utils.ErrDuplicateParticipant):
		return exitParse
	default:
		return exitError
	}
}
