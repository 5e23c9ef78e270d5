package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/report"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Raffle   RaffleConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AdminConfig seeds the first admin account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// VoucherGroupConfig is one named voucher share.
type VoucherGroupConfig struct {
	Name  string
	Count int
}

// RaffleConfig holds the draw inputs, prize table and report layout.
type RaffleConfig struct {
	ParticipantsFile string
	TemplateFile     string
	Algorithm        string
	GrandPrizes      int
	Consolation      int
	VoucherGroups    []VoucherGroupConfig
	Tokens           TokenConfig
}

// TokenConfig controls placeholder names and id rendering in reports.
type TokenConfig struct {
	GrandPrize    string
	Consolation   string
	VoucherPrefix string
	VoucherSuffix string
	IDPrefix      string
	ListPrefix    string
	ListSeparator string
}

// flagKeys maps command line flags to configuration keys. Flags missing
// from the set are skipped.
var flagKeys = map[string]string{
	"participants": "Raffle.ParticipantsFile",
	"template":     "Raffle.TemplateFile",
	"algorithm":    "Raffle.Algorithm",
	"log-level":    "LogLevel",
	"port":         "Server.Port",
}

// Load loads configuration from environment variables, config files and,
// when flags is non-nil, command line flags. A --config flag names an
// explicit config file.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "bridgetunes-raffle")
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Admin.Email", "")
	v.SetDefault("Admin.PasswordHash", "")
	v.SetDefault("LogLevel", "info")

	tiers := raffle.DefaultTiers()
	layout := report.DefaultLayout()
	groups := make([]map[string]interface{}, 0, len(tiers.VoucherGroups))
	for _, g := range tiers.VoucherGroups {
		groups = append(groups, map[string]interface{}{"Name": g.Name, "Count": g.Count})
	}
	v.SetDefault("Raffle.ParticipantsFile", "")
	v.SetDefault("Raffle.TemplateFile", "")
	v.SetDefault("Raffle.Algorithm", string(prng.DefaultAlgorithm))
	v.SetDefault("Raffle.GrandPrizes", tiers.GrandPrizes)
	v.SetDefault("Raffle.Consolation", tiers.Consolation)
	v.SetDefault("Raffle.VoucherGroups", groups)
	v.SetDefault("Raffle.Tokens.GrandPrize", layout.GrandPrizeToken)
	v.SetDefault("Raffle.Tokens.Consolation", layout.ConsolationToken)
	v.SetDefault("Raffle.Tokens.VoucherPrefix", layout.VoucherTokenPrefix)
	v.SetDefault("Raffle.Tokens.VoucherSuffix", layout.VoucherTokenSuffix)
	v.SetDefault("Raffle.Tokens.IDPrefix", layout.IDPrefix)
	v.SetDefault("Raffle.Tokens.ListPrefix", layout.ListPrefix)
	v.SetDefault("Raffle.Tokens.ListSeparator", layout.ListSeparator)
}

// Tiers converts the prize table.
func (r RaffleConfig) Tiers() raffle.Tiers {
	t := raffle.Tiers{GrandPrizes: r.GrandPrizes, Consolation: r.Consolation}
	for _, g := range r.VoucherGroups {
		t.VoucherGroups = append(t.VoucherGroups, raffle.VoucherGroupSpec{Name: g.Name, Count: g.Count})
	}
	return t
}

// Layout converts the token settings.
func (r RaffleConfig) Layout() report.Layout {
	return report.Layout{
		GrandPrizeToken:    r.Tokens.GrandPrize,
		ConsolationToken:   r.Tokens.Consolation,
		VoucherTokenPrefix: r.Tokens.VoucherPrefix,
		VoucherTokenSuffix: r.Tokens.VoucherSuffix,
		IDPrefix:           r.Tokens.IDPrefix,
		ListPrefix:         r.Tokens.ListPrefix,
		ListSeparator:      r.Tokens.ListSeparator,
	}
}

// Template returns the report template named by TemplateFile, or the
// embedded default when no file is configured.
func (r RaffleConfig) Template() (string, error) {
	if r.TemplateFile == "" {
		return report.DefaultTemplate(), nil
	}
	b, err := os.ReadFile(r.TemplateFile)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(b), nil
}

// Validate checks the settings every entry point needs.
func (c *Config) Validate() error {
	if _, err := prng.ParseAlgorithm(c.Raffle.Algorithm); err != nil {
		return err
	}
	if err := c.Raffle.Tiers().Validate(); err != nil {
		return err
	}
	if c.Raffle.Tokens.GrandPrize == "" || c.Raffle.Tokens.Consolation == "" {
		return errors.New("report tokens must not be empty")
	}
	if c.Raffle.Tokens.GrandPrize == c.Raffle.Tokens.Consolation {
		return fmt.Errorf("grand prize and consolation share the token %s", c.Raffle.Tokens.GrandPrize)
	}
	layout := c.Raffle.Layout()
	for _, g := range c.Raffle.VoucherGroups {
		token := layout.VoucherToken(g.Name)
		if token == layout.GrandPrizeToken || token == layout.ConsolationToken {
			return fmt.Errorf("voucher group %s: token %s is already used for a single winner", g.Name, token)
		}
	}
	return nil
}

// ValidateServer adds the checks only the API needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		return errors.New("JWT expiry must be positive")
	}
	if c.MongoDB.URI == "" || c.MongoDB.Database == "" {
		return errors.New("MongoDB URI and database are required")
	}
	return nil
}
