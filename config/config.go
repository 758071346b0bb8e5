// Package config provides Viper-based configuration loading for the bot.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/nstehr/rampart/strategy"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "text" or "json".
	Format string `mapstructure:"format"`
}

// StrategyConfig holds the layout location and the strategy's numeric knobs.
type StrategyConfig struct {
	// LayoutFile is a YAML layout; empty selects the compiled-in one.
	LayoutFile string          `mapstructure:"layout_file"`
	Tuning     strategy.Tuning `mapstructure:",squash"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Strategy StrategyConfig `mapstructure:"strategy"`
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStrategy(c.Strategy); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [text, json], got %q", l.Format)
	}
	return nil
}

func validateStrategy(s StrategyConfig) error {
	var errs []string
	t := s.Tuning
	costs := map[string]float64{
		"turret":          t.Costs.Turret,
		"support":         t.Costs.Support,
		"turret_upgrade":  t.Costs.TurretUpgrade,
		"support_upgrade": t.Costs.SupportUpgrade,
	}
	for _, name := range []string{"turret", "support", "turret_upgrade", "support_upgrade"} {
		if costs[name] <= 0 {
			errs = append(errs, fmt.Sprintf("strategy.costs.%s must be > 0, got %v", name, costs[name]))
		}
	}
	if t.ExpansionThreshold < 0 {
		errs = append(errs, fmt.Sprintf("strategy.expansion_threshold must be >= 0, got %v", t.ExpansionThreshold))
	}
	if t.OffenseEvery < 1 {
		errs = append(errs, fmt.Sprintf("strategy.offense_every must be >= 1, got %d", t.OffenseEvery))
	}
	if t.SaturateCount < 1 {
		errs = append(errs, fmt.Sprintf("strategy.saturate_count must be >= 1, got %d", t.SaturateCount))
	}
	if t.Damage <= 0 {
		errs = append(errs, fmt.Sprintf("strategy.reference_damage must be > 0, got %v", t.Damage))
	}
	if t.PrimaryUnit == "" {
		errs = append(errs, "strategy.primary_unit must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}

	// Environment variable overrides with RAMPART_ prefix
	v.SetEnvPrefix("RAMPART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	d := strategy.DefaultTuning()
	v.SetDefault("strategy.layout_file", "")
	v.SetDefault("strategy.costs.turret", d.Costs.Turret)
	v.SetDefault("strategy.costs.support", d.Costs.Support)
	v.SetDefault("strategy.costs.turret_upgrade", d.Costs.TurretUpgrade)
	v.SetDefault("strategy.costs.support_upgrade", d.Costs.SupportUpgrade)
	v.SetDefault("strategy.expansion_threshold", d.ExpansionThreshold)
	v.SetDefault("strategy.expansion_gate", d.ExpansionGate)
	v.SetDefault("strategy.offense_gate", d.OffenseGate)
	v.SetDefault("strategy.offense_every", d.OffenseEvery)
	v.SetDefault("strategy.primary_unit", d.PrimaryUnit)
	v.SetDefault("strategy.saturate_count", d.SaturateCount)
	v.SetDefault("strategy.reference_damage", d.Damage)
}

// NewLogger builds the process logger. Output goes to w, which must not be
// the engine's command stream.
func NewLogger(l LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch l.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
