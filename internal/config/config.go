package config

import (
	"badgebot/internal/adapters/probe"
	"badgebot/internal/adapters/process"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrMissingToken    = errors.New("DISCORD_BOT_TOKEN is required")
	ErrInvalidDuration = errors.New("invalid duration")
)

type Config struct {
	Token    string
	Health   HealthConfig
	Probe    ProbeConfig
	Recovery RecoveryConfig
	Handler  HandlerConfig
	Log      LogConfig
}

type HealthConfig struct {
	Enabled bool
	Port    int
}

type ProbeConfig struct {
	Enabled bool
	URL     string
	Timeout time.Duration
}

type RecoveryConfig struct {
	PID int
}

type HandlerConfig struct {
	Timeout time.Duration
	Buffer  int
}

type LogConfig struct {
	Level  string
	Pretty bool
}

var envKeys = map[string]string{
	"discord.token":   "DISCORD_BOT_TOKEN",
	"health.enabled":  "HEALTH_ENABLED",
	"health.port":     "PORT",
	"probe.enabled":   "PROBE_ENABLED",
	"probe.url":       "PROBE_URL",
	"probe.timeout":   "PROBE_TIMEOUT",
	"recovery.pid":    "RECOVERY_PID",
	"handler.timeout": "HANDLER_TIMEOUT",
	"handler.buffer":  "HANDLER_BUFFER",
	"log.level":       "LOG_LEVEL",
	"log.pretty":      "LOG_PRETTY",
}

// Load reads an optional .env file, an optional TOML config and the process
// environment, in increasing order of precedence. An explicitly named config
// file must exist.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetDefault("health.enabled", true)
	v.SetDefault("health.port", 3000)
	v.SetDefault("probe.url", probe.DefaultURL)
	v.SetDefault("probe.timeout", "10s")
	v.SetDefault("recovery.pid", process.HostPID)
	v.SetDefault("handler.timeout", "10s")
	v.SetDefault("handler.buffer", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using environment")
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("read config file")
	}

	cfg := &Config{
		Token: strings.TrimSpace(v.GetString("discord.token")),
		Health: HealthConfig{
			Enabled: v.GetBool("health.enabled"),
			Port:    v.GetInt("health.port"),
		},
		Probe: ProbeConfig{
			Enabled: onReplit(),
			URL:     v.GetString("probe.url"),
			Timeout: v.GetDuration("probe.timeout"),
		},
		Recovery: RecoveryConfig{
			PID: v.GetInt("recovery.pid"),
		},
		Handler: HandlerConfig{
			Timeout: v.GetDuration("handler.timeout"),
			Buffer:  v.GetInt("handler.buffer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
	}

	if v.IsSet("probe.enabled") {
		cfg.Probe.Enabled = v.GetBool("probe.enabled")
	}

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	if cfg.Handler.Timeout <= 0 {
		return nil, fmt.Errorf("%w: handler.timeout %q", ErrInvalidDuration, v.GetString("handler.timeout"))
	}

	if cfg.Probe.Timeout <= 0 {
		return nil, fmt.Errorf("%w: probe.timeout %q", ErrInvalidDuration, v.GetString("probe.timeout"))
	}

	if cfg.Handler.Buffer < 0 {
		cfg.Handler.Buffer = 0
	}

	return cfg, nil
}

// onReplit reports whether the process runs on a Replit node, where a blocked
// node has to be escaped by restarting the container.
func onReplit() bool {
	return os.Getenv("REPLIT_DEPLOYMENT") != "" || os.Getenv("REPL_ID") != ""
}
