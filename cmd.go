package main

import (
	"badgebot/internal/adapters/discord"
	"badgebot/internal/adapters/health"
	"badgebot/internal/adapters/probe"
	"badgebot/internal/adapters/process"
	"badgebot/internal/config"
	"badgebot/internal/core/domain/command"
	"badgebot/internal/core/port"
	"badgebot/internal/core/service"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile       string
	logLevelOverride string
)

func newRootCmd(exit func(int)) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "badgebot",
		Short:         "Discord bot that helps developers earn the Active Developer badge",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), exit)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a TOML config file (default ./config.toml)")
	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(newCommandsCmd())

	return cmd
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the slash commands the bot publishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := command.NewDefaultRegistry(discord.NewSession(0))
			if err != nil {
				return err
			}

			for _, d := range registry.Descriptors() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", d.Usage(), d.Description)
			}

			return nil
		},
	}
}

// run only returns once the bot has stopped. Fatal startup failures end the
// process through the recovery path instead.
func run(ctx context.Context, exit func(int)) error {
	setupLogging(config.LogConfig{}, logLevelOverride)
	log.Info().Msg("starting badgebot...")

	cfg, err := config.Load(configFile)
	if err != nil {
		service.NewRecovery(nil, exit).Recover(&service.StartupError{Stage: service.StageConfig, Err: err})
		return nil
	}

	setupLogging(cfg.Log, logLevelOverride)

	var terminator port.Terminator
	if cfg.Probe.Enabled {
		terminator = process.NewTerminator(cfg.Recovery.PID)
	}
	recovery := service.NewRecovery(terminator, exit)

	var opts []service.BotOption
	if recovery.CanRestart() {
		opts = append(opts, service.WithProber(probe.NewHTTPProber(cfg.Probe.URL, cfg.Probe.Timeout)))
	}

	if cfg.Health.Enabled {
		go func() {
			if err := health.NewServer(cfg.Health.Port).Run(ctx); err != nil {
				log.Error().Err(err).Msg("health server stopped")
			}
		}()
	}

	session := discord.NewSession(cfg.Handler.Buffer)

	registry, err := command.NewDefaultRegistry(session)
	if err != nil {
		return fmt.Errorf("failed initializing command registry: %w", err)
	}

	bot := service.NewBot(
		session,
		registry,
		service.NewPublisher(session),
		service.NewDispatcher(registry, session, cfg.Handler.Timeout),
		opts...,
	)

	if err := bot.Run(ctx, cfg.Token); err != nil {
		recovery.Recover(err)
		return nil
	}

	log.Info().Msg("badgebot stopped")

	return nil
}

func setupLogging(cfg config.LogConfig, override string) {
	level := cfg.Level
	if override != "" {
		level = override
	}

	var logLevel zerolog.Level

	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
