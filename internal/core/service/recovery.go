package service

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"errors"

	"github.com/rs/zerolog/log"
)

const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitUnreachable = 3
	ExitConnect     = 4
	ExitPublish     = 5
	ExitRestart     = 6
)

// ExitCode maps a fatal error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, domain.ErrRestartRequested) {
		return ExitRestart
	}

	var startupErr *StartupError
	if errors.As(err, &startupErr) {
		switch startupErr.Stage {
		case StageConfig:
			return ExitConfig
		case StageProbe:
			return ExitUnreachable
		case StageConnect:
			return ExitConnect
		case StagePublish:
			return ExitPublish
		}
	}

	return ExitFailure
}

// Recovery terminates the process after a fatal startup condition. A rate
// limited node is killed hard so the supervisor moves the workload elsewhere;
// everything else exits with a status naming the failed stage.
type Recovery struct {
	terminator port.Terminator
	exit       func(int)
}

func NewRecovery(terminator port.Terminator, exit func(int)) *Recovery {
	return &Recovery{terminator: terminator, exit: exit}
}

// CanRestart reports whether a forced restart is available on this host.
func (r *Recovery) CanRestart() bool {
	return r.terminator != nil
}

func (r *Recovery) Recover(err error) {
	if err == nil {
		return
	}

	code := ExitCode(err)

	if errors.Is(err, domain.ErrRestartRequested) {
		log.Warn().Msg("rate limit detected on this node, restarting")

		if r.terminator == nil {
			log.Error().Msg("no way to force a restart on this host")
		} else if kerr := r.terminator.ForceRestart(); kerr != nil {
			log.Error().Err(kerr).Msg("forced restart failed")
		}

		// only reached if the kill did not take this process down with it
		r.exit(code)
		return
	}

	log.Error().Err(err).Int("exitCode", code).Msg("failed to start bot")
	r.exit(code)
}
