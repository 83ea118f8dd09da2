package process

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// HostPID is the process the hosting platform restarts the container around.
const HostPID = 1

// Terminator kills a process so the host schedules the bot on a fresh node.
type Terminator struct {
	pid int
}

func NewTerminator(pid int) *Terminator {
	return &Terminator{pid: pid}
}

func (t *Terminator) ForceRestart() error {
	log.Warn().Int("pid", t.pid).Msg("forcing restart")

	p, err := os.FindProcess(t.pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", t.pid, err)
	}

	if err := p.Kill(); err != nil {
		return fmt.Errorf("kill process %d: %w", t.pid, err)
	}

	return nil
}
