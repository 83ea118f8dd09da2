package service

import (
	"badgebot/internal/core/domain"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "restart", err: domain.ErrRestartRequested, want: ExitRestart},
		{name: "wrapped restart", err: fmt.Errorf("start: %w", domain.ErrRestartRequested), want: ExitRestart},
		{name: "config", err: &StartupError{Stage: StageConfig, Err: errors.New("missing")}, want: ExitConfig},
		{name: "probe", err: &StartupError{Stage: StageProbe, Err: ErrNodeUnreachable}, want: ExitUnreachable},
		{name: "connect", err: &StartupError{Stage: StageConnect, Err: errors.New("4004")}, want: ExitConnect},
		{name: "publish", err: &StartupError{Stage: StagePublish, Err: errors.New("400")}, want: ExitPublish},
		{name: "other", err: errors.New("unexpected"), want: ExitFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestRecovery_Recover(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		hasTerminator bool
		killErr       error
		wantKill      bool
		wantExit      []int
	}{
		{
			name:     "nil error does nothing",
			err:      nil,
			wantExit: nil,
		},
		{
			name:          "rate limited forces restart",
			err:           domain.ErrRestartRequested,
			hasTerminator: true,
			wantKill:      true,
			wantExit:      []int{ExitRestart},
		},
		{
			name:          "failed kill still exits",
			err:           domain.ErrRestartRequested,
			hasTerminator: true,
			killErr:       errors.New("operation not permitted"),
			wantKill:      true,
			wantExit:      []int{ExitRestart},
		},
		{
			name:     "rate limited without terminator",
			err:      domain.ErrRestartRequested,
			wantExit: []int{ExitRestart},
		},
		{
			name:          "fatal startup error never kills",
			err:           &StartupError{Stage: StageConnect, Err: errors.New("invalid token")},
			hasTerminator: true,
			wantExit:      []int{ExitConnect},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var exits []int
			exit := func(code int) { exits = append(exits, code) }

			terminator := new(MockTerminator)
			var r *Recovery
			if tc.hasTerminator {
				terminator.On("ForceRestart").Return(tc.killErr).Maybe()
				r = NewRecovery(terminator, exit)
			} else {
				r = NewRecovery(nil, exit)
			}

			r.Recover(tc.err)

			assert.Equal(t, tc.wantExit, exits)
			if tc.wantKill {
				terminator.AssertCalled(t, "ForceRestart")
			} else {
				terminator.AssertNotCalled(t, "ForceRestart")
			}
			assert.Equal(t, tc.hasTerminator, r.CanRestart())
		})
	}
}
