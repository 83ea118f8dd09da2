package port

import (
	"badgebot/internal/core/domain"
	"context"
	"time"
)

type Session interface {
	// Connect authenticates with the platform and blocks until the session is ready.
	Connect(ctx context.Context, token string) (domain.Identity, error)
	// State reports the current lifecycle state.
	State() domain.SessionState
	// Interactions delivers inbound command interactions in arrival order.
	Interactions() <-chan domain.Interaction
	Close() error
}

type LatencySource interface {
	// Latency returns the transport-level round-trip estimate.
	Latency() time.Duration
}

type Directory interface {
	LatencySource
	// Guild resolves a server by ID.
	Guild(ctx context.Context, guildID string) (*domain.Guild, error)
	// Member resolves a user's membership of a server, returning domain.ErrNotFound when absent.
	Member(ctx context.Context, guildID, userID string) (*domain.Member, error)
}

type CommandCatalog interface {
	// Overwrite replaces the application's whole command set and returns how many commands
	// are registered afterwards.
	Overwrite(ctx context.Context, applicationID string, commands []domain.CommandDescriptor) (int, error)
}

type Prober interface {
	// Probe checks whether the current egress node is in good standing with the platform.
	Probe(ctx context.Context) domain.NodeHealth
}

type Terminator interface {
	// ForceRestart kills the host process so the supervisor reschedules it on another node.
	ForceRestart() error
}
