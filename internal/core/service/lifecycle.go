package service

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Stage string

const (
	StageConfig  Stage = "config"
	StageProbe   Stage = "probe"
	StageConnect Stage = "connect"
	StagePublish Stage = "publish"
)

// StartupError is a fatal failure of one startup stage. Nothing retries it.
type StartupError struct {
	Stage Stage
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed during %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

var ErrNodeUnreachable = errors.New("platform unreachable from this node")

// Bot runs the startup pipeline (probe, connect, publish) and then hands the
// ready session to the dispatcher.
type Bot struct {
	prober     port.Prober
	session    port.Session
	commands   port.CommandRegistry
	publisher  *Publisher
	dispatcher *Dispatcher
}

type BotOption func(*Bot)

// WithProber enables the node health check. Only pass one when a forced
// restart is actually possible on this host.
func WithProber(prober port.Prober) BotOption {
	return func(b *Bot) {
		b.prober = prober
	}
}

func NewBot(session port.Session, commands port.CommandRegistry, publisher *Publisher, dispatcher *Dispatcher,
	opts ...BotOption) *Bot {
	b := &Bot{
		session:    session,
		commands:   commands,
		publisher:  publisher,
		dispatcher: dispatcher,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Start returns domain.ErrRestartRequested when the node is rate limited, in
// which case no login is attempted.
func (b *Bot) Start(ctx context.Context, token string) (domain.Identity, error) {
	if b.prober != nil {
		log.Info().Msg("testing platform connectivity")

		switch health := b.prober.Probe(ctx); health {
		case domain.Healthy:
			log.Info().Msg("node is healthy")
		case domain.RateLimited:
			return domain.Identity{}, domain.ErrRestartRequested
		default:
			return domain.Identity{}, &StartupError{Stage: StageProbe, Err: fmt.Errorf("%w: %s", ErrNodeUnreachable, health)}
		}
	}

	log.Info().Msg("logging in")
	sessionState.Set(float64(domain.Authenticating))

	identity, err := b.session.Connect(ctx, token)
	sessionState.Set(float64(b.session.State()))
	if err != nil {
		return domain.Identity{}, &StartupError{Stage: StageConnect, Err: err}
	}

	_, err = b.publisher.Publish(ctx, identity.ApplicationID, b.commands.Descriptors())
	if err != nil {
		if cerr := b.session.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close session after publish failure")
		}
		sessionState.Set(float64(domain.Disconnected))

		return domain.Identity{}, &StartupError{Stage: StagePublish, Err: err}
	}

	log.Info().Str("tag", identity.Tag).Msg("bot is now online and ready")

	return identity, nil
}

// Run starts the bot and dispatches interactions until ctx is done. A shutdown
// requested while still starting up is not reported as a failure.
func (b *Bot) Run(ctx context.Context, token string) error {
	if _, err := b.Start(ctx, token); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	defer func() {
		if err := b.session.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session")
		}
		sessionState.Set(float64(domain.Disconnected))
	}()

	err := b.dispatcher.Run(ctx, b.session)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
