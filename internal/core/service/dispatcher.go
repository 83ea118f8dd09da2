package service

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher routes each interaction to the command matching its name and sends
// exactly one reply per interaction.
type Dispatcher struct {
	commands port.CommandRegistry
	replier  port.Replier
	timeout  time.Duration
}

func NewDispatcher(commands port.CommandRegistry, replier port.Replier, timeout time.Duration) *Dispatcher {
	return &Dispatcher{commands: commands, replier: replier, timeout: timeout}
}

// Dispatch builds the reply for an interaction. It never fails: unknown commands
// get the generic fallback and command errors or panics get the error reply.
func (d *Dispatcher) Dispatch(ctx context.Context, interaction *domain.Interaction) domain.ReplyPayload {
	reply, _ := d.dispatch(ctx, interaction)
	return reply
}

func (d *Dispatcher) dispatch(ctx context.Context, interaction *domain.Interaction) (reply domain.ReplyPayload, outcome string) {
	l := loggerFor(ctx, interaction)

	cmd, err := d.commands.Get(interaction.CommandName)
	if err != nil {
		l.Warn().Err(err).Msg("no command for interaction, sending fallback")
		return domain.TextReply(domain.FallbackReply), outcomeFallback
	}

	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("command panicked")
			reply, outcome = domain.TextReply(domain.ErrorReply), outcomeFallback
		}
	}()

	reply, err = cmd.Respond(ctx, interaction)
	if err != nil {
		l.Error().Err(err).Msg("command failed")
		return domain.TextReply(domain.ErrorReply), outcomeFallback
	}

	if reply.Embed == nil && reply.Content == "" {
		l.Error().Msg("command returned an empty reply")
		return domain.TextReply(domain.ErrorReply), outcomeFallback
	}

	return reply, outcomeReplied
}

// Handle dispatches one interaction and sends its reply.
func (d *Dispatcher) Handle(ctx context.Context, interaction *domain.Interaction) error {
	start := time.Now()

	traceID, err := uuid.NewV4()
	if err == nil {
		ctx = log.With().Str("traceId", traceID.String()).Logger().WithContext(ctx)
	}

	l := loggerFor(ctx, interaction)
	l.Info().Msg("handling interaction")

	// the deadline bounds the command only; the reply still goes out after it
	dctx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	reply, outcome := d.dispatch(dctx, interaction)

	err = d.replier.Reply(ctx, interaction, reply)
	if err != nil {
		outcome = outcomeFailed
		err = fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	command := metricCommand(d.commands, interaction.CommandName)
	interactionsTotal.WithLabelValues(command, outcome).Inc()
	dispatchDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())

	return err
}

// Run consumes the session's interactions one at a time, in arrival order, until
// the stream is closed or ctx is done. The session must already be ready.
func (d *Dispatcher) Run(ctx context.Context, session port.Session) error {
	if state := session.State(); state != domain.Ready {
		return fmt.Errorf("%w: state is %s", domain.ErrNotReady, state)
	}

	interactions := session.Interactions()
	log.Info().Msg("dispatcher listening")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("dispatcher stopped")
			return ctx.Err()
		case interaction, ok := <-interactions:
			if !ok {
				log.Info().Msg("interaction stream closed, dispatcher stopped")
				return nil
			}

			if err := d.Handle(ctx, &interaction); err != nil && !errors.Is(err, context.Canceled) {
				loggerFor(ctx, &interaction).Error().Err(err).Msg("failed to reply to interaction")
			}
		}
	}
}

func loggerFor(ctx context.Context, interaction *domain.Interaction) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		global := log.Logger
		l = &global
	}

	scoped := l.With().
		Str("interactionId", interaction.ID).
		Str("command", interaction.CommandName).
		Str("guildId", interaction.GuildID).
		Logger()

	return &scoped
}

// metricCommand keeps label cardinality bounded to registered names.
func metricCommand(commands port.CommandRegistry, name string) string {
	if _, err := commands.Get(name); err != nil {
		return "unknown"
	}

	return name
}
