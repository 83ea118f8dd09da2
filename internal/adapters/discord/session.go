package discord

import (
	"badgebot/internal/core/domain"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Client is the part of *discordgo.Session the bot relies on.
type Client interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	HeartbeatLatency() time.Duration
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// Dialer creates an unopened client and the state cache it fills.
type Dialer func(token string) (Client, *discordgo.State, error)

// Dial builds a gateway client with the intents the commands need. Events are
// handled synchronously so interactions are forwarded in arrival order.
func Dial(token string) (Client, *discordgo.State, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, nil, fmt.Errorf("create discord session: %w", err)
	}

	s.SyncEvents = true
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	return s, s.State, nil
}

// Session owns the single gateway connection of the process.
type Session struct {
	dial         Dialer
	state        atomic.Int32
	ready        chan domain.Identity
	interactions chan domain.Interaction
	done         chan struct{}

	mu       sync.RWMutex
	client   Client
	cache    *discordgo.State
	handlers []func()
	closed   bool
}

type Option func(*Session)

func WithDialer(dial Dialer) Option {
	return func(s *Session) {
		s.dial = dial
	}
}

func NewSession(buffer int, opts ...Option) *Session {
	s := &Session{
		dial:         Dial,
		ready:        make(chan domain.Identity, 1),
		interactions: make(chan domain.Interaction, buffer),
		done:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) State() domain.SessionState {
	return domain.SessionState(s.state.Load())
}

// Interactions is never closed; consumers stop through their context.
func (s *Session) Interactions() <-chan domain.Interaction {
	return s.interactions
}

// Connect may only be called once per process. A failed attempt leaves the
// session disconnected and is not retried.
func (s *Session) Connect(ctx context.Context, token string) (domain.Identity, error) {
	if !s.state.CompareAndSwap(int32(domain.Disconnected), int32(domain.Authenticating)) {
		return domain.Identity{}, domain.ErrAlreadyConnected
	}

	s.mu.Lock()
	if s.client != nil || s.closed {
		s.mu.Unlock()
		s.state.Store(int32(domain.Disconnected))
		return domain.Identity{}, domain.ErrAlreadyConnected
	}

	client, cache, err := s.dial(token)
	if err != nil {
		s.mu.Unlock()
		s.state.Store(int32(domain.Disconnected))
		return domain.Identity{}, err
	}

	s.client = client
	s.cache = cache
	s.handlers = append(s.handlers, client.AddHandler(s.onReady), client.AddHandler(s.onInteraction))
	s.mu.Unlock()

	if err := client.Open(); err != nil {
		s.state.Store(int32(domain.Disconnected))
		return domain.Identity{}, fmt.Errorf("open discord session: %w", err)
	}

	select {
	case identity := <-s.ready:
		s.state.Store(int32(domain.Ready))

		log.Info().Str("tag", identity.Tag).Str("id", identity.ID).Msg("bot is ready")
		log.Info().Int("servers", identity.GuildCount).Int("users", identity.UserCount).Msg("serving")

		return identity, nil
	case <-ctx.Done():
		if cerr := client.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close discord session")
		}
		s.state.Store(int32(domain.Disconnected))

		return domain.Identity{}, fmt.Errorf("waiting for ready: %w", ctx.Err())
	}
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)

	for _, remove := range s.handlers {
		remove()
	}
	s.handlers = nil
	s.state.Store(int32(domain.Disconnected))

	if s.client == nil {
		return nil
	}

	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}

	return nil
}

func (s *Session) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r == nil || r.User == nil {
		return
	}

	select {
	case s.ready <- identityFromReady(r):
	default:
		log.Debug().Msg("ignoring repeated ready event")
	}
}

func (s *Session) onInteraction(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic == nil || ic.Interaction == nil {
		return
	}

	if ic.Type != discordgo.InteractionApplicationCommand {
		log.Debug().Str("interactionId", ic.ID).Stringer("type", ic.Type).Msg("ignoring non-command interaction")
		return
	}

	interaction := toInteraction(ic.Interaction)
	log.Debug().Str("interactionId", interaction.ID).Str("command", interaction.CommandName).Msg("received interaction")

	select {
	case s.interactions <- interaction:
	case <-s.done:
		log.Warn().Str("interactionId", interaction.ID).Msg("session closed, dropping interaction")
	}
}

func (s *Session) conn() (Client, *discordgo.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.client == nil || s.closed {
		return nil, nil, domain.ErrNotReady
	}

	return s.client, s.cache, nil
}
