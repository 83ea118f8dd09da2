package discord

import (
	"badgebot/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Latency reports the last measured gateway heartbeat round trip.
func (s *Session) Latency() time.Duration {
	client, _, err := s.conn()
	if err != nil {
		return 0
	}

	return client.HeartbeatLatency()
}

// Guild reads from the state cache and falls back to the REST API.
func (s *Session) Guild(ctx context.Context, guildID string) (*domain.Guild, error) {
	client, cache, err := s.conn()
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if g, err := cache.Guild(guildID); err == nil {
			return toGuild(g), nil
		}
	}

	zerolog.Ctx(ctx).Debug().Str("guildId", guildID).Msg("guild not cached, fetching")

	g, err := client.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("guild %s: %w", guildID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("fetch guild %s: %w", guildID, err)
	}

	return toGuild(g), nil
}

// Member returns domain.ErrNotFound when the user is not part of the guild.
func (s *Session) Member(ctx context.Context, guildID, userID string) (*domain.Member, error) {
	client, cache, err := s.conn()
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if m, err := cache.Member(guildID, userID); err == nil {
			return toMember(guildID, m), nil
		}
	}

	m, err := client.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("member %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("fetch member %s: %w", userID, err)
	}

	return toMember(guildID, m), nil
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}

	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
