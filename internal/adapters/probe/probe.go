package probe

import (
	"badgebot/internal/core/domain"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultURL = "https://discord.com/api/v9/invites/discord-developers"

// HTTPProber checks whether this node can reach the Discord API by fetching a
// public endpoint that needs no authentication.
type HTTPProber struct {
	url    string
	client *http.Client
}

func NewHTTPProber(url string, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Probe issues a single request. Any non-2xx answer means the node is blocked
// or throttled; a transport failure means it cannot reach Discord at all.
func (p *HTTPProber) Probe(ctx context.Context) domain.NodeHealth {
	log.Info().Str("url", p.url).Msg("checking discord api accessibility")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		log.Error().Err(fmt.Errorf("error creating request %w", err)).Str("url", p.url).Send()
		return domain.Unreachable
	}

	res, err := p.client.Do(req)
	if err != nil {
		log.Error().Err(fmt.Errorf("error executing request %w", err)).Str("url", p.url).Msg("discord api unreachable")
		return domain.Unreachable
	}
	defer res.Body.Close()

	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Warn().
			Int("status", res.StatusCode).
			Str("retryAfter", res.Header.Get("Retry-After")).
			Msg("node is rate limited by discord")
		return domain.RateLimited
	}

	log.Info().Int("status", res.StatusCode).Msg("discord api is accessible")

	return domain.Healthy
}
