package command

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"fmt"
	"math"
	"time"
)

type Ping struct {
	latency port.LatencySource
	now     func() time.Time
}

func NewPing(latency port.LatencySource) *Ping {
	return &Ping{latency: latency, now: time.Now}
}

func (p *Ping) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "ping",
		Description: "Pings the bot and shows the latency",
	}
}

const pingColor = 0x00ff00

func (p *Ping) Respond(_ context.Context, interaction *domain.Interaction) (domain.ReplyPayload, error) {
	now := p.now()
	perceived := now.Sub(interaction.CreatedAt).Milliseconds()
	api := math.Round(float64(p.latency.Latency()) / float64(time.Millisecond))

	return domain.EmbedReply(domain.Embed{
		Title: "🏓 Pong!",
		Fields: []domain.EmbedField{
			{Name: "Bot Latency", Value: fmt.Sprintf("%dms", perceived), Inline: true},
			{Name: "API Latency", Value: fmt.Sprintf("%.0fms", api), Inline: true},
		},
		Color:     pingColor,
		Timestamp: now,
	}), nil
}
