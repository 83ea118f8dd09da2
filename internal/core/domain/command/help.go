package command

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"time"
)

// Help lists the registry it was built from, so it cannot drift from what is published.
type Help struct {
	commands port.CommandLister
	now      func() time.Time
}

func NewHelp(commands port.CommandLister) *Help {
	return &Help{commands: commands, now: time.Now}
}

func (h *Help) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "help",
		Description: "Shows all available commands",
	}
}

const helpColor = 0xffd700

func (h *Help) Respond(_ context.Context, _ *domain.Interaction) (domain.ReplyPayload, error) {
	descriptors := h.commands.Descriptors()

	fields := make([]domain.EmbedField, 0, len(descriptors))
	for _, d := range descriptors {
		fields = append(fields, domain.EmbedField{Name: d.Usage(), Value: d.Description})
	}

	return domain.EmbedReply(domain.Embed{
		Title:       "🤖 Bot Commands",
		Description: "Here are all available commands:",
		Fields:      fields,
		Color:       helpColor,
		FooterText:  domain.BotFooter,
		Timestamp:   h.now(),
	}), nil
}
