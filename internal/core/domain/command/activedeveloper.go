package command

import (
	"badgebot/internal/core/domain"
	"context"
	"fmt"
	"time"
)

type ActiveDeveloper struct {
	now func() time.Time
}

func NewActiveDeveloper() *ActiveDeveloper {
	return &ActiveDeveloper{now: time.Now}
}

func (a *ActiveDeveloper) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "activedeveloper",
		Description: "Information about Discord Active Developer Badge",
	}
}

const (
	activeDeveloperColor     = 0x5865f2
	activeDeveloperThumbnail = "https://i.imgur.com/z6jzw4C.png"
)

const nextSteps = `1. Wait 24 hours after using this command
2. Visit ` + domain.ActiveDeveloperURL + `
3. Claim your badge!`

const requirementsMet = `• ✅ Bot is active and responding
• ✅ Slash commands are working
• ✅ Bot has been used in a server`

func (a *ActiveDeveloper) Respond(_ context.Context, interaction *domain.Interaction) (domain.ReplyPayload, error) {
	return domain.EmbedReply(domain.Embed{
		Title:       "🏆 Discord Active Developer Badge",
		Description: "**Congratulations! Your bot interaction qualifies for the Active Developer Badge!**",
		Fields: []domain.EmbedField{
			{Name: "✅ Bot Status", Value: "Your bot is running and responding to commands!"},
			{Name: "🎯 Next Steps", Value: nextSteps},
			{Name: "📋 Requirements Met", Value: requirementsMet},
			{
				Name: "💡 Tips",
				Value: `Make sure "Use data to improve Discord" is enabled in your Discord settings ` +
					`under Privacy & Safety`,
			},
		},
		Color:        activeDeveloperColor,
		ThumbnailURL: activeDeveloperThumbnail,
		FooterText:   fmt.Sprintf("Command used by %s • %s", interaction.Invoker.Username, domain.BotFooter),
		Timestamp:    a.now(),
	}), nil
}
