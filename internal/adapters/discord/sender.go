package discord

import (
	"badgebot/internal/core/domain"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

func (s *Session) Reply(ctx context.Context, i *domain.Interaction, payload domain.ReplyPayload) error {
	client, _, err := s.conn()
	if err != nil {
		return err
	}

	target := &discordgo.Interaction{
		ID:    i.ID,
		AppID: i.ApplicationID,
		Token: i.ReplyToken,
		Type:  discordgo.InteractionApplicationCommand,
	}

	if err := client.InteractionRespond(target, toInteractionResponse(payload), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("respond to interaction %s: %w", i.ID, err)
	}

	zerolog.Ctx(ctx).Debug().Str("interactionId", i.ID).Bool("embed", payload.Embed != nil).Msg("reply sent")

	return nil
}
