package discord

import (
	"badgebot/internal/core/domain"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Overwrite replaces every global command of the application with commands.
func (s *Session) Overwrite(ctx context.Context, applicationID string, commands []domain.CommandDescriptor) (int, error) {
	client, _, err := s.conn()
	if err != nil {
		return 0, err
	}

	cmds := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, d := range commands {
		cmds = append(cmds, toApplicationCommand(d))
	}

	created, err := client.ApplicationCommandBulkOverwrite(applicationID, "", cmds, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("overwrite application commands: %w", err)
	}

	return len(created), nil
}
