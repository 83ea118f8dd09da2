package command

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"fmt"
	"strconv"
	"time"
)

type ServerInfo struct {
	directory port.Directory
	now       func() time.Time
}

func NewServerInfo(directory port.Directory) *ServerInfo {
	return &ServerInfo{directory: directory, now: time.Now}
}

func (s *ServerInfo) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "serverinfo",
		Description: "Shows information about the server",
	}
}

const serverInfoColor = 0x7289da

func (s *ServerInfo) Respond(ctx context.Context, interaction *domain.Interaction) (domain.ReplyPayload, error) {
	if !interaction.InGuild() {
		return domain.TextReply(domain.GuildOnlyReply), nil
	}

	guild, err := s.directory.Guild(ctx, interaction.GuildID)
	if err != nil {
		return domain.ReplyPayload{}, fmt.Errorf("failed to resolve guild %s: %w", interaction.GuildID, err)
	}

	return domain.EmbedReply(domain.Embed{
		Title:        fmt.Sprintf("📊 %s Server Info", guild.Name),
		ThumbnailURL: guild.IconURL,
		Fields: []domain.EmbedField{
			{Name: "Server Name", Value: guild.Name, Inline: true},
			{Name: "Member Count", Value: strconv.Itoa(guild.MemberCount), Inline: true},
			{Name: "Created", Value: domain.DiscordTimestamp(guild.CreatedAt), Inline: true},
			{Name: "Server ID", Value: guild.ID, Inline: true},
		},
		Color:     serverInfoColor,
		Timestamp: s.now(),
	}), nil
}
