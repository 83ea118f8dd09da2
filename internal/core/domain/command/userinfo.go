package command

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type UserInfo struct {
	directory port.Directory
	now       func() time.Time
}

func NewUserInfo(directory port.Directory) *UserInfo {
	return &UserInfo{directory: directory, now: time.Now}
}

const userParameter = "user"

func (u *UserInfo) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "userinfo",
		Description: "Shows information about a user",
		Parameters: []domain.ParameterDescriptor{
			{
				Name:        userParameter,
				Description: "The user to get info about",
				Type:        domain.ParameterUser,
				Required:    false,
			},
		},
	}
}

const userInfoColor = 0x9932cc

func (u *UserInfo) Respond(ctx context.Context, interaction *domain.Interaction) (domain.ReplyPayload, error) {
	target, ok := interaction.UserParameter(userParameter)
	if !ok {
		target = interaction.Invoker
	}

	joined := domain.NotInServer
	if interaction.InGuild() {
		member, err := u.directory.Member(ctx, interaction.GuildID, target.ID)
		switch {
		case err == nil:
			joined = domain.DiscordTimestamp(member.JoinedAt)
			if target.Username == "" {
				target = member.User
			}
		case errors.Is(err, domain.ErrNotFound):
		default:
			log.Warn().Err(err).Str("userId", target.ID).Str("guildId", interaction.GuildID).
				Msg("member lookup failed, reporting user as not in server")
		}
	}

	return domain.EmbedReply(domain.Embed{
		Title:        fmt.Sprintf("👤 %s User Info", target.Username),
		ThumbnailURL: target.AvatarURL,
		Fields: []domain.EmbedField{
			{Name: "Username", Value: target.Username, Inline: true},
			{Name: "User ID", Value: target.ID, Inline: true},
			{Name: "Account Created", Value: domain.DiscordTimestamp(target.CreatedAt), Inline: false},
			{Name: "Joined Server", Value: joined, Inline: false},
		},
		Color:     userInfoColor,
		Timestamp: u.now(),
	}), nil
}
