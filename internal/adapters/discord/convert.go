package discord

import (
	"badgebot/internal/core/domain"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

func identityFromReady(r *discordgo.Ready) domain.Identity {
	identity := domain.Identity{
		ID:            r.User.ID,
		ApplicationID: r.User.ID,
		Tag:           r.User.String(),
		GuildCount:    len(r.Guilds),
	}

	if r.Application != nil && r.Application.ID != "" {
		identity.ApplicationID = r.Application.ID
	}

	users := map[string]struct{}{r.User.ID: {}}
	for _, g := range r.Guilds {
		for _, m := range g.Members {
			if m.User != nil {
				users[m.User.ID] = struct{}{}
			}
		}
	}
	identity.UserCount = len(users)

	return identity
}

func toInteraction(i *discordgo.Interaction) domain.Interaction {
	data := i.ApplicationCommandData()

	invoker := i.User
	if i.Member != nil && i.Member.User != nil {
		invoker = i.Member.User
	}

	params := make(map[string]domain.Parameter, len(data.Options))
	for _, opt := range data.Options {
		p := domain.Parameter{
			Name:  opt.Name,
			Type:  domain.ParameterType(opt.Type),
			Value: fmt.Sprint(opt.Value),
		}

		if opt.Type == discordgo.ApplicationCommandOptionUser {
			id, _ := opt.Value.(string)
			p.Value = id

			user := domain.User{ID: id, CreatedAt: snowflakeTime(id)}
			if data.Resolved != nil {
				if u, ok := data.Resolved.Users[id]; ok {
					user = toUser(u)
				}
			}
			if id != "" {
				p.User = &user
			}
		}

		params[opt.Name] = p
	}

	return domain.Interaction{
		ID:            i.ID,
		ReplyToken:    i.Token,
		ApplicationID: i.AppID,
		CommandName:   data.Name,
		Invoker:       toUser(invoker),
		GuildID:       i.GuildID,
		ChannelID:     i.ChannelID,
		Parameters:    params,
		CreatedAt:     snowflakeTime(i.ID),
	}
}

func toUser(u *discordgo.User) domain.User {
	if u == nil {
		return domain.User{}
	}

	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL(""),
		CreatedAt: snowflakeTime(u.ID),
	}
}

func toGuild(g *discordgo.Guild) *domain.Guild {
	count := g.MemberCount
	if count == 0 {
		count = g.ApproximateMemberCount
	}

	var icon string
	if g.Icon != "" {
		icon = g.IconURL("")
	}

	return &domain.Guild{
		ID:          g.ID,
		Name:        g.Name,
		IconURL:     icon,
		MemberCount: count,
		CreatedAt:   snowflakeTime(g.ID),
	}
}

func toMember(guildID string, m *discordgo.Member) *domain.Member {
	return &domain.Member{
		User:     toUser(m.User),
		GuildID:  guildID,
		JoinedAt: m.JoinedAt,
	}
}

// snowflakeTime falls back to the current time for ids that do not parse.
func snowflakeTime(id string) time.Time {
	t, err := discordgo.SnowflakeTimestamp(id)
	if err != nil {
		return time.Now()
	}

	return t
}

func toApplicationCommand(d domain.CommandDescriptor) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        d.Name,
		Description: d.Description,
	}

	for _, p := range d.Parameters {
		cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(p.Type),
			Name:        p.Name,
			Description: p.Description,
			Required:    p.Required,
		})
	}

	return cmd
}

func toInteractionResponse(payload domain.ReplyPayload) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Content: payload.Content,
	}

	if payload.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{toMessageEmbed(payload.Embed)}
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func toMessageEmbed(e *domain.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}

	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if e.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}

	if e.FooterText != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.FooterText}
	}

	if !e.Timestamp.IsZero() {
		embed.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}

	return embed
}
