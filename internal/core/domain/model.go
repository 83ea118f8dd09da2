package domain

import (
	"fmt"
	"time"
)

type ParameterType int

// Values follow the platform's application command option types.
const (
	ParameterString  ParameterType = 3
	ParameterInteger ParameterType = 4
	ParameterBoolean ParameterType = 5
	ParameterUser    ParameterType = 6
)

type ParameterDescriptor struct {
	Name        string
	Description string
	Type        ParameterType
	Required    bool
}

// CommandDescriptor is the static metadata of one slash command. Name is the
// dispatch key and must be unique within a registry.
type CommandDescriptor struct {
	Name        string
	Description string
	Parameters  []ParameterDescriptor
}

// Usage renders the command the way users type it, e.g. "/userinfo [user]".
func (c CommandDescriptor) Usage() string {
	usage := "/" + c.Name
	for _, p := range c.Parameters {
		if p.Required {
			usage += fmt.Sprintf(" <%s>", p.Name)
		} else {
			usage += fmt.Sprintf(" [%s]", p.Name)
		}
	}

	return usage
}

type User struct {
	ID        string
	Username  string
	AvatarURL string
	CreatedAt time.Time
}

type Guild struct {
	ID          string
	Name        string
	IconURL     string
	MemberCount int
	CreatedAt   time.Time
}

type Member struct {
	User     User
	GuildID  string
	JoinedAt time.Time
}

type Parameter struct {
	Name  string
	Type  ParameterType
	Value string
	// User is set for user-typed parameters when the platform resolved it.
	User *User
}

// Interaction is one inbound slash command invocation. It is consumed exactly
// once by the dispatcher and never mutated.
type Interaction struct {
	ID string
	// ReplyToken authorizes the single reply to this interaction.
	ReplyToken    string
	ApplicationID string
	CommandName   string
	Invoker       User
	// GuildID is empty when the command was invoked outside a server.
	GuildID    string
	ChannelID  string
	Parameters map[string]Parameter
	CreatedAt  time.Time
}

func (i *Interaction) InGuild() bool {
	return i.GuildID != ""
}

// UserParameter returns the resolved user supplied for name. A bare id without
// user data is reported as absent.
func (i *Interaction) UserParameter(name string) (User, bool) {
	p, ok := i.Parameters[name]
	if !ok || p.Type != ParameterUser || p.User == nil {
		return User{}, false
	}

	return *p.User, true
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title        string
	Description  string
	Fields       []EmbedField
	Color        int
	ThumbnailURL string
	FooterText   string
	Timestamp    time.Time
}

// ReplyPayload is either structured embed content or a plain text message.
type ReplyPayload struct {
	Embed   *Embed
	Content string
}

func TextReply(content string) ReplyPayload {
	return ReplyPayload{Content: content}
}

func EmbedReply(embed Embed) ReplyPayload {
	return ReplyPayload{Embed: &embed}
}

// Field looks up an embed field by name.
func (r ReplyPayload) Field(name string) (EmbedField, bool) {
	if r.Embed == nil {
		return EmbedField{}, false
	}

	for _, f := range r.Embed.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return EmbedField{}, false
}

// Identity is the authenticated bot account, emitted once the session is ready.
type Identity struct {
	ID            string
	ApplicationID string
	Tag           string
	GuildCount    int
	UserCount     int
}

type SessionState int32

const (
	Disconnected SessionState = iota
	Authenticating
	Ready
)

func (s SessionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Authenticating:
		return "authenticating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

type NodeHealth int

const (
	Healthy NodeHealth = iota
	RateLimited
	Unreachable
)

func (h NodeHealth) String() string {
	switch h {
	case Healthy:
		return "healthy"
	case RateLimited:
		return "rate_limited"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// DiscordTimestamp formats t as a full date-time mention rendered by the client.
func DiscordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}
