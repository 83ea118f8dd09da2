package domain

import "errors"

var (
	ErrCommandNotFound     = errors.New("command not found")
	ErrDuplicateCommand    = errors.New("command already registered")
	ErrMalformedDescriptor = errors.New("malformed command descriptor")
	ErrEmptyRegistry       = errors.New("no commands to publish")
	ErrNotFound            = errors.New("not found")
	ErrNotReady            = errors.New("session not ready")
	ErrAlreadyConnected    = errors.New("session already connected")
	ErrRestartRequested    = errors.New("restart requested: node is rate limited")
	ErrSendingReplyFailed  = errors.New("failed to send reply")
)

const (
	FallbackReply      = "This command's response has not been added yet!"
	ErrorReply         = "Something went wrong while running this command."
	GuildOnlyReply     = "This command can only be used in a server."
	NotInServer        = "Not in server"
	BotFooter          = "Active Developer Badge Bot"
	ActiveDeveloperURL = "https://discord.com/developers/active-developer"
)
