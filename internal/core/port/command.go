package port

import (
	"badgebot/internal/core/domain"
	"context"
)

type Command interface {
	// Descriptor returns the static metadata published to the platform's command catalog.
	Descriptor() domain.CommandDescriptor
	// Respond builds the reply for a single interaction. It must not send anything itself.
	Respond(ctx context.Context, interaction *domain.Interaction) (domain.ReplyPayload, error)
}

type CommandLister interface {
	// Descriptors returns the descriptors of all registered commands in registration order.
	Descriptors() []domain.CommandDescriptor
}

type CommandRegistry interface {
	CommandLister
	// Register adds a new command to the registry, rejecting duplicate names.
	Register(command Command) error
	// Get retrieves a registered Command by name or returns domain.ErrCommandNotFound.
	Get(name string) (Command, error)
	// ListCommands returns the names of all registered commands in registration order.
	ListCommands() []string
}
