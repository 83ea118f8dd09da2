package command

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Registry keeps commands in registration order, which is also the order they
// are published and listed in /help.
type Registry struct {
	commands map[string]port.Command
	order    []string
}

func (r *Registry) Register(handler port.Command) error {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	name := handler.Descriptor().Name
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCommand, name)
	}

	log.Info().Str("command", name).Msg("adding command to registry")
	r.commands[name] = handler
	r.order = append(r.order, name)

	return nil
}

func (r *Registry) Get(name string) (port.Command, error) {
	log.Debug().Str("command", name).Msg("fetching command from registry")

	handler, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

func (r *Registry) Descriptors() []domain.CommandDescriptor {
	descriptors := make([]domain.CommandDescriptor, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.commands[name].Descriptor())
	}

	return descriptors
}

// NewDefaultRegistry builds the fixed command set served by the bot.
func NewDefaultRegistry(directory port.Directory) (*Registry, error) {
	r := &Registry{}

	for _, c := range []port.Command{
		NewPing(directory),
		NewServerInfo(directory),
		NewUserInfo(directory),
		NewHelp(r),
		NewActiveDeveloper(),
	} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}
