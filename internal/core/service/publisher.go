package service

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/port"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Publisher pushes the complete command set to the platform. The platform drops
// every previously registered command missing from the call, so the set passed
// in must always be the full registry.
type Publisher struct {
	catalog port.CommandCatalog
}

func NewPublisher(catalog port.CommandCatalog) *Publisher {
	return &Publisher{catalog: catalog}
}

func (p *Publisher) Publish(ctx context.Context, applicationID string, commands []domain.CommandDescriptor) (int, error) {
	if applicationID == "" {
		return 0, fmt.Errorf("%w: missing application id", domain.ErrMalformedDescriptor)
	}

	if err := ValidateDescriptors(commands); err != nil {
		return 0, err
	}

	log.Info().Int("count", len(commands)).Str("applicationId", applicationID).Msg("registering slash commands")

	count, err := p.catalog.Overwrite(ctx, applicationID, commands)
	if err != nil {
		return 0, fmt.Errorf("failed to publish commands: %w", err)
	}

	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}

	publishedCommands.Set(float64(count))
	log.Info().Int("count", count).Str("commands", strings.Join(names, ", ")).Msg("registered slash commands")

	return count, nil
}

var commandName = regexp.MustCompile(`^[-_\p{Ll}\p{N}]{1,32}$`)

const maxDescriptionLength = 100

// ValidateDescriptors rejects sets the platform would refuse or that would
// silently shrink the published catalog.
func ValidateDescriptors(commands []domain.CommandDescriptor) error {
	if len(commands) == 0 {
		return domain.ErrEmptyRegistry
	}

	seen := make(map[string]struct{}, len(commands))
	for _, c := range commands {
		if !commandName.MatchString(c.Name) {
			return fmt.Errorf("%w: invalid name %q", domain.ErrMalformedDescriptor, c.Name)
		}

		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: duplicate name %q", domain.ErrMalformedDescriptor, c.Name)
		}
		seen[c.Name] = struct{}{}

		if err := validateDescription(c.Name, c.Description); err != nil {
			return err
		}

		params := make(map[string]struct{}, len(c.Parameters))
		optionalSeen := false
		for _, p := range c.Parameters {
			if !commandName.MatchString(p.Name) {
				return fmt.Errorf("%w: invalid parameter name %q on %s", domain.ErrMalformedDescriptor, p.Name, c.Name)
			}

			if _, ok := params[p.Name]; ok {
				return fmt.Errorf("%w: duplicate parameter %q on %s", domain.ErrMalformedDescriptor, p.Name, c.Name)
			}
			params[p.Name] = struct{}{}

			if err := validateDescription(c.Name+"."+p.Name, p.Description); err != nil {
				return err
			}

			// required parameters must come before optional ones
			if p.Required && optionalSeen {
				return fmt.Errorf("%w: required parameter %q after optional on %s",
					domain.ErrMalformedDescriptor, p.Name, c.Name)
			}
			optionalSeen = optionalSeen || !p.Required
		}
	}

	return nil
}

func validateDescription(owner, description string) error {
	n := len([]rune(description))
	if n == 0 || n > maxDescriptionLength {
		return fmt.Errorf("%w: description of %s must be 1-%d characters", domain.ErrMalformedDescriptor,
			owner, maxDescriptionLength)
	}

	return nil
}
