package service

import (
	"badgebot/internal/core/domain"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registryDescriptors = []domain.CommandDescriptor{
	{Name: "ping", Description: "Pings the bot and shows the latency"},
	{Name: "userinfo", Description: "Shows information about a user", Parameters: []domain.ParameterDescriptor{
		{Name: "user", Description: "The user to get info about", Type: domain.ParameterUser},
	}},
	{Name: "help", Description: "Shows all available commands"},
}

func TestPublisher_PublishIsIdempotentFullReplace(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.registered["app"] = []string{"legacy", "ping"}
	p := NewPublisher(catalog)

	first, err := p.Publish(t.Context(), "app", registryDescriptors)
	require.NoError(t, err)

	second, err := p.Publish(t.Context(), "app", registryDescriptors)
	require.NoError(t, err)

	assert.Equal(t, 3, first)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"ping", "userinfo", "help"}, catalog.registered["app"])
	assert.Equal(t, 2, catalog.calls)
}

func TestPublisher_PublishErrors(t *testing.T) {
	tests := []struct {
		name          string
		applicationID string
		commands      []domain.CommandDescriptor
		catalogErr    error
		wantErr       error
		wantCalls     int
	}{
		{
			name:          "missing application id",
			applicationID: "",
			commands:      registryDescriptors,
			wantErr:       domain.ErrMalformedDescriptor,
		},
		{
			name:          "empty registry",
			applicationID: "app",
			commands:      nil,
			wantErr:       domain.ErrEmptyRegistry,
		},
		{
			name:          "catalog failure",
			applicationID: "app",
			commands:      registryDescriptors,
			catalogErr:    errors.New("503"),
			wantCalls:     1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.err = tc.catalogErr

			count, err := NewPublisher(catalog).Publish(t.Context(), tc.applicationID, tc.commands)
			require.Error(t, err)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
			assert.Zero(t, count)
			assert.Equal(t, tc.wantCalls, catalog.calls)
		})
	}
}

func TestValidateDescriptors(t *testing.T) {
	tests := []struct {
		name     string
		commands []domain.CommandDescriptor
		wantErr  bool
	}{
		{
			name:     "valid set",
			commands: registryDescriptors,
		},
		{
			name:     "uppercase name",
			commands: []domain.CommandDescriptor{{Name: "Ping", Description: "x"}},
			wantErr:  true,
		},
		{
			name:     "name too long",
			commands: []domain.CommandDescriptor{{Name: strings.Repeat("a", 33), Description: "x"}},
			wantErr:  true,
		},
		{
			name: "duplicate name",
			commands: []domain.CommandDescriptor{
				{Name: "ping", Description: "x"},
				{Name: "ping", Description: "y"},
			},
			wantErr: true,
		},
		{
			name:     "empty description",
			commands: []domain.CommandDescriptor{{Name: "ping"}},
			wantErr:  true,
		},
		{
			name:     "description too long",
			commands: []domain.CommandDescriptor{{Name: "ping", Description: strings.Repeat("x", 101)}},
			wantErr:  true,
		},
		{
			name: "required after optional",
			commands: []domain.CommandDescriptor{{Name: "echo", Description: "x", Parameters: []domain.ParameterDescriptor{
				{Name: "times", Description: "x", Type: domain.ParameterInteger},
				{Name: "text", Description: "x", Type: domain.ParameterString, Required: true},
			}}},
			wantErr: true,
		},
		{
			name: "duplicate parameter",
			commands: []domain.CommandDescriptor{{Name: "echo", Description: "x", Parameters: []domain.ParameterDescriptor{
				{Name: "text", Description: "x", Type: domain.ParameterString},
				{Name: "text", Description: "x", Type: domain.ParameterString},
			}}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDescriptors(tc.commands)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrMalformedDescriptor)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
