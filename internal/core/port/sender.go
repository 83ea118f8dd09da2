package port

import (
	"badgebot/internal/core/domain"
	"context"
)

type Replier interface {
	// Reply sends the one and only response to an interaction.
	Reply(ctx context.Context, interaction *domain.Interaction, payload domain.ReplyPayload) error
}
