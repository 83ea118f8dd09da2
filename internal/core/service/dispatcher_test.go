package service

import (
	"badgebot/internal/core/domain"
	"badgebot/internal/core/domain/command"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, commands ...*fakeCommand) *command.Registry {
	t.Helper()

	r := &command.Registry{}
	for _, c := range commands {
		require.NoError(t, r.Register(c))
	}

	return r
}

func TestDispatcher_Dispatch(t *testing.T) {
	embed := domain.EmbedReply(domain.Embed{Title: "ok"})

	tests := []struct {
		name        string
		command     *fakeCommand
		commandName string
		want        domain.ReplyPayload
		wantCalls   int
	}{
		{
			name:        "matched command",
			command:     &fakeCommand{name: "ping", reply: embed},
			commandName: "ping",
			want:        embed,
			wantCalls:   1,
		},
		{
			name:        "unknown command gets fallback",
			command:     &fakeCommand{name: "ping", reply: embed},
			commandName: "nope",
			want:        domain.TextReply(domain.FallbackReply),
			wantCalls:   0,
		},
		{
			name:        "command error gets error reply",
			command:     &fakeCommand{name: "ping", err: errors.New("lookup failed")},
			commandName: "ping",
			want:        domain.TextReply(domain.ErrorReply),
			wantCalls:   1,
		},
		{
			name:        "panic is recovered",
			command:     &fakeCommand{name: "ping", panics: true},
			commandName: "ping",
			want:        domain.TextReply(domain.ErrorReply),
			wantCalls:   1,
		},
		{
			name:        "empty reply is replaced",
			command:     &fakeCommand{name: "ping"},
			commandName: "ping",
			want:        domain.TextReply(domain.ErrorReply),
			wantCalls:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDispatcher(newTestRegistry(t, tc.command), new(MockReplier), time.Second)

			var got domain.ReplyPayload
			require.NotPanics(t, func() {
				got = d.Dispatch(t.Context(), &domain.Interaction{ID: "1", CommandName: tc.commandName})
			})

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantCalls, tc.command.calls)
		})
	}
}

func TestDispatcher_HandleRepliesOnce(t *testing.T) {
	tests := []struct {
		name     string
		replyErr error
		wantErr  bool
	}{
		{
			name: "reply sent",
		},
		{
			name:     "reply fails",
			replyErr: errors.New("gateway down"),
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			replier := new(MockReplier)
			cmd := &fakeCommand{name: "help", reply: domain.TextReply("hi")}
			d := NewDispatcher(newTestRegistry(t, cmd), replier, time.Second)

			interaction := &domain.Interaction{ID: "7", CommandName: "help"}
			replier.On("Reply", mock.Anything, interaction, domain.TextReply("hi")).Return(tc.replyErr).Once()

			err := d.Handle(t.Context(), interaction)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrSendingReplyFailed)
			} else {
				require.NoError(t, err)
			}

			replier.AssertNumberOfCalls(t, "Reply", 1)
			replier.AssertExpectations(t)
		})
	}
}

func TestDispatcher_HandleAppliesTimeout(t *testing.T) {
	cmd := &fakeCommand{name: "ping", blocks: true}
	replier := new(MockReplier)
	d := NewDispatcher(newTestRegistry(t, cmd), replier, 20*time.Millisecond)

	replier.On("Reply", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything, domain.TextReply(domain.ErrorReply)).Return(nil).Once()

	require.NoError(t, d.Handle(t.Context(), &domain.Interaction{ID: "8", CommandName: "ping"}))

	replier.AssertNumberOfCalls(t, "Reply", 1)
	replier.AssertExpectations(t)
}

func TestDispatcher_RunKeepsArrivalOrder(t *testing.T) {
	replier := new(MockReplier)
	registry := newTestRegistry(t,
		&fakeCommand{name: "ping", reply: domain.TextReply("pong")},
		&fakeCommand{name: "help", reply: domain.TextReply("help")},
	)
	d := NewDispatcher(registry, replier, time.Second)

	session := newFakeSession(domain.Identity{})
	session.state = domain.Ready

	var order []string
	replier.On("Reply", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		order = append(order, args.Get(1).(*domain.Interaction).ID)
	}).Return(nil)

	for _, i := range []domain.Interaction{
		{ID: "1", CommandName: "ping"},
		{ID: "2", CommandName: "unknown"},
		{ID: "3", CommandName: "help"},
	} {
		session.interactions <- i
	}
	close(session.interactions)

	require.NoError(t, d.Run(t.Context(), session))

	assert.Equal(t, []string{"1", "2", "3"}, order)
	replier.AssertNumberOfCalls(t, "Reply", 3)
}

func TestDispatcher_RunRequiresReadySession(t *testing.T) {
	d := NewDispatcher(&command.Registry{}, new(MockReplier), time.Second)

	err := d.Run(t.Context(), newFakeSession(domain.Identity{}))
	require.ErrorIs(t, err, domain.ErrNotReady)
}

func TestDispatcher_RunStopsOnCancel(t *testing.T) {
	d := NewDispatcher(&command.Registry{}, new(MockReplier), time.Second)
	session := newFakeSession(domain.Identity{})
	session.state = domain.Ready

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := d.Run(ctx, session)
	require.ErrorIs(t, err, context.Canceled)
}
