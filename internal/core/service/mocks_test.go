package service

import (
	"badgebot/internal/core/domain"
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockReplier struct {
	mock.Mock
}

func (m *MockReplier) Reply(ctx context.Context, interaction *domain.Interaction, payload domain.ReplyPayload) error {
	args := m.Called(ctx, interaction, payload)
	return args.Error(0)
}

type MockProber struct {
	mock.Mock
}

func (m *MockProber) Probe(ctx context.Context) domain.NodeHealth {
	args := m.Called(ctx)
	return args.Get(0).(domain.NodeHealth)
}

type MockTerminator struct {
	mock.Mock
}

func (m *MockTerminator) ForceRestart() error {
	args := m.Called()
	return args.Error(0)
}

type fakeCommand struct {
	name    string
	reply   domain.ReplyPayload
	err     error
	panics  bool
	blocks  bool
	calls   int
	callsMu sync.Mutex
}

func (f *fakeCommand) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{Name: f.name, Description: "does " + f.name}
}

func (f *fakeCommand) Respond(ctx context.Context, _ *domain.Interaction) (domain.ReplyPayload, error) {
	f.callsMu.Lock()
	f.calls++
	f.callsMu.Unlock()

	if f.panics {
		panic("boom")
	}

	if f.blocks {
		<-ctx.Done()
		return domain.ReplyPayload{}, ctx.Err()
	}

	return f.reply, f.err
}

// fakeSession is a session whose Connect succeeds or fails as configured.
type fakeSession struct {
	identity     domain.Identity
	connectErr   error
	state        domain.SessionState
	interactions chan domain.Interaction
	connects     int
	closes       int
}

func newFakeSession(identity domain.Identity) *fakeSession {
	return &fakeSession{identity: identity, interactions: make(chan domain.Interaction, 8)}
}

func (f *fakeSession) Connect(_ context.Context, _ string) (domain.Identity, error) {
	f.connects++
	if f.connectErr != nil {
		f.state = domain.Disconnected
		return domain.Identity{}, f.connectErr
	}

	f.state = domain.Ready
	return f.identity, nil
}

func (f *fakeSession) State() domain.SessionState {
	return f.state
}

func (f *fakeSession) Interactions() <-chan domain.Interaction {
	return f.interactions
}

func (f *fakeSession) Close() error {
	f.closes++
	f.state = domain.Disconnected
	return nil
}

// fakeCatalog mimics the platform's full replace: each overwrite becomes the
// whole registered set for the application.
type fakeCatalog struct {
	registered map[string][]string
	err        error
	calls      int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{registered: make(map[string][]string)}
}

func (f *fakeCatalog) Overwrite(_ context.Context, applicationID string, commands []domain.CommandDescriptor) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}

	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	f.registered[applicationID] = names

	return len(names), nil
}
