package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/identity/adapters/events"
	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
)

type mailService struct {
	ports.Service
	invitations []string
	recoveries  []string
}

func (s *mailService) MailUserInvitation(_ context.Context, command ports.MailUserInvitationCommand) error {
	s.invitations = append(s.invitations, command.UUID)
	return nil
}

func (s *mailService) MailUserRecovery(_ context.Context, command ports.MailUserRecoveryCommand) error {
	s.recoveries = append(s.recoveries, command.UUID)
	return nil
}

func TestDispatcherRoutesMailEvents(t *testing.T) {
	ctx := context.Background()
	service := &mailService{}
	dispatcher := events.NewDispatcher(nil)
	events.SubscribeMail(dispatcher, service)

	require.NoError(t, dispatcher.Publish(ctx, domain.Event{Name: domain.UserInvitationCreatedEvent, UUID: "a"}))
	require.NoError(t, dispatcher.Publish(ctx, domain.Event{Name: domain.UserRecoveryCreatedEvent, UUID: "b"}))
	require.NoError(t, dispatcher.Publish(ctx, domain.Event{Name: "kwai/v1/unknown", UUID: "c"}))

	require.Equal(t, []string{"a"}, service.invitations)
	require.Equal(t, []string{"b"}, service.recoveries)
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	dispatcher := events.NewDispatcher(nil)
	failure := errors.New("smtp down")
	calls := 0
	dispatcher.Subscribe("event", func(context.Context, domain.Event) error {
		calls++
		return failure
	})
	dispatcher.Subscribe("event", func(context.Context, domain.Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), domain.Event{Name: "event"})
	require.ErrorIs(t, err, failure)
	require.Equal(t, 2, calls)
}
