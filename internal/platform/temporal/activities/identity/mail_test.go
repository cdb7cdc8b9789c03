package identity_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/temporal/activities/identity"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type mailService struct {
	ports.Service
	err    error
	mailed []string
}

func (s *mailService) MailUserInvitation(_ context.Context, command ports.MailUserInvitationCommand) error {
	s.mailed = append(s.mailed, command.UUID)
	return s.err
}

func (s *mailService) MailUserRecovery(_ context.Context, command ports.MailUserRecoveryCommand) error {
	s.mailed = append(s.mailed, command.UUID)
	return s.err
}

func TestMailUserInvitationActivity(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	service := &mailService{}
	activities := identity.NewActivities(service)
	env.RegisterActivity(activities)

	_, err := env.ExecuteActivity(activities.MailUserInvitation, identity.MailInput{UUID: "8a6f"})
	require.NoError(t, err)
	require.Equal(t, []string{"8a6f"}, service.mailed)
}

func TestMailActivityStopsRetryingUnprocessable(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	service := &mailService{err: fmt.Errorf("%w: already mailed", kernel.ErrUnprocessable)}
	activities := identity.NewActivities(service)
	env.RegisterActivity(activities)

	_, err := env.ExecuteActivity(activities.MailUserRecovery, identity.MailInput{UUID: "c0de"})
	require.Error(t, err)
	var applicationErr *temporal.ApplicationError
	require.ErrorAs(t, err, &applicationErr)
	require.True(t, applicationErr.NonRetryable())
}
