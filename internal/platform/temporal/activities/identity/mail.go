// Package identity holds the Temporal activities of the identity context.
package identity

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

const (
	MailUserInvitationActivityName = "identity.activities.MailUserInvitation"
	MailUserRecoveryActivityName   = "identity.activities.MailUserRecovery"
)

// MailInput identifies the invitation or recovery to mail.
type MailInput struct {
	UUID string
}

type Activities struct {
	service ports.Service
}

func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// MailUserInvitation sends the mail of a user invitation.
func (a *Activities) MailUserInvitation(ctx context.Context, input MailInput) error {
	return a.mail(ctx, "MailUserInvitation", input, func(ctx context.Context) error {
		return a.service.MailUserInvitation(ctx, ports.MailUserInvitationCommand{UUID: input.UUID})
	})
}

// MailUserRecovery sends the mail of a password recovery.
func (a *Activities) MailUserRecovery(ctx context.Context, input MailInput) error {
	return a.mail(ctx, "MailUserRecovery", input, func(ctx context.Context) error {
		return a.service.MailUserRecovery(ctx, ports.MailUserRecoveryCommand{UUID: input.UUID})
	})
}

// mail runs send once. A heartbeat records the delivery so a retried attempt does
// not mail twice. Entities that are gone or can't be mailed anymore stop the retries.
func (a *Activities) mail(ctx context.Context, name string, input MailInput, send func(context.Context) error) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("identity mail activity not initialized", "uuid", input.UUID)
		return errors.New("identity mail activity not initialized")
	}

	var hb mailHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Sent {
		logger.Info(name+" already sent in prior attempt; skipping", "uuid", input.UUID)
		return nil
	}

	logger.Info(name+" activity started", "uuid", input.UUID)
	if err := send(ctx); err != nil {
		logger.Error(name+" activity failed", "uuid", input.UUID, "error", err)
		if errors.Is(err, kernel.ErrUnprocessable) || errors.Is(err, kernel.ErrNotFound) {
			return temporal.NewNonRetryableApplicationError(err.Error(), "identity.mail", err)
		}
		return err
	}
	activity.RecordHeartbeat(ctx, mailHeartbeat{Sent: true})
	logger.Info(name+" activity completed", "uuid", input.UUID)
	return nil
}

type mailHeartbeat struct {
	Sent bool
}
