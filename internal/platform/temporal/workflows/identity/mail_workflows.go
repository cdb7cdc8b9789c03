// Package identity holds the Temporal workflows of the identity context.
package identity

import (
	"go.temporal.io/sdk/workflow"

	identityactivities "github.com/fbraem/kwai/internal/platform/temporal/activities/identity"
	"github.com/fbraem/kwai/internal/platform/temporal/sequences"
)

const (
	MailUserInvitationWorkflowName = "identity.workflows.MailUserInvitation"
	MailUserRecoveryWorkflowName   = "identity.workflows.MailUserRecovery"
	// MailTaskQueue is the queue consumed by the worker sending identity mails.
	MailTaskQueue = "IDENTITY_MAIL"
)

// MailWorkflowInput carries the unique id of the invitation or recovery.
type MailWorkflowInput struct {
	UUID    string
	TraceID string
}

// MailUserInvitationWorkflow mails a new user invitation.
func MailUserInvitationWorkflow(ctx workflow.Context, input MailWorkflowInput) error {
	return runMail(ctx, "MailUserInvitationWorkflow", identityactivities.MailUserInvitationActivityName, input)
}

// MailUserRecoveryWorkflow mails a password recovery link.
func MailUserRecoveryWorkflow(ctx workflow.Context, input MailWorkflowInput) error {
	return runMail(ctx, "MailUserRecoveryWorkflow", identityactivities.MailUserRecoveryActivityName, input)
}

func runMail(ctx workflow.Context, name, activityName string, input MailWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info(name+" started", withTraceID(input.TraceID, "uuid", input.UUID)...)
	if err := sequences.RunMailSequence(ctx, activityName, identityactivities.MailInput{UUID: input.UUID}); err != nil {
		logger.Error(name+" failed", withTraceID(input.TraceID, "uuid", input.UUID, "error", err)...)
		return err
	}
	logger.Info(name+" completed", withTraceID(input.TraceID, "uuid", input.UUID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
