package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	identityactivities "github.com/fbraem/kwai/internal/platform/temporal/activities/identity"
)

// RunMailSequence executes a mail activity. SMTP servers are retried with a slow
// backoff; failures that can't be fixed by retrying are reported as non retryable
// by the activity.
func RunMailSequence(ctx workflow.Context, activityName string, input identityactivities.MailInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("mail sequence started", "activity", activityName, "uuid", input.UUID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Minute,
			MaximumAttempts:    10,
		},
	}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), activityName, input).Get(ctx, nil); err != nil {
		logger.Error("mail sequence failed", "activity", activityName, "uuid", input.UUID, "error", err)
		return err
	}
	logger.Info("mail sequence completed", "activity", activityName, "uuid", input.UUID)
	return nil
}
