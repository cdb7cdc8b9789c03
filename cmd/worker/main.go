package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/fbraem/kwai/internal/app/api"
	"github.com/fbraem/kwai/internal/platform/observability"
	identityactivities "github.com/fbraem/kwai/internal/platform/temporal/activities/identity"
	identityworkflows "github.com/fbraem/kwai/internal/platform/temporal/workflows/identity"
)

func main() {
	ctx := context.Background()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.Observability.ServiceName = "kwai-worker"
	instruments, shutdown, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB, err := api.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()

	temporalClient, err := api.ConnectTemporal(cfg.Temporal, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	identity, err := api.NewIdentityService(cfg, db, temporalClient, instruments)
	if err != nil {
		logger.Error("failed to build identity service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	mailActivities := identityactivities.NewActivities(identity)

	w := worker.New(temporalClient, identityworkflows.MailTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(identityworkflows.MailUserInvitationWorkflow, workflow.RegisterOptions{Name: identityworkflows.MailUserInvitationWorkflowName})
	w.RegisterWorkflowWithOptions(identityworkflows.MailUserRecoveryWorkflow, workflow.RegisterOptions{Name: identityworkflows.MailUserRecoveryWorkflowName})
	w.RegisterActivityWithOptions(mailActivities.MailUserInvitation, activity.RegisterOptions{Name: identityactivities.MailUserInvitationActivityName})
	w.RegisterActivityWithOptions(mailActivities.MailUserRecovery, activity.RegisterOptions{Name: identityactivities.MailUserRecoveryActivityName})

	logger.Info("worker listening", slog.String("taskQueue", identityworkflows.MailTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
