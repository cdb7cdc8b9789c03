// Package events delivers identity events to the processes that handle them.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	identityworkflows "github.com/fbraem/kwai/internal/platform/temporal/workflows/identity"
)

var (
	_ ports.EventPublisher = (*TemporalPublisher)(nil)
	_ ports.EventPublisher = (*Dispatcher)(nil)
)

// TemporalPublisher starts a workflow for every event. The workflow id is derived
// from the event, so publishing the same event twice starts one workflow.
type TemporalPublisher struct {
	client    client.Client
	taskQueue string
}

func NewTemporalPublisher(c client.Client) *TemporalPublisher {
	return &TemporalPublisher{client: c, taskQueue: identityworkflows.MailTaskQueue}
}

func (p *TemporalPublisher) Publish(ctx context.Context, event domain.Event) error {
	if p == nil || p.client == nil {
		return errors.New("temporal publisher not configured")
	}
	var (
		workflow   any
		workflowID string
	)
	switch event.Name {
	case domain.UserInvitationCreatedEvent:
		workflow, workflowID = identityworkflows.MailUserInvitationWorkflow, "user-invitation-mail-"+event.UUID
	case domain.UserRecoveryCreatedEvent:
		workflow, workflowID = identityworkflows.MailUserRecoveryWorkflow, "user-recovery-mail-"+event.UUID
	default:
		return fmt.Errorf("no workflow for event %s", event.Name)
	}
	_, err := p.client.ExecuteWorkflow(
		ctx,
		client.StartWorkflowOptions{ID: workflowID, TaskQueue: p.taskQueue},
		workflow,
		identityworkflows.MailWorkflowInput{UUID: event.UUID, TraceID: traceID(ctx)},
	)
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		return nil
	}
	return err
}

func traceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// Handler processes one event.
type Handler func(ctx context.Context, event domain.Event) error

// Dispatcher runs the subscribed handlers in the publishing goroutine. It is used
// when no Temporal cluster is configured.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{handlers: make(map[string][]Handler), logger: logger}
}

func (d *Dispatcher) Subscribe(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], handler)
}

// Publish runs every handler of the event and joins their errors. An event without
// handlers is logged and dropped.
func (d *Dispatcher) Publish(ctx context.Context, event domain.Event) error {
	d.mu.RLock()
	handlers := d.handlers[event.Name]
	d.mu.RUnlock()
	if len(handlers) == 0 {
		d.logger.WarnContext(ctx, "no handler for event", "event", event.Name, "uuid", event.UUID)
		return nil
	}
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.ErrorContext(ctx, "event handler failed", "event", event.Name, "uuid", event.UUID, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SubscribeMail lets the dispatcher send the identity mails directly.
func SubscribeMail(d *Dispatcher, service ports.Service) {
	d.Subscribe(domain.UserInvitationCreatedEvent, func(ctx context.Context, event domain.Event) error {
		return service.MailUserInvitation(ctx, ports.MailUserInvitationCommand{UUID: event.UUID})
	})
	d.Subscribe(domain.UserRecoveryCreatedEvent, func(ctx context.Context, event domain.Event) error {
		return service.MailUserRecovery(ctx, ports.MailUserRecoveryCommand{UUID: event.UUID})
	})
}
