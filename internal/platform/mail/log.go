package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, message Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	to := make([]string, 0, len(message.To))
	for _, recipient := range message.To {
		to = append(to, recipient.String())
	}
	m.logger.InfoContext(ctx, "mail",
		slog.String("from", message.From.String()),
		slog.Any("to", to),
		slog.String("subject", message.Subject),
		slog.String("text", message.Text),
	)
	return nil
}
