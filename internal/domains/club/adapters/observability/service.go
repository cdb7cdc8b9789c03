// Package observability decorates the club use cases with tracing, logging and metrics.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

const tracerName = "github.com/fbraem/kwai/internal/domains/club"

// Service wraps a ports.Service.
type Service struct {
	inner ports.Service
	obs   *observability.Decorator
}

// New decorates inner. Without options spans and logs are discarded.
func New(inner ports.Service, opts ...observability.Option) ports.Service {
	return &Service{inner: inner, obs: observability.NewDecorator("club", opts...)}
}

// Instrumented decorates inner with the process instruments.
func Instrumented(inner ports.Service, instruments *observability.Instruments) ports.Service {
	return New(inner, observability.WithInstruments(instruments, tracerName))
}

func (s *Service) GetMembers(ctx context.Context, command ports.GetMembersCommand, p presenter.AsyncPresenter[domain.Member]) error {
	return s.obs.Run(ctx, "Service.GetMembers", func(ctx context.Context) error {
		return s.inner.GetMembers(ctx, command, p)
	},
		attribute.Int("limit", command.Limit),
		attribute.Int("offset", command.Offset),
		attribute.Bool("active", command.Active),
		attribute.Int("license_end_month", command.LicenseEndMonth),
	)
}

func (s *Service) GetMember(ctx context.Context, command ports.GetMemberCommand, p presenter.Presenter[domain.Member]) error {
	return s.obs.Run(ctx, "Service.GetMember", func(ctx context.Context) error {
		return s.inner.GetMember(ctx, command, p)
	}, attribute.String("member.uuid", command.UUID))
}

func (s *Service) ImportMembers(ctx context.Context, command ports.ImportMembersCommand, p presenter.Presenter[ports.MemberImportResult]) error {
	var imported, failed int64
	counting := presenter.Func[ports.MemberImportResult](func(result ports.MemberImportResult) {
		if result.Failed() {
			failed++
		} else {
			imported++
		}
		p.Present(result)
	})
	err := s.obs.Run(ctx, "Service.ImportMembers", func(ctx context.Context) error {
		return s.inner.ImportMembers(ctx, command, counting)
	},
		attribute.String("filename", command.Filename),
		attribute.Bool("preview", command.Preview),
	)
	preview := attribute.Bool("preview", command.Preview)
	s.obs.Count(ctx, "members.imported", imported, preview)
	s.obs.Count(ctx, "members.failed", failed, preview)
	return err
}

var _ ports.Service = (*Service)(nil)
