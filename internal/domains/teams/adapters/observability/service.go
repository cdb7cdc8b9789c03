// Package observability decorates the team use cases with tracing, logging and metrics.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

const tracerName = "github.com/fbraem/kwai/internal/domains/teams"

type Service struct {
	inner ports.Service
	obs   *observability.Decorator
}

func New(inner ports.Service, opts ...observability.Option) ports.Service {
	return &Service{inner: inner, obs: observability.NewDecorator("teams", opts...)}
}

// Instrumented decorates inner with the process instruments.
func Instrumented(inner ports.Service, instruments *observability.Instruments) ports.Service {
	return New(inner, observability.WithInstruments(instruments, tracerName))
}

func (s *Service) GetTeams(ctx context.Context, command ports.GetTeamsCommand, p presenter.AsyncPresenter[domain.Team]) error {
	return s.obs.Run(ctx, "Service.GetTeams", func(ctx context.Context) error {
		return s.inner.GetTeams(ctx, command, p)
	}, attribute.Int("limit", command.Limit), attribute.Int("offset", command.Offset))
}

func (s *Service) GetTeam(ctx context.Context, command ports.GetTeamCommand, p presenter.Presenter[domain.Team]) error {
	return s.obs.Run(ctx, "Service.GetTeam", func(ctx context.Context) error {
		return s.inner.GetTeam(ctx, command, p)
	}, attribute.Int64("team.id", command.ID))
}

func (s *Service) CreateTeam(ctx context.Context, command ports.CreateTeamCommand, p presenter.Presenter[domain.Team]) error {
	err := s.obs.Run(ctx, "Service.CreateTeam", func(ctx context.Context) error {
		return s.inner.CreateTeam(ctx, command, p)
	}, attribute.String("team.name", command.Name))
	if err == nil {
		s.obs.Count(ctx, "teams.created", 1)
	}
	return err
}

func (s *Service) UpdateTeam(ctx context.Context, command ports.UpdateTeamCommand, p presenter.Presenter[domain.Team]) error {
	return s.obs.Run(ctx, "Service.UpdateTeam", func(ctx context.Context) error {
		return s.inner.UpdateTeam(ctx, command, p)
	}, attribute.Int64("team.id", command.ID), attribute.String("team.name", command.Name))
}

func (s *Service) DeleteTeam(ctx context.Context, command ports.DeleteTeamCommand) error {
	err := s.obs.Run(ctx, "Service.DeleteTeam", func(ctx context.Context) error {
		return s.inner.DeleteTeam(ctx, command)
	}, attribute.Int64("team.id", command.ID))
	if err == nil {
		s.obs.Count(ctx, "teams.deleted", 1)
	}
	return err
}

func (s *Service) GetTeamMembers(ctx context.Context, command ports.GetTeamMembersCommand, p presenter.AsyncPresenter[domain.Member]) error {
	return s.obs.Run(ctx, "Service.GetTeamMembers", func(ctx context.Context) error {
		return s.inner.GetTeamMembers(ctx, command, p)
	}, attribute.Int64("team.id", command.TeamID), attribute.Bool("in_team", command.InTeam))
}

func (s *Service) CreateTeamMember(ctx context.Context, command ports.CreateTeamMemberCommand, p presenter.Presenter[domain.Team]) error {
	err := s.obs.Run(ctx, "Service.CreateTeamMember", func(ctx context.Context) error {
		return s.inner.CreateTeamMember(ctx, command, p)
	}, attribute.Int64("team.id", command.TeamID), attribute.String("member.uuid", command.MemberUUID))
	if err == nil {
		s.obs.Count(ctx, "team_members.created", 1)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
