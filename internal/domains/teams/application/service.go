package application

import (
	"context"
	"errors"

	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
	"github.com/fbraem/kwai/internal/shared/uow"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates the team use cases.
type Service struct {
	teams   ports.TeamRepository
	members ports.MemberRepository
	uow     uow.UnitOfWork
}

func NewService(teams ports.TeamRepository, members ports.MemberRepository, unitOfWork uow.UnitOfWork) *Service {
	return &Service{teams: teams, members: members, uow: unitOfWork}
}

func (s *Service) GetTeams(ctx context.Context, command ports.GetTeamsCommand, p presenter.AsyncPresenter[domain.Team]) error {
	query := s.teams.CreateQuery()
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Team]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.teams.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) GetTeam(ctx context.Context, command ports.GetTeamCommand, p presenter.Presenter[domain.Team]) error {
	team, err := s.team(ctx, command.ID)
	if err != nil {
		return mapError(err)
	}
	p.Present(team)
	return nil
}

// CreateTeam creates a team. Team names are unique.
func (s *Service) CreateTeam(ctx context.Context, command ports.CreateTeamCommand, p presenter.Presenter[domain.Team]) error {
	team, err := domain.NewTeam(command.Name, command.Active, command.Remark)
	if err != nil {
		return mapError(err)
	}
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueName(ctx, team.Name, kernel.IntIdentifier{}); err != nil {
			return err
		}
		team, err = s.teams.Create(ctx, team)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(team)
	return nil
}

func (s *Service) UpdateTeam(ctx context.Context, command ports.UpdateTeamCommand, p presenter.Presenter[domain.Team]) error {
	var team domain.Team
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.team(ctx, command.ID)
		if err != nil {
			return err
		}
		team, err = current.Change(command.Name, command.Active, command.Remark)
		if err != nil {
			return err
		}
		if err := s.ensureUniqueName(ctx, team.Name, team.ID()); err != nil {
			return err
		}
		return s.teams.Update(ctx, team)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(team)
	return nil
}

func (s *Service) DeleteTeam(ctx context.Context, command ports.DeleteTeamCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		team, err := s.team(ctx, command.ID)
		if err != nil {
			return err
		}
		return s.teams.Delete(ctx, team)
	}))
}

func (s *Service) GetTeamMembers(ctx context.Context, command ports.GetTeamMembersCommand, p presenter.AsyncPresenter[domain.Member]) error {
	query := s.members.CreateQuery()
	if command.TeamID != 0 {
		query = query.FilterByTeam(kernel.NewIntIdentifier(command.TeamID), command.InTeam)
	}
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Member]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.members.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

// CreateTeamMember adds the member to the team. A member can only be added once
// (domain.ErrTeamMemberExists).
func (s *Service) CreateTeamMember(ctx context.Context, command ports.CreateTeamMemberCommand, p presenter.Presenter[domain.Team]) error {
	uuid, err := kernel.ParseUniqueID(command.MemberUUID)
	if err != nil {
		return mapError(err)
	}
	var team domain.Team
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.team(ctx, command.TeamID)
		if err != nil {
			return err
		}
		member, err := s.members.Get(ctx, s.members.CreateQuery().FilterByUUID(uuid))
		if err != nil {
			return err
		}
		teamMember := domain.NewTeamMember(member, command.Active)
		if team, err = current.AddMember(teamMember); err != nil {
			return err
		}
		return s.teams.AddMember(ctx, team, teamMember)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(team)
	return nil
}

func (s *Service) team(ctx context.Context, id int64) (domain.Team, error) {
	if id <= 0 {
		return domain.Team{}, ports.ErrTeamNotFound
	}
	return s.teams.Get(ctx, s.teams.CreateQuery().FilterByID(kernel.NewIntIdentifier(id)))
}

func (s *Service) ensureUniqueName(ctx context.Context, name string, self domain.TeamIdentifier) error {
	existing, err := s.teams.Get(ctx, s.teams.CreateQuery().FilterByName(name))
	switch {
	case errors.Is(err, ports.ErrTeamNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID() == self:
		return nil
	}
	return ports.ErrTeamExists
}
