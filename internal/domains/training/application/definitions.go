package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

func (s *Service) GetTrainingDefinitions(ctx context.Context, command ports.GetTrainingDefinitionsCommand, p presenter.AsyncPresenter[domain.TrainingDefinition]) error {
	query := s.definitions.CreateQuery()
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.TrainingDefinition]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.definitions.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) GetTrainingDefinition(ctx context.Context, command ports.GetTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error {
	definition, err := s.definition(ctx, command.ID)
	if err != nil {
		return mapError(err)
	}
	p.Present(definition)
	return nil
}

func (s *Service) CreateTrainingDefinition(ctx context.Context, command ports.CreateTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error {
	var definition domain.TrainingDefinition
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		definition, err = s.buildDefinition(ctx, domain.TrainingDefinition{TraceableTime: kernel.NewTraceableTime()}, command.TrainingDefinitionCommand)
		if err != nil {
			return err
		}
		definition.Owner = command.Owner
		definition, err = s.definitions.Create(ctx, definition)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(definition)
	return nil
}

func (s *Service) UpdateTrainingDefinition(ctx context.Context, command ports.UpdateTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error {
	var definition domain.TrainingDefinition
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.definition(ctx, command.ID)
		if err != nil {
			return err
		}
		current.TraceableTime = current.TraceableTime.MarkForUpdate()
		if definition, err = s.buildDefinition(ctx, current, command.TrainingDefinitionCommand); err != nil {
			return err
		}
		return s.definitions.Update(ctx, definition)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(definition)
	return nil
}

// DeleteTrainingDefinition removes the definition together with its trainings, or
// keeps the trainings without definition.
func (s *Service) DeleteTrainingDefinition(ctx context.Context, command ports.DeleteTrainingDefinitionCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		definition, err := s.definition(ctx, command.ID)
		if err != nil {
			return err
		}
		if err := s.trainings.ResetDefinition(ctx, definition, command.DeleteTrainings); err != nil {
			return err
		}
		return s.definitions.Delete(ctx, definition)
	}))
}

func (s *Service) GetCoaches(ctx context.Context, command ports.GetCoachesCommand, p presenter.AsyncPresenter[domain.Coach]) error {
	query := s.coaches.CreateQuery()
	if command.Active {
		query = query.FilterByActive()
	}
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Coach]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.coaches.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) buildDefinition(ctx context.Context, definition domain.TrainingDefinition, command ports.TrainingDefinitionCommand) (domain.TrainingDefinition, error) {
	weekday, err := kernel.NewWeekday(command.Weekday)
	if err != nil {
		return domain.TrainingDefinition{}, err
	}
	start, err := kernel.ParseTimeOfDay(command.StartTime)
	if err != nil {
		return domain.TrainingDefinition{}, err
	}
	var end kernel.TimeOfDay
	if command.EndTime != "" {
		if end, err = kernel.ParseTimeOfDay(command.EndTime); err != nil {
			return domain.TrainingDefinition{}, err
		}
	}
	if definition.Period, err = kernel.NewTimePeriod(start, end, command.Timezone); err != nil {
		return domain.TrainingDefinition{}, err
	}
	definition.Name = command.Name
	definition.Description = command.Description
	definition.Weekday = weekday
	definition.Active = command.Active
	definition.Location = command.Location
	definition.Remark = command.Remark

	definition.Team = nil
	if command.TeamID > 0 {
		teams, err := s.teams.GetByIDs(ctx, kernel.NewIntIdentifier(command.TeamID))
		if err != nil {
			return domain.TrainingDefinition{}, err
		}
		if len(teams) == 0 {
			return domain.TrainingDefinition{}, fmt.Errorf("%w: team %d does not exist", ErrInvalidInput, command.TeamID)
		}
		definition.Team = &teams[0]
	}
	if err := definition.Validate(); err != nil {
		return domain.TrainingDefinition{}, err
	}
	return definition, nil
}

func (s *Service) definition(ctx context.Context, id int64) (domain.TrainingDefinition, error) {
	if id <= 0 {
		return domain.TrainingDefinition{}, ports.ErrDefinitionNotFound
	}
	definition, err := s.definitions.Get(ctx, s.definitions.CreateQuery().FilterByID(kernel.NewIntIdentifier(id)))
	if errors.Is(err, ports.ErrDefinitionNotFound) {
		return domain.TrainingDefinition{}, fmt.Errorf("%w: %d", ports.ErrDefinitionNotFound, id)
	}
	return definition, err
}
