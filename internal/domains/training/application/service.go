package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
	"github.com/fbraem/kwai/internal/shared/uow"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates the training use cases.
type Service struct {
	trainings   ports.TrainingRepository
	definitions ports.TrainingDefinitionRepository
	coaches     ports.CoachRepository
	teams       ports.TeamRepository
	uow         uow.UnitOfWork
}

func NewService(
	trainings ports.TrainingRepository,
	definitions ports.TrainingDefinitionRepository,
	coaches ports.CoachRepository,
	teams ports.TeamRepository,
	unitOfWork uow.UnitOfWork,
) *Service {
	return &Service{trainings: trainings, definitions: definitions, coaches: coaches, teams: teams, uow: unitOfWork}
}

func (s *Service) GetTrainings(ctx context.Context, command ports.GetTrainingsCommand, p presenter.AsyncPresenter[domain.Training]) error {
	query := s.trainings.CreateQuery()
	if command.Year > 0 {
		query = query.FilterByYearMonth(command.Year, command.Month)
	}
	if command.Start != "" && command.End != "" {
		start, err := kernel.ParseTimestamp(command.Start)
		if err != nil {
			return mapError(err)
		}
		end, err := kernel.ParseTimestamp(command.End)
		if err != nil {
			return mapError(err)
		}
		query = query.FilterByDates(start, end)
	}
	if command.CoachID > 0 {
		query = query.FilterByCoach(kernel.NewIntIdentifier(command.CoachID))
	}
	if command.TeamID > 0 {
		query = query.FilterByTeam(kernel.NewIntIdentifier(command.TeamID))
	}
	if command.DefinitionID > 0 {
		query = query.FilterByDefinition(kernel.NewIntIdentifier(command.DefinitionID))
	}
	if command.Active {
		query = query.FilterActive()
	}
	count, err := query.Count(ctx)
	if err != nil {
		return mapError(err)
	}
	return mapError(p.Present(ctx, presenter.IterableResult[domain.Training]{
		Count:    count,
		Offset:   command.Offset,
		Limit:    command.Limit,
		Iterator: s.trainings.GetAll(ctx, query, command.Limit, command.Offset),
	}))
}

func (s *Service) GetTraining(ctx context.Context, command ports.GetTrainingCommand, p presenter.Presenter[domain.Training]) error {
	training, err := s.training(ctx, command.ID)
	if err != nil {
		return mapError(err)
	}
	p.Present(training)
	return nil
}

func (s *Service) CreateTraining(ctx context.Context, command ports.CreateTrainingCommand, p presenter.Presenter[domain.Training]) error {
	var training domain.Training
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		training, err = s.buildTraining(ctx, domain.Training{TraceableTime: kernel.NewTraceableTime()}, command.TrainingCommand, command.Owner)
		if err != nil {
			return err
		}
		training, err = s.trainings.Create(ctx, training)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(training)
	return nil
}

func (s *Service) UpdateTraining(ctx context.Context, command ports.UpdateTrainingCommand, p presenter.Presenter[domain.Training]) error {
	var training domain.Training
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		current, err := s.training(ctx, command.ID)
		if err != nil {
			return err
		}
		current.TraceableTime = current.TraceableTime.MarkForUpdate()
		if training, err = s.buildTraining(ctx, current, command.TrainingCommand, command.Owner); err != nil {
			return err
		}
		return s.trainings.Update(ctx, training)
	})
	if err != nil {
		return mapError(err)
	}
	p.Present(training)
	return nil
}

func (s *Service) DeleteTraining(ctx context.Context, command ports.DeleteTrainingCommand) error {
	return mapError(s.uow.Do(ctx, func(ctx context.Context) error {
		training, err := s.training(ctx, command.ID)
		if err != nil {
			return err
		}
		return s.trainings.Delete(ctx, training)
	}))
}

// buildTraining applies command on training. Texts keep their creation time when
// the locale already existed.
func (s *Service) buildTraining(ctx context.Context, training domain.Training, command ports.TrainingCommand, owner kernel.Owner) (domain.Training, error) {
	start, err := kernel.ParseTimestamp(command.Start)
	if err != nil {
		return domain.Training{}, err
	}
	end, err := kernel.ParseTimestamp(command.End)
	if err != nil {
		return domain.Training{}, err
	}
	if end.IsEmpty() {
		return domain.Training{}, fmt.Errorf("%w: a training needs an end", kernel.ErrValidation)
	}
	if training.Period, err = kernel.NewPeriod(start, end); err != nil {
		return domain.Training{}, err
	}

	texts := make([]kernel.LocaleText, 0, len(command.Texts))
	for _, textCommand := range command.Texts {
		text, err := newLocaleText(textCommand, owner)
		if err != nil {
			return domain.Training{}, err
		}
		if existing, ok := training.Texts.Translation(text.Locale); ok {
			text.TraceableTime = existing.TraceableTime.MarkForUpdate()
		}
		texts = append(texts, text)
	}
	training.Texts = kernel.NewText(texts...)
	training.Active = command.Active
	training.Cancelled = command.Cancelled
	training.Location = command.Location
	training.Remark = command.Remark

	training.Definition = nil
	if command.DefinitionID > 0 {
		definition, err := s.definitions.Get(ctx, s.definitions.CreateQuery().FilterByID(kernel.NewIntIdentifier(command.DefinitionID)))
		if errors.Is(err, ports.ErrDefinitionNotFound) {
			return domain.Training{}, fmt.Errorf("%w: training definition %d does not exist", ErrInvalidInput, command.DefinitionID)
		}
		if err != nil {
			return domain.Training{}, err
		}
		training.Definition = &definition
	}

	if training.Coaches, err = s.trainingCoaches(ctx, command.Coaches, owner); err != nil {
		return domain.Training{}, err
	}

	teamIDs := make([]domain.TeamIdentifier, 0, len(command.TeamIDs))
	for _, id := range command.TeamIDs {
		teamIDs = append(teamIDs, kernel.NewIntIdentifier(id))
	}
	if training.Teams, err = s.teams.GetByIDs(ctx, teamIDs...); err != nil {
		return domain.Training{}, err
	}
	if len(training.Teams) != len(teamIDs) {
		return domain.Training{}, fmt.Errorf("%w: unknown team in %v", ErrInvalidInput, command.TeamIDs)
	}

	if err := training.Validate(); err != nil {
		return domain.Training{}, err
	}
	return training, nil
}

func (s *Service) trainingCoaches(ctx context.Context, commands []ports.TrainingCoachCommand, owner kernel.Owner) ([]domain.TrainingCoach, error) {
	if len(commands) == 0 {
		return nil, nil
	}
	ids := make([]domain.CoachIdentifier, 0, len(commands))
	for _, command := range commands {
		ids = append(ids, kernel.NewIntIdentifier(command.ID))
	}
	found := map[int64]domain.Coach{}
	for coach, err := range s.coaches.GetAll(ctx, s.coaches.CreateQuery().FilterByIDs(ids...), 0, 0) {
		if err != nil {
			return nil, err
		}
		found[coach.ID().Value()] = coach
	}
	coaches := make([]domain.TrainingCoach, 0, len(commands))
	for _, command := range commands {
		coach, ok := found[command.ID]
		if !ok {
			return nil, fmt.Errorf("%w: coach %d does not exist", ErrInvalidInput, command.ID)
		}
		coachType := domain.CoachTypeAssistant
		if command.Head {
			coachType = domain.CoachTypeHead
		}
		coaches = append(coaches, domain.TrainingCoach{
			Coach:   coach,
			Type:    coachType,
			Present: command.Present,
			Payed:   command.Payed,
			Remark:  command.Remark,
			Owner:   owner,
		})
	}
	return coaches, nil
}

func newLocaleText(command ports.TextCommand, author kernel.Owner) (kernel.LocaleText, error) {
	locale, err := kernel.ParseLocale(command.Locale)
	if err != nil {
		return kernel.LocaleText{}, err
	}
	format, err := kernel.ParseDocumentFormat(command.Format)
	if err != nil {
		return kernel.LocaleText{}, err
	}
	return kernel.LocaleText{
		Locale:        locale,
		Format:        format,
		Title:         command.Title,
		Summary:       command.Summary,
		Content:       command.Content,
		Author:        author,
		TraceableTime: kernel.NewTraceableTime(),
	}, nil
}

func (s *Service) training(ctx context.Context, id int64) (domain.Training, error) {
	if id <= 0 {
		return domain.Training{}, ports.ErrTrainingNotFound
	}
	return s.trainings.Get(ctx, s.trainings.CreateQuery().FilterByID(kernel.NewIntIdentifier(id)))
}
