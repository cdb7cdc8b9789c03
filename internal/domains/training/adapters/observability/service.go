// Package observability decorates the training use cases with tracing, logging and metrics.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

const tracerName = "github.com/fbraem/kwai/internal/domains/training"

type Service struct {
	inner ports.Service
	obs   *observability.Decorator
}

func New(inner ports.Service, opts ...observability.Option) ports.Service {
	return &Service{inner: inner, obs: observability.NewDecorator("training", opts...)}
}

// Instrumented decorates inner with the process instruments.
func Instrumented(inner ports.Service, instruments *observability.Instruments) ports.Service {
	return New(inner, observability.WithInstruments(instruments, tracerName))
}

func (s *Service) GetTrainings(ctx context.Context, command ports.GetTrainingsCommand, p presenter.AsyncPresenter[domain.Training]) error {
	return s.obs.Run(ctx, "Service.GetTrainings", func(ctx context.Context) error {
		return s.inner.GetTrainings(ctx, command, p)
	},
		attribute.Int("limit", command.Limit),
		attribute.Int("offset", command.Offset),
		attribute.Int("year", command.Year),
		attribute.Int("month", command.Month),
		attribute.Int64("coach.id", command.CoachID),
		attribute.Int64("team.id", command.TeamID),
	)
}

func (s *Service) GetTraining(ctx context.Context, command ports.GetTrainingCommand, p presenter.Presenter[domain.Training]) error {
	return s.obs.Run(ctx, "Service.GetTraining", func(ctx context.Context) error {
		return s.inner.GetTraining(ctx, command, p)
	}, attribute.Int64("training.id", command.ID))
}

func (s *Service) CreateTraining(ctx context.Context, command ports.CreateTrainingCommand, p presenter.Presenter[domain.Training]) error {
	err := s.obs.Run(ctx, "Service.CreateTraining", func(ctx context.Context) error {
		return s.inner.CreateTraining(ctx, command, p)
	}, attribute.String("training.start", command.Start), attribute.Int64("user.id", command.Owner.ID.Value()))
	if err == nil {
		s.obs.Count(ctx, "trainings.created", 1)
	}
	return err
}

func (s *Service) UpdateTraining(ctx context.Context, command ports.UpdateTrainingCommand, p presenter.Presenter[domain.Training]) error {
	return s.obs.Run(ctx, "Service.UpdateTraining", func(ctx context.Context) error {
		return s.inner.UpdateTraining(ctx, command, p)
	}, attribute.Int64("training.id", command.ID), attribute.Int64("user.id", command.Owner.ID.Value()))
}

func (s *Service) DeleteTraining(ctx context.Context, command ports.DeleteTrainingCommand) error {
	err := s.obs.Run(ctx, "Service.DeleteTraining", func(ctx context.Context) error {
		return s.inner.DeleteTraining(ctx, command)
	}, attribute.Int64("training.id", command.ID))
	if err == nil {
		s.obs.Count(ctx, "trainings.deleted", 1)
	}
	return err
}

func (s *Service) GetTrainingDefinitions(ctx context.Context, command ports.GetTrainingDefinitionsCommand, p presenter.AsyncPresenter[domain.TrainingDefinition]) error {
	return s.obs.Run(ctx, "Service.GetTrainingDefinitions", func(ctx context.Context) error {
		return s.inner.GetTrainingDefinitions(ctx, command, p)
	}, attribute.Int("limit", command.Limit), attribute.Int("offset", command.Offset))
}

func (s *Service) GetTrainingDefinition(ctx context.Context, command ports.GetTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error {
	return s.obs.Run(ctx, "Service.GetTrainingDefinition", func(ctx context.Context) error {
		return s.inner.GetTrainingDefinition(ctx, command, p)
	}, attribute.Int64("definition.id", command.ID))
}

func (s *Service) CreateTrainingDefinition(ctx context.Context, command ports.CreateTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error {
	return s.obs.Run(ctx, "Service.CreateTrainingDefinition", func(ctx context.Context) error {
		return s.inner.CreateTrainingDefinition(ctx, command, p)
	}, attribute.String("definition.name", command.Name))
}

func (s *Service) UpdateTrainingDefinition(ctx context.Context, command ports.UpdateTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error {
	return s.obs.Run(ctx, "Service.UpdateTrainingDefinition", func(ctx context.Context) error {
		return s.inner.UpdateTrainingDefinition(ctx, command, p)
	}, attribute.Int64("definition.id", command.ID), attribute.String("definition.name", command.Name))
}

func (s *Service) DeleteTrainingDefinition(ctx context.Context, command ports.DeleteTrainingDefinitionCommand) error {
	return s.obs.Run(ctx, "Service.DeleteTrainingDefinition", func(ctx context.Context) error {
		return s.inner.DeleteTrainingDefinition(ctx, command)
	}, attribute.Int64("definition.id", command.ID), attribute.Bool("delete_trainings", command.DeleteTrainings))
}

func (s *Service) GetCoaches(ctx context.Context, command ports.GetCoachesCommand, p presenter.AsyncPresenter[domain.Coach]) error {
	return s.obs.Run(ctx, "Service.GetCoaches", func(ctx context.Context) error {
		return s.inner.GetCoaches(ctx, command, p)
	}, attribute.Bool("active", command.Active))
}

var _ ports.Service = (*Service)(nil)
