package ports

import (
	"context"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

// GetTrainingsCommand selects a page of trainings. Zero values disable a filter.
// Start and End use the timestamp layout and are only applied together.
type GetTrainingsCommand struct {
	Limit        int
	Offset       int
	Year         int
	Month        int
	Start        string
	End          string
	CoachID      int64
	TeamID       int64
	DefinitionID int64
	Active       bool
}

type GetTrainingCommand struct {
	ID int64
}

type TextCommand struct {
	Locale  string
	Format  string
	Title   string
	Summary string
	Content string
}

type TrainingCoachCommand struct {
	ID      int64
	Head    bool
	Present bool
	Payed   bool
	Remark  string
}

// TrainingCommand holds the properties of a training to create or update.
type TrainingCommand struct {
	Texts        []TextCommand
	Start        string
	End          string
	Active       bool
	Cancelled    bool
	Location     string
	Remark       string
	DefinitionID int64
	Coaches      []TrainingCoachCommand
	TeamIDs      []int64
}

type CreateTrainingCommand struct {
	TrainingCommand
	Owner kernel.Owner
}

type UpdateTrainingCommand struct {
	ID int64
	TrainingCommand
	Owner kernel.Owner
}

type DeleteTrainingCommand struct {
	ID int64
}

type GetTrainingDefinitionsCommand struct {
	Limit  int
	Offset int
}

type GetTrainingDefinitionCommand struct {
	ID int64
}

// TrainingDefinitionCommand holds the properties of a definition. Times use HH:MM.
type TrainingDefinitionCommand struct {
	Name        string
	Description string
	Weekday     int
	StartTime   string
	EndTime     string
	Timezone    string
	Active      bool
	Location    string
	Remark      string
	TeamID      int64
}

type CreateTrainingDefinitionCommand struct {
	TrainingDefinitionCommand
	Owner kernel.Owner
}

type UpdateTrainingDefinitionCommand struct {
	ID int64
	TrainingDefinitionCommand
	Owner kernel.Owner
}

// DeleteTrainingDefinitionCommand deletes a definition. The trainings created from it
// are deleted when DeleteTrainings is set, otherwise they are kept without definition.
type DeleteTrainingDefinitionCommand struct {
	ID              int64
	DeleteTrainings bool
}

type GetCoachesCommand struct {
	Active bool
	Limit  int
	Offset int
}

// Service defines the training use cases.
type Service interface {
	GetTrainings(ctx context.Context, command GetTrainingsCommand, p presenter.AsyncPresenter[domain.Training]) error
	GetTraining(ctx context.Context, command GetTrainingCommand, p presenter.Presenter[domain.Training]) error
	CreateTraining(ctx context.Context, command CreateTrainingCommand, p presenter.Presenter[domain.Training]) error
	UpdateTraining(ctx context.Context, command UpdateTrainingCommand, p presenter.Presenter[domain.Training]) error
	DeleteTraining(ctx context.Context, command DeleteTrainingCommand) error

	GetTrainingDefinitions(ctx context.Context, command GetTrainingDefinitionsCommand, p presenter.AsyncPresenter[domain.TrainingDefinition]) error
	GetTrainingDefinition(ctx context.Context, command GetTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error
	CreateTrainingDefinition(ctx context.Context, command CreateTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error
	UpdateTrainingDefinition(ctx context.Context, command UpdateTrainingDefinitionCommand, p presenter.Presenter[domain.TrainingDefinition]) error
	DeleteTrainingDefinition(ctx context.Context, command DeleteTrainingDefinitionCommand) error

	GetCoaches(ctx context.Context, command GetCoachesCommand, p presenter.AsyncPresenter[domain.Coach]) error
}
