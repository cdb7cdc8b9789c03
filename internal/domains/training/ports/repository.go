package ports

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	ErrTrainingNotFound   = fmt.Errorf("training %w", kernel.ErrNotFound)
	ErrDefinitionNotFound = fmt.Errorf("training definition %w", kernel.ErrNotFound)
	ErrCoachNotFound      = fmt.Errorf("coach %w", kernel.ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("team %w", kernel.ErrNotFound)
)

// TrainingQuery selects trainings. Trainings are ordered by start date.
type TrainingQuery interface {
	FilterByID(id domain.TrainingIdentifier) TrainingQuery
	// FilterByYearMonth keeps the trainings starting in year, or in month of year
	// when month is not 0.
	FilterByYearMonth(year, month int) TrainingQuery
	// FilterByDates keeps the trainings starting between start and end (inclusive).
	FilterByDates(start, end kernel.Timestamp) TrainingQuery
	FilterByCoach(id domain.CoachIdentifier) TrainingQuery
	FilterByTeam(id domain.TeamIdentifier) TrainingQuery
	FilterByDefinition(id domain.TrainingDefinitionIdentifier) TrainingQuery
	FilterActive() TrainingQuery
	Count(ctx context.Context) (int, error)
}

// TrainingRepository stores trainings with their texts, coaches and teams.
type TrainingRepository interface {
	CreateQuery() TrainingQuery
	Get(ctx context.Context, query TrainingQuery) (domain.Training, error)
	// GetAll returns a page of trainings. Definitions, coaches and teams are loaded
	// for the whole page at once.
	GetAll(ctx context.Context, query TrainingQuery, limit, offset int) iter.Seq2[domain.Training, error]
	Create(ctx context.Context, training domain.Training) (domain.Training, error)
	Update(ctx context.Context, training domain.Training) error
	Delete(ctx context.Context, training domain.Training) error
	// ResetDefinition deletes the trainings of definition or, when deleteTrainings is
	// false, unlinks them from it.
	ResetDefinition(ctx context.Context, definition domain.TrainingDefinition, deleteTrainings bool) error
}

type TrainingDefinitionQuery interface {
	FilterByID(id domain.TrainingDefinitionIdentifier) TrainingDefinitionQuery
	FilterByIDs(ids ...domain.TrainingDefinitionIdentifier) TrainingDefinitionQuery
	Count(ctx context.Context) (int, error)
}

type TrainingDefinitionRepository interface {
	CreateQuery() TrainingDefinitionQuery
	Get(ctx context.Context, query TrainingDefinitionQuery) (domain.TrainingDefinition, error)
	GetAll(ctx context.Context, query TrainingDefinitionQuery, limit, offset int) iter.Seq2[domain.TrainingDefinition, error]
	Create(ctx context.Context, definition domain.TrainingDefinition) (domain.TrainingDefinition, error)
	Update(ctx context.Context, definition domain.TrainingDefinition) error
	Delete(ctx context.Context, definition domain.TrainingDefinition) error
}

type CoachQuery interface {
	FilterByID(id domain.CoachIdentifier) CoachQuery
	FilterByIDs(ids ...domain.CoachIdentifier) CoachQuery
	FilterByActive() CoachQuery
	Count(ctx context.Context) (int, error)
}

type CoachRepository interface {
	CreateQuery() CoachQuery
	Get(ctx context.Context, query CoachQuery) (domain.Coach, error)
	GetAll(ctx context.Context, query CoachQuery, limit, offset int) iter.Seq2[domain.Coach, error]
}

type TeamRepository interface {
	// GetByIDs returns the teams with the given ids, ordered by name.
	GetByIDs(ctx context.Context, ids ...domain.TeamIdentifier) ([]domain.Team, error)
}
