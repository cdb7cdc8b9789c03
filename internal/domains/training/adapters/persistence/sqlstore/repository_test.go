package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/training/adapters/persistence/sqlstore"
	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/domains/training/trainingtest"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/platform/database/databasetest"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type fixture struct {
	db          *database.Database
	owner       kernel.Owner
	trainings   *sqlstore.TrainingRepository
	definitions *sqlstore.TrainingDefinitionRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := databasetest.New(t)
	return fixture{
		db:          db,
		owner:       databasetest.CreateOwner(t, db, "jigoro@kwai.test", kernel.Name{FirstName: "Jigoro", LastName: "Kano"}),
		trainings:   sqlstore.NewTrainingRepository(db),
		definitions: sqlstore.NewTrainingDefinitionRepository(db),
	}
}

func (f fixture) training(t *testing.T, title string, start time.Time) domain.Training {
	t.Helper()
	period, err := kernel.NewPeriod(kernel.NewTimestamp(start), kernel.NewTimestamp(start.Add(90*time.Minute)))
	require.NoError(t, err)
	return domain.Training{
		Texts: kernel.NewText(kernel.LocaleText{
			Locale:        kernel.LocaleNL,
			Format:        kernel.FormatMarkdown,
			Title:         title,
			Summary:       "Randori",
			Author:        f.owner,
			TraceableTime: kernel.NewTraceableTime(),
		}),
		Period:        period,
		Active:        true,
		TraceableTime: kernel.NewTraceableTime(),
	}
}

func (f fixture) definition(t *testing.T, name string, team *domain.Team) domain.TrainingDefinition {
	t.Helper()
	start, err := kernel.ParseTimeOfDay("19:00")
	require.NoError(t, err)
	end, err := kernel.ParseTimeOfDay("20:30")
	require.NoError(t, err)
	period, err := kernel.NewTimePeriod(start, end, "Europe/Brussels")
	require.NoError(t, err)
	definition, err := f.definitions.Create(context.Background(), domain.TrainingDefinition{
		Name:          name,
		Weekday:       kernel.Wednesday,
		Period:        period,
		Active:        true,
		Team:          team,
		Owner:         f.owner,
		TraceableTime: kernel.NewTraceableTime(),
	})
	require.NoError(t, err)
	return definition
}

func collect(t *testing.T, f fixture, query ports.TrainingQuery, limit, offset int) []domain.Training {
	t.Helper()
	var trainings []domain.Training
	for training, err := range f.trainings.GetAll(context.Background(), query, limit, offset) {
		require.NoError(t, err)
		trainings = append(trainings, training)
	}
	return trainings
}

func TestTrainingRepository_CreateLoadsRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := trainingtest.CreateTeam(t, f.db, "U11")
	coach := trainingtest.CreateCoach(t, f.db, "C1", kernel.Name{FirstName: "Kyuzo", LastName: "Mifune"})
	definition := f.definition(t, "Wednesday U11", &team)

	training := f.training(t, "Randori", time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC))
	training.Texts = training.Texts.WithTranslation(kernel.LocaleText{
		Locale: kernel.LocaleEN, Format: kernel.FormatMarkdown, Title: "Sparring", Author: f.owner,
		TraceableTime: kernel.NewTraceableTime(),
	})
	training.Definition = &definition
	training.Teams = []domain.Team{team}
	training.Coaches = []domain.TrainingCoach{{Coach: coach, Type: domain.CoachTypeHead, Present: true, Owner: f.owner}}
	created, err := f.trainings.Create(ctx, training)
	require.NoError(t, err)
	require.False(t, created.ID().IsEmpty())

	got, err := f.trainings.Get(ctx, f.trainings.CreateQuery().FilterByID(created.ID()))
	require.NoError(t, err)
	require.Equal(t, 2, got.Texts.Len())
	english, ok := got.Texts.Translation(kernel.LocaleEN)
	require.True(t, ok)
	require.Equal(t, "Sparring", english.Title)
	require.Equal(t, f.owner.UUID, english.Author.UUID)
	require.NotNil(t, got.Definition)
	require.Equal(t, "Wednesday U11", got.Definition.Name)
	require.Equal(t, "U11", got.Definition.Team.Name)
	require.Len(t, got.Coaches, 1)
	require.Equal(t, "Mifune", got.Coaches[0].Coach.Name.LastName)
	require.True(t, got.Coaches[0].Present)
	require.Len(t, got.Teams, 1)
	require.Equal(t, team.ID(), got.Teams[0].ID())
}

func TestTrainingRepository_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coach := trainingtest.CreateCoach(t, f.db, "C1", kernel.Name{FirstName: "Kyuzo", LastName: "Mifune"})
	march := f.training(t, "March", time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC))
	march.Coaches = []domain.TrainingCoach{{Coach: coach, Owner: f.owner}}
	_, err := f.trainings.Create(ctx, march)
	require.NoError(t, err)
	_, err = f.trainings.Create(ctx, f.training(t, "April", time.Date(2024, 4, 3, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = f.trainings.Create(ctx, f.training(t, "May", time.Date(2025, 5, 7, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	trainings := collect(t, f, f.trainings.CreateQuery().FilterByYearMonth(2024, 0), 0, 0)
	require.Len(t, trainings, 2)
	title := func(training domain.Training) string {
		text, _ := training.Texts.Translation(kernel.LocaleNL)
		return text.Title
	}
	require.Equal(t, "March", title(trainings[0]))

	trainings = collect(t, f, f.trainings.CreateQuery().FilterByYearMonth(2024, 4), 0, 0)
	require.Len(t, trainings, 1)
	require.Equal(t, "April", title(trainings[0]))

	trainings = collect(t, f, f.trainings.CreateQuery().FilterByCoach(coach.ID()), 0, 0)
	require.Len(t, trainings, 1)
	require.Equal(t, "March", title(trainings[0]))

	trainings = collect(t, f, f.trainings.CreateQuery(), 1, 1)
	require.Len(t, trainings, 1)
	require.Equal(t, "April", title(trainings[0]))

	count, err := f.trainings.CreateQuery().FilterByDates(
		kernel.NewTimestamp(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		kernel.NewTimestamp(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
	).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestTrainingRepository_UpdateReplacesTexts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	training, err := f.trainings.Create(ctx, f.training(t, "Kata", time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	training.Texts = kernel.NewText(kernel.LocaleText{
		Locale: kernel.LocaleEN, Format: kernel.FormatHTML, Title: "Kata", Author: f.owner,
		TraceableTime: kernel.NewTraceableTime(),
	})
	training.Cancelled = true
	training.TraceableTime = training.TraceableTime.MarkForUpdate()
	require.NoError(t, f.trainings.Update(ctx, training))

	got, err := f.trainings.Get(ctx, f.trainings.CreateQuery().FilterByID(training.ID()))
	require.NoError(t, err)
	require.True(t, got.Cancelled)
	require.Equal(t, 1, got.Texts.Len())
	_, ok := got.Texts.Translation(kernel.LocaleNL)
	require.False(t, ok)

	require.NoError(t, f.trainings.Delete(ctx, got))
	_, err = f.trainings.Get(ctx, f.trainings.CreateQuery().FilterByID(training.ID()))
	require.ErrorIs(t, err, ports.ErrTrainingNotFound)
}

func TestTrainingRepository_ResetDefinition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	definition := f.definition(t, "Monday", nil)
	for _, day := range []int{4, 11} {
		training := f.training(t, "Monday", time.Date(2024, 3, day, 18, 0, 0, 0, time.UTC))
		training.Definition = &definition
		_, err := f.trainings.Create(ctx, training)
		require.NoError(t, err)
	}

	require.NoError(t, f.trainings.ResetDefinition(ctx, definition, false))
	count, err := f.trainings.CreateQuery().FilterByDefinition(definition.ID()).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	count, err = f.trainings.CreateQuery().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	training := f.training(t, "Monday", time.Date(2024, 3, 18, 18, 0, 0, 0, time.UTC))
	training.Definition = &definition
	_, err = f.trainings.Create(ctx, training)
	require.NoError(t, err)
	require.NoError(t, f.trainings.ResetDefinition(ctx, definition, true))
	count, err = f.trainings.CreateQuery().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestTrainingDefinitionRepository_GetWithoutTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.definition(t, "Adults", nil)

	got, err := f.definitions.Get(ctx, f.definitions.CreateQuery().FilterByID(created.ID()))
	require.NoError(t, err)
	require.Nil(t, got.Team)
	require.Equal(t, kernel.Wednesday, got.Weekday)
	require.Equal(t, "19:00", got.Period.Start().String())
	require.Equal(t, "20:30", got.Period.End().String())
	require.Equal(t, "Europe/Brussels", got.Period.Timezone())
	require.Equal(t, f.owner.UUID, got.Owner.UUID)

	_, err = f.definitions.Get(ctx, f.definitions.CreateQuery().FilterByID(kernel.NewIntIdentifier(99)))
	require.ErrorIs(t, err, ports.ErrDefinitionNotFound)
}

func TestCoachRepository_FilterByActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trainingtest.CreateCoach(t, f.db, "C1", kernel.Name{FirstName: "Kyuzo", LastName: "Mifune"})
	trainingtest.CreateCoach(t, f.db, "C2", kernel.Name{FirstName: "Jigoro", LastName: "Kano"})
	coaches := sqlstore.NewCoachRepository(f.db)

	var names []string
	for coach, err := range coaches.GetAll(ctx, coaches.CreateQuery().FilterByActive(), 0, 0) {
		require.NoError(t, err)
		names = append(names, coach.Name.LastName)
	}
	require.Equal(t, []string{"Kano", "Mifune"}, names)
}

func TestTrainingRepository_CountMatchesDrainedTrainings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for day := 4; day <= 7; day++ {
		training := f.training(t, "Randori", time.Date(2024, 3, day, 18, 0, 0, 0, time.UTC))
		training.Texts = training.Texts.WithTranslation(kernel.LocaleText{
			Locale: kernel.LocaleEN, Format: kernel.FormatMarkdown, Title: "Sparring", Author: f.owner,
			TraceableTime: kernel.NewTraceableTime(),
		})
		_, err := f.trainings.Create(ctx, training)
		require.NoError(t, err)
	}
	query := f.trainings.CreateQuery().FilterByYearMonth(2024, 3)

	require.Len(t, collect(t, f, query, 2, 1), 2)
	count, err := query.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, count)
	trainings := collect(t, f, query, 0, 0)
	require.Len(t, trainings, count)
	for _, training := range trainings {
		require.Equal(t, 2, training.Texts.Len())
	}
}

func TestTrainingRepository_TrainingNeedsText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	untitled := f.training(t, "Randori", time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC))
	untitled.Texts = kernel.Text{}
	_, err := f.trainings.Create(ctx, untitled)
	require.ErrorIs(t, err, domain.ErrTextRequired)

	stored, err := f.trainings.Create(ctx, f.training(t, "Randori", time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(ctx, "training_contents", database.Where("training_id = ?", stored.ID().Value())))

	count, err := f.trainings.CreateQuery().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, collect(t, f, f.trainings.CreateQuery(), 0, 0))
	_, err = f.trainings.Get(ctx, f.trainings.CreateQuery().FilterByID(stored.ID()))
	require.ErrorIs(t, err, ports.ErrTrainingNotFound)
}
