package sqlstore

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/domains/training/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.TrainingQuery      = trainingQuery{}
	_ ports.TrainingRepository = (*TrainingRepository)(nil)
)

type trainingQuery struct {
	query database.Query
}

// newTrainingQuery pages on trainings having a text; the detail statement adds a
// row per text.
func newTrainingQuery(db *database.Database) trainingQuery {
	columns := append(trainingsTable.Aliases(), trainingContentsTable.Aliases()...)
	columns = append(columns, usersTable.Aliases()...)
	detail := trainingsTable.Select().
		Join(trainingContentsTable.Ref(), trainingContentsTable.Column("training_id")+" = "+trainingsTable.Column("id")).
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+trainingContentsTable.Column("user_id")).
		Columns(columns...)
	withText := trainingContentsTable.Select().Columns(trainingContentsTable.Column("training_id"))
	filter := trainingsTable.Select().Where(trainingsTable.Column("id")+" IN (?)", withText)
	query := database.NewQuery(db, filter, trainingsTable.Column("id")).
		WithDetail(detail, trainingsTable.Column("id")).
		OrderBy(trainingsTable.Column("start_date"))
	return trainingQuery{query: query}
}

func (q trainingQuery) where(sql string, args ...any) trainingQuery {
	return trainingQuery{query: q.query.Where(sql, args...)}
}

func (q trainingQuery) FilterByID(id domain.TrainingIdentifier) ports.TrainingQuery {
	return q.where(trainingsTable.Column("id")+" = ?", id.Value())
}

func (q trainingQuery) FilterByYearMonth(year, month int) ports.TrainingQuery {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	if month > 0 {
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	}
	column := trainingsTable.Column("start_date")
	return q.where(column+" >= ? AND "+column+" < ?", start, end)
}

func (q trainingQuery) FilterByDates(start, end kernel.Timestamp) ports.TrainingQuery {
	column := trainingsTable.Column("start_date")
	return q.where(column+" >= ? AND "+column+" <= ?", start.Time(), end.Time())
}

func (q trainingQuery) FilterByCoach(id domain.CoachIdentifier) ports.TrainingQuery {
	coaches := trainingCoachesTable.Select().Columns("training_id").Where("coach_id = ?", id.Value())
	return q.where(trainingsTable.Column("id")+" IN (?)", coaches)
}

func (q trainingQuery) FilterByTeam(id domain.TeamIdentifier) ports.TrainingQuery {
	teams := trainingTeamsTable.Select().Columns("training_id").Where("team_id = ?", id.Value())
	return q.where(trainingsTable.Column("id")+" IN (?)", teams)
}

func (q trainingQuery) FilterByDefinition(id domain.TrainingDefinitionIdentifier) ports.TrainingQuery {
	return q.where(trainingsTable.Column("definition_id")+" = ?", id.Value())
}

func (q trainingQuery) FilterActive() ports.TrainingQuery {
	return q.where(trainingsTable.Column("active")+" = ?", 1)
}

func (q trainingQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// TrainingRepository stores trainings in the trainings table and its child tables.
type TrainingRepository struct {
	db          *database.Database
	definitions *TrainingDefinitionRepository
}

func NewTrainingRepository(db *database.Database) *TrainingRepository {
	return &TrainingRepository{db: db, definitions: NewTrainingDefinitionRepository(db)}
}

func (r *TrainingRepository) CreateQuery() ports.TrainingQuery {
	return newTrainingQuery(r.db)
}

func (r *TrainingRepository) Get(ctx context.Context, query ports.TrainingQuery) (domain.Training, error) {
	for training, err := range r.GetAll(ctx, query, 1, 0) {
		return training, err
	}
	return domain.Training{}, ports.ErrTrainingNotFound
}

// GetAll reads the page before yielding: the related definitions, coaches and teams
// are loaded with one statement each, and no statement may run while rows are open.
func (r *TrainingRepository) GetAll(ctx context.Context, query ports.TrainingQuery, limit, offset int) iter.Seq2[domain.Training, error] {
	return func(yield func(domain.Training, error) bool) {
		q, ok := query.(trainingQuery)
		if !ok {
			yield(domain.Training{}, fmt.Errorf("unsupported training query %T", query))
			return
		}
		groups := database.Group(database.Fetch[trainingQueryRow](ctx, q.query, limit, offset), func(row trainingQueryRow) int64 {
			return row.Training.ID
		})
		var trainings []domain.Training
		for training, err := range database.Map(groups, trainingFromRows) {
			if err != nil {
				yield(domain.Training{}, err)
				return
			}
			trainings = append(trainings, training)
		}
		if err := r.loadRelations(ctx, trainings); err != nil {
			yield(domain.Training{}, err)
			return
		}
		for _, training := range trainings {
			if !yield(training, nil) {
				return
			}
		}
	}
}

func (r *TrainingRepository) loadRelations(ctx context.Context, trainings []domain.Training) error {
	if len(trainings) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(trainings))
	var definitionIDs []domain.TrainingDefinitionIdentifier
	for _, training := range trainings {
		ids = append(ids, training.ID().Value())
		if training.Definition != nil {
			definitionIDs = append(definitionIDs, training.Definition.ID())
		}
	}

	definitions := map[int64]domain.TrainingDefinition{}
	if len(definitionIDs) > 0 {
		query := r.definitions.CreateQuery().FilterByIDs(definitionIDs...)
		for definition, err := range r.definitions.GetAll(ctx, query, 0, 0) {
			if err != nil {
				return err
			}
			definitions[definition.ID().Value()] = definition
		}
	}

	coaches, err := r.coaches(ctx, ids)
	if err != nil {
		return err
	}
	teams, err := r.teams(ctx, ids)
	if err != nil {
		return err
	}

	for i, training := range trainings {
		if training.Definition != nil {
			if definition, ok := definitions[training.Definition.ID().Value()]; ok {
				trainings[i].Definition = &definition
			}
		}
		trainings[i].Coaches = coaches[training.ID().Value()]
		trainings[i].Teams = teams[training.ID().Value()]
	}
	return nil
}

func (r *TrainingRepository) coaches(ctx context.Context, trainingIDs []int64) (map[int64][]domain.TrainingCoach, error) {
	columns := append(trainingCoachesTable.Aliases(), coachesTable.Aliases()...)
	columns = append(columns, personsTable.Aliases()...)
	columns = append(columns, usersTable.Aliases()...)
	sel := trainingCoachesTable.Select().
		Join(coachesTable.Ref(), coachesTable.Column("id")+" = "+trainingCoachesTable.Column("coach_id")).
		Join(membersTable.Ref(), membersTable.Column("id")+" = "+coachesTable.Column("member_id")).
		Join(personsTable.Ref(), personsTable.Column("id")+" = "+membersTable.Column("person_id")).
		Join(usersTable.Ref(), usersTable.Column("id")+" = "+trainingCoachesTable.Column("user_id")).
		Columns(columns...).
		Where(trainingCoachesTable.Column("training_id")+" IN ?", trainingIDs).
		OrderBy(trainingCoachesTable.Column("coach_type"), personsTable.Column("lastname"))
	rows, err := database.SelectAll[trainingCoachQueryRow](ctx, r.db, sel)
	if err != nil {
		return nil, err
	}
	coaches := map[int64][]domain.TrainingCoach{}
	for _, row := range rows {
		coach, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		coaches[row.TrainingCoach.TrainingID] = append(coaches[row.TrainingCoach.TrainingID], coach)
	}
	return coaches, nil
}

func (r *TrainingRepository) teams(ctx context.Context, trainingIDs []int64) (map[int64][]domain.Team, error) {
	sel := trainingTeamsTable.Select().
		Join(teamsTable.Ref(), teamsTable.Column("id")+" = "+trainingTeamsTable.Column("team_id")).
		Columns(append(trainingTeamsTable.Aliases(), teamsTable.Aliases()...)...).
		Where(trainingTeamsTable.Column("training_id")+" IN ?", trainingIDs).
		OrderBy(teamsTable.Column("name"))
	rows, err := database.SelectAll[trainingTeamQueryRow](ctx, r.db, sel)
	if err != nil {
		return nil, err
	}
	teams := map[int64][]domain.Team{}
	for _, row := range rows {
		teams[row.TrainingTeam.TrainingID] = append(teams[row.TrainingTeam.TrainingID], row.Team.toDomain())
	}
	return teams, nil
}

func (r *TrainingRepository) Create(ctx context.Context, training domain.Training) (domain.Training, error) {
	if training.Texts.Len() == 0 {
		return domain.Training{}, domain.ErrTextRequired
	}
	err := r.db.Transaction(ctx, func(ctx context.Context) error {
		id, err := r.db.Insert(ctx, trainingsTable.Name(), ptr(newTrainingRow(training)))
		if err != nil {
			return err
		}
		training.Entity = training.WithID(kernel.NewIntIdentifier(id))
		return r.insertChildren(ctx, training)
	})
	if err != nil {
		return domain.Training{}, err
	}
	return training, nil
}

// Update replaces the texts, coaches and teams of the training.
func (r *TrainingRepository) Update(ctx context.Context, training domain.Training) error {
	if training.Texts.Len() == 0 {
		return domain.ErrTextRequired
	}
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Update(ctx, trainingsTable.Name(), byID(training.ID()), ptr(newTrainingRow(training))); err != nil {
			return err
		}
		if err := r.deleteChildren(ctx, training.ID()); err != nil {
			return err
		}
		return r.insertChildren(ctx, training)
	})
}

func (r *TrainingRepository) Delete(ctx context.Context, training domain.Training) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.deleteChildren(ctx, training.ID()); err != nil {
			return err
		}
		return r.db.Delete(ctx, trainingsTable.Name(), byID(training.ID()))
	})
}

func (r *TrainingRepository) ResetDefinition(ctx context.Context, definition domain.TrainingDefinition, deleteTrainings bool) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if !deleteTrainings {
			return r.db.Execute(ctx, "UPDATE "+trainingsTable.Name()+" SET definition_id = NULL WHERE definition_id = ?",
				definition.ID().Value())
		}
		trainings := trainingsTable.Select().Columns("id").Where("definition_id = ?", definition.ID().Value())
		for _, table := range []database.Table{trainingContentsTable, trainingCoachesTable, trainingTeamsTable} {
			if err := r.db.Delete(ctx, table.Name(), database.Where("training_id IN (?)", trainings)); err != nil {
				return err
			}
		}
		return r.db.Delete(ctx, trainingsTable.Name(), database.Where("definition_id = ?", definition.ID().Value()))
	})
}

func (r *TrainingRepository) insertChildren(ctx context.Context, training domain.Training) error {
	if contents := newContentRows(training); len(contents) > 0 {
		if _, err := r.db.Insert(ctx, trainingContentsTable.Name(), &contents); err != nil {
			return err
		}
	}
	if coaches := newTrainingCoachRows(training); len(coaches) > 0 {
		if _, err := r.db.Insert(ctx, trainingCoachesTable.Name(), &coaches); err != nil {
			return err
		}
	}
	if len(training.Teams) > 0 {
		teams := make([]trainingTeamRow, 0, len(training.Teams))
		for _, team := range training.Teams {
			teams = append(teams, trainingTeamRow{
				TrainingID: training.ID().Value(),
				TeamID:     team.ID().Value(),
				CreatedAt:  time.Now().UTC(),
			})
		}
		if _, err := r.db.Insert(ctx, trainingTeamsTable.Name(), &teams); err != nil {
			return err
		}
	}
	return nil
}

func (r *TrainingRepository) deleteChildren(ctx context.Context, id domain.TrainingIdentifier) error {
	for _, table := range []database.Table{trainingContentsTable, trainingCoachesTable, trainingTeamsTable} {
		if err := r.db.Delete(ctx, table.Name(), byTraining(id)); err != nil {
			return err
		}
	}
	return nil
}
