package sqlstore

import (
	"fmt"
	"time"

	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	trainingsTable = database.NewTable("trainings",
		"id", "definition_id", "season_id", "start_date", "end_date", "active", "cancelled",
		"location", "remark", "created_at", "updated_at")
	trainingContentsTable = database.NewTable("training_contents",
		"training_id", "locale", "format", "title", "content", "summary", "user_id", "created_at", "updated_at")
	trainingCoachesTable = database.NewTable("training_coaches",
		"training_id", "coach_id", "coach_type", "present", "payed", "remark", "user_id", "created_at", "updated_at")
	trainingTeamsTable = database.NewTable("training_teams", "training_id", "team_id", "created_at", "updated_at")
	definitionsTable   = database.NewTable("training_definitions",
		"id", "name", "description", "season_id", "team_id", "weekday", "start_time", "end_time", "timezone",
		"active", "location", "remark", "user_id", "created_at", "updated_at")
	coachesTable = database.NewTable("coaches", "id", "member_id", "active")
	membersTable = database.NewTable("judo_members", "id", "person_id")
	personsTable = database.NewTable("persons", "id", "firstname", "lastname")
	teamsTable   = database.NewTable("teams", "id", "name")
	usersTable   = database.NewTable("users", "id", "uuid", "first_name", "last_name")
)

type ownerColumns struct {
	ID        int64  `gorm:"column:id"`
	UUID      string `gorm:"column:uuid"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

func (c ownerColumns) toDomain() (kernel.Owner, error) {
	uuid, err := kernel.ParseUniqueID(c.UUID)
	if err != nil {
		return kernel.Owner{}, fmt.Errorf("user %d: %w", c.ID, err)
	}
	return kernel.Owner{
		ID:   kernel.NewIntIdentifier(c.ID),
		UUID: uuid,
		Name: kernel.Name{FirstName: c.FirstName, LastName: c.LastName},
	}, nil
}

type trainingRow struct {
	ID           int64      `gorm:"column:id"`
	DefinitionID *int64     `gorm:"column:definition_id"`
	SeasonID     *int64     `gorm:"column:season_id"`
	StartDate    time.Time  `gorm:"column:start_date"`
	EndDate      time.Time  `gorm:"column:end_date"`
	Active       int        `gorm:"column:active"`
	Cancelled    int        `gorm:"column:cancelled"`
	Location     *string    `gorm:"column:location"`
	Remark       *string    `gorm:"column:remark"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt    *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r trainingRow) Key() int64 { return r.ID }

func newTrainingRow(training domain.Training) trainingRow {
	row := trainingRow{
		ID:        training.ID().Value(),
		StartDate: training.Period.Start().Time(),
		EndDate:   training.Period.End().Time(),
		Active:    database.Flag(training.Active),
		Cancelled: database.Flag(training.Cancelled),
		Location:  database.NullString(training.Location),
		Remark:    database.NullString(training.Remark),
		CreatedAt: training.TraceableTime.CreatedAt.Time(),
		UpdatedAt: training.TraceableTime.UpdatedAt.Ptr(),
	}
	if training.Period.IsEndless() {
		row.EndDate = row.StartDate
	}
	if training.Definition != nil {
		row.DefinitionID = database.NullInt64(training.Definition.ID().Value())
	}
	return row
}

func (r trainingRow) toDomain() (domain.Training, error) {
	period, err := kernel.NewPeriod(kernel.NewTimestamp(r.StartDate), kernel.NewTimestamp(r.EndDate))
	if err != nil {
		return domain.Training{}, fmt.Errorf("training %d: %w", r.ID, err)
	}
	training := domain.Training{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Period:        period,
		Active:        database.IsSet(r.Active),
		Cancelled:     database.IsSet(r.Cancelled),
		Location:      database.StringValue(r.Location),
		Remark:        database.StringValue(r.Remark),
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}
	if r.DefinitionID != nil {
		// Replaced by the complete definition when the page is loaded.
		training.Definition = &domain.TrainingDefinition{
			Entity: kernel.NewEntity(kernel.NewIntIdentifier(*r.DefinitionID)),
		}
	}
	return training, nil
}

type contentRow struct {
	TrainingID int64      `gorm:"column:training_id"`
	Locale     string     `gorm:"column:locale"`
	Format     string     `gorm:"column:format"`
	Title      string     `gorm:"column:title"`
	Content    string     `gorm:"column:content"`
	Summary    string     `gorm:"column:summary"`
	UserID     int64      `gorm:"column:user_id"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func newContentRows(training domain.Training) []contentRow {
	rows := make([]contentRow, 0, training.Texts.Len())
	for _, text := range training.Texts.All() {
		rows = append(rows, contentRow{
			TrainingID: training.ID().Value(),
			Locale:     string(text.Locale),
			Format:     string(text.Format),
			Title:      text.Title,
			Content:    text.Content,
			Summary:    text.Summary,
			UserID:     text.Author.ID.Value(),
			CreatedAt:  text.TraceableTime.CreatedAt.Time(),
			UpdatedAt:  text.TraceableTime.UpdatedAt.Ptr(),
		})
	}
	return rows
}

func (r contentRow) toDomain(author kernel.Owner) (kernel.LocaleText, error) {
	locale, err := kernel.ParseLocale(r.Locale)
	if err != nil {
		return kernel.LocaleText{}, err
	}
	format, err := kernel.ParseDocumentFormat(r.Format)
	if err != nil {
		return kernel.LocaleText{}, err
	}
	return kernel.LocaleText{
		Locale:        locale,
		Format:        format,
		Title:         r.Title,
		Content:       r.Content,
		Summary:       r.Summary,
		Author:        author,
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}, nil
}

type trainingQueryRow struct {
	Training trainingRow  `gorm:"embedded;embeddedPrefix:trainings_"`
	Content  contentRow   `gorm:"embedded;embeddedPrefix:training_contents_"`
	Author   ownerColumns `gorm:"embedded;embeddedPrefix:users_"`
}

// trainingFromRows builds a training from its rows, one row per text.
func trainingFromRows(rows []trainingQueryRow) (domain.Training, error) {
	training, err := rows[0].Training.toDomain()
	if err != nil {
		return domain.Training{}, err
	}
	texts := make([]kernel.LocaleText, 0, len(rows))
	for _, row := range rows {
		author, err := row.Author.toDomain()
		if err != nil {
			return domain.Training{}, err
		}
		text, err := row.Content.toDomain(author)
		if err != nil {
			return domain.Training{}, err
		}
		texts = append(texts, text)
	}
	training.Texts = kernel.NewText(texts...)
	return training, nil
}

type trainingCoachRow struct {
	TrainingID int64      `gorm:"column:training_id"`
	CoachID    int64      `gorm:"column:coach_id"`
	CoachType  int        `gorm:"column:coach_type"`
	Present    int        `gorm:"column:present"`
	Payed      int        `gorm:"column:payed"`
	Remark     *string    `gorm:"column:remark"`
	UserID     int64      `gorm:"column:user_id"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func newTrainingCoachRows(training domain.Training) []trainingCoachRow {
	rows := make([]trainingCoachRow, 0, len(training.Coaches))
	for _, coach := range training.Coaches {
		rows = append(rows, trainingCoachRow{
			TrainingID: training.ID().Value(),
			CoachID:    coach.Coach.ID().Value(),
			CoachType:  int(coach.Type),
			Present:    database.Flag(coach.Present),
			Payed:      database.Flag(coach.Payed),
			Remark:     database.NullString(coach.Remark),
			UserID:     coach.Owner.ID.Value(),
			CreatedAt:  time.Now().UTC(),
		})
	}
	return rows
}

type coachColumns struct {
	ID       int64 `gorm:"column:id"`
	MemberID int64 `gorm:"column:member_id"`
	Active   int   `gorm:"column:active"`
}

type personColumns struct {
	ID        int64  `gorm:"column:id"`
	Firstname string `gorm:"column:firstname"`
	Lastname  string `gorm:"column:lastname"`
}

type coachQueryRow struct {
	Coach  coachColumns  `gorm:"embedded;embeddedPrefix:coaches_"`
	Person personColumns `gorm:"embedded;embeddedPrefix:persons_"`
}

func (r coachQueryRow) toDomain() (domain.Coach, error) {
	return domain.Coach{
		Entity: kernel.NewEntity(kernel.NewIntIdentifier(r.Coach.ID)),
		Name:   kernel.Name{FirstName: r.Person.Firstname, LastName: r.Person.Lastname},
		Active: database.IsSet(r.Coach.Active),
	}, nil
}

type trainingCoachQueryRow struct {
	TrainingCoach trainingCoachRow `gorm:"embedded;embeddedPrefix:training_coaches_"`
	Coach         coachColumns     `gorm:"embedded;embeddedPrefix:coaches_"`
	Person        personColumns    `gorm:"embedded;embeddedPrefix:persons_"`
	Owner         ownerColumns     `gorm:"embedded;embeddedPrefix:users_"`
}

func (r trainingCoachQueryRow) toDomain() (domain.TrainingCoach, error) {
	coach, err := coachQueryRow{Coach: r.Coach, Person: r.Person}.toDomain()
	if err != nil {
		return domain.TrainingCoach{}, err
	}
	owner, err := r.Owner.toDomain()
	if err != nil {
		return domain.TrainingCoach{}, err
	}
	return domain.TrainingCoach{
		Coach:   coach,
		Type:    domain.CoachType(r.TrainingCoach.CoachType),
		Present: database.IsSet(r.TrainingCoach.Present),
		Payed:   database.IsSet(r.TrainingCoach.Payed),
		Remark:  database.StringValue(r.TrainingCoach.Remark),
		Owner:   owner,
	}, nil
}

type trainingTeamRow struct {
	TrainingID int64      `gorm:"column:training_id"`
	TeamID     int64      `gorm:"column:team_id"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

type teamColumns struct {
	ID   int64  `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

func (c teamColumns) toDomain() domain.Team {
	return domain.Team{Entity: kernel.NewEntity(kernel.NewIntIdentifier(c.ID)), Name: c.Name}
}

type trainingTeamQueryRow struct {
	TrainingTeam trainingTeamRow `gorm:"embedded;embeddedPrefix:training_teams_"`
	Team         teamColumns     `gorm:"embedded;embeddedPrefix:teams_"`
}

type definitionRow struct {
	ID          int64      `gorm:"column:id"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description"`
	SeasonID    *int64     `gorm:"column:season_id"`
	TeamID      *int64     `gorm:"column:team_id"`
	Weekday     int        `gorm:"column:weekday"`
	StartTime   string     `gorm:"column:start_time"`
	EndTime     string     `gorm:"column:end_time"`
	Timezone    string     `gorm:"column:timezone"`
	Active      int        `gorm:"column:active"`
	Location    *string    `gorm:"column:location"`
	Remark      *string    `gorm:"column:remark"`
	UserID      int64      `gorm:"column:user_id"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r definitionRow) Key() int64 { return r.ID }

func newDefinitionRow(definition domain.TrainingDefinition) definitionRow {
	row := definitionRow{
		ID:          definition.ID().Value(),
		Name:        definition.Name,
		Description: definition.Description,
		Weekday:     int(definition.Weekday),
		StartTime:   definition.Period.Start().String(),
		Timezone:    definition.Period.Timezone(),
		Active:      database.Flag(definition.Active),
		Location:    database.NullString(definition.Location),
		Remark:      database.NullString(definition.Remark),
		UserID:      definition.Owner.ID.Value(),
		CreatedAt:   definition.TraceableTime.CreatedAt.Time(),
		UpdatedAt:   definition.TraceableTime.UpdatedAt.Ptr(),
	}
	if !definition.Period.IsEndless() {
		row.EndTime = definition.Period.End().String()
	}
	if definition.Team != nil {
		row.TeamID = database.NullInt64(definition.Team.ID().Value())
	}
	return row
}

// The team of a definition is optional, so its columns can be NULL.
type optionalTeamColumns struct {
	ID   *int64  `gorm:"column:id"`
	Name *string `gorm:"column:name"`
}

type definitionQueryRow struct {
	Definition definitionRow       `gorm:"embedded;embeddedPrefix:training_definitions_"`
	Team       optionalTeamColumns `gorm:"embedded;embeddedPrefix:teams_"`
	Owner      ownerColumns        `gorm:"embedded;embeddedPrefix:users_"`
}

func (r definitionQueryRow) toDomain() (domain.TrainingDefinition, error) {
	start, err := kernel.ParseTimeOfDay(r.Definition.StartTime)
	if err != nil {
		return domain.TrainingDefinition{}, fmt.Errorf("training definition %d: %w", r.Definition.ID, err)
	}
	var end kernel.TimeOfDay
	if r.Definition.EndTime != "" {
		if end, err = kernel.ParseTimeOfDay(r.Definition.EndTime); err != nil {
			return domain.TrainingDefinition{}, fmt.Errorf("training definition %d: %w", r.Definition.ID, err)
		}
	}
	period, err := kernel.NewTimePeriod(start, end, r.Definition.Timezone)
	if err != nil {
		return domain.TrainingDefinition{}, fmt.Errorf("training definition %d: %w", r.Definition.ID, err)
	}
	owner, err := r.Owner.toDomain()
	if err != nil {
		return domain.TrainingDefinition{}, err
	}
	definition := domain.TrainingDefinition{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.Definition.ID)),
		Name:          r.Definition.Name,
		Description:   r.Definition.Description,
		Weekday:       kernel.Weekday(r.Definition.Weekday),
		Period:        period,
		Active:        database.IsSet(r.Definition.Active),
		Location:      database.StringValue(r.Definition.Location),
		Remark:        database.StringValue(r.Definition.Remark),
		Owner:         owner,
		TraceableTime: kernel.TraceableTimeFrom(r.Definition.CreatedAt, r.Definition.UpdatedAt),
	}
	if r.Team.ID != nil {
		definition.Team = &domain.Team{
			Entity: kernel.NewEntity(kernel.NewIntIdentifier(*r.Team.ID)),
			Name:   database.StringValue(r.Team.Name),
		}
	}
	return definition, nil
}

func byID(id kernel.IntIdentifier) database.Predicate {
	return database.Where("id = ?", id.Value())
}

func byTraining(id domain.TrainingIdentifier) database.Predicate {
	return database.Where("training_id = ?", id.Value())
}

func ptr[T any](value T) *T {
	return &value
}
