package sqlstore

import (
	"fmt"
	"time"

	club "github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	teamsTable = database.NewTable("teams",
		"id", "name", "season_id", "team_category_id", "active", "remark", "created_at", "updated_at")
	teamMembersTable = database.NewTable("team_members", "team_id", "member_id", "active", "created_at", "updated_at")
	membersTable     = database.NewTable("judo_members", "id", "uuid", "license", "license_end_date", "person_id", "active")
	personsTable     = database.NewTable("persons", "id", "firstname", "lastname", "gender", "birthdate", "nationality_id")
	countriesTable   = database.NewTable("countries", "id", "iso_2", "iso_3", "name", "created_at", "updated_at")
)

type teamRow struct {
	ID             int64      `gorm:"column:id"`
	Name           string     `gorm:"column:name"`
	SeasonID       *int64     `gorm:"column:season_id"`
	TeamCategoryID *int64     `gorm:"column:team_category_id"`
	Active         int        `gorm:"column:active"`
	Remark         *string    `gorm:"column:remark"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r teamRow) Key() int64 { return r.ID }

func newTeamRow(team domain.Team) teamRow {
	return teamRow{
		ID:        team.ID().Value(),
		Name:      team.Name,
		Active:    database.Flag(team.Active),
		Remark:    database.NullString(team.Remark),
		CreatedAt: team.TraceableTime.CreatedAt.Time(),
		UpdatedAt: team.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r teamRow) toDomain() domain.Team {
	return domain.Team{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Name:          r.Name,
		Active:        database.IsSet(r.Active),
		Remark:        database.StringValue(r.Remark),
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}
}

type teamMemberRow struct {
	TeamID    int64      `gorm:"column:team_id"`
	MemberID  int64      `gorm:"column:member_id"`
	Active    int        `gorm:"column:active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func newTeamMemberRow(team domain.Team, member domain.TeamMember) teamMemberRow {
	return teamMemberRow{
		TeamID:    team.ID().Value(),
		MemberID:  member.Member.ID().Value(),
		Active:    database.Flag(member.Active),
		CreatedAt: member.TraceableTime.CreatedAt.Time(),
		UpdatedAt: member.TraceableTime.UpdatedAt.Ptr(),
	}
}

// The columns below can be NULL because they are reached with a LEFT JOIN.

type teamMemberColumns struct {
	TeamID    *int64     `gorm:"column:team_id"`
	MemberID  *int64     `gorm:"column:member_id"`
	Active    *int       `gorm:"column:active"`
	CreatedAt *time.Time `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

type memberColumns struct {
	ID             *int64     `gorm:"column:id"`
	UUID           *string    `gorm:"column:uuid"`
	License        *string    `gorm:"column:license"`
	LicenseEndDate *time.Time `gorm:"column:license_end_date"`
	PersonID       *int64     `gorm:"column:person_id"`
	Active         *int       `gorm:"column:active"`
}

type personColumns struct {
	ID            *int64     `gorm:"column:id"`
	Firstname     *string    `gorm:"column:firstname"`
	Lastname      *string    `gorm:"column:lastname"`
	Gender        *int       `gorm:"column:gender"`
	Birthdate     *time.Time `gorm:"column:birthdate"`
	NationalityID *int64     `gorm:"column:nationality_id"`
}

type countryColumns struct {
	ID        *int64     `gorm:"column:id"`
	ISO2      *string    `gorm:"column:iso_2"`
	ISO3      *string    `gorm:"column:iso_3"`
	Name      *string    `gorm:"column:name"`
	CreatedAt *time.Time `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (c countryColumns) toDomain() club.Country {
	var createdAt time.Time
	if c.CreatedAt != nil {
		createdAt = *c.CreatedAt
	}
	return club.Country{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(database.Int64Value(c.ID))),
		ISO2:          database.StringValue(c.ISO2),
		ISO3:          database.StringValue(c.ISO3),
		Name:          database.StringValue(c.Name),
		TraceableTime: kernel.TraceableTimeFrom(createdAt, c.UpdatedAt),
	}
}

func toMember(member memberColumns, person personColumns, country countryColumns) (domain.Member, error) {
	uuid, err := kernel.ParseUniqueID(database.StringValue(member.UUID))
	if err != nil {
		return domain.Member{}, fmt.Errorf("member %d: %w", database.Int64Value(member.ID), err)
	}
	var gender club.Gender
	if person.Gender != nil {
		if gender, err = club.NewGender(*person.Gender); err != nil {
			return domain.Member{}, err
		}
	}
	return domain.Member{
		Entity: kernel.NewEntity(kernel.NewIntIdentifier(database.Int64Value(member.ID))),
		UUID:   uuid,
		Name: kernel.Name{
			FirstName: database.StringValue(person.Firstname),
			LastName:  database.StringValue(person.Lastname),
		},
		License: club.License{
			Number:  database.StringValue(member.License),
			EndDate: kernel.DateFromPtr(member.LicenseEndDate),
		},
		Birthdate:    club.Birthdate{Date: kernel.DateFromPtr(person.Birthdate)},
		Gender:       gender,
		Nationality:  country.toDomain(),
		ActiveInClub: member.Active != nil && database.IsSet(*member.Active),
	}, nil
}

type memberQueryRow struct {
	Member  memberColumns  `gorm:"embedded;embeddedPrefix:judo_members_"`
	Person  personColumns  `gorm:"embedded;embeddedPrefix:persons_"`
	Country countryColumns `gorm:"embedded;embeddedPrefix:countries_"`
}

func (r memberQueryRow) toDomain() (domain.Member, error) {
	return toMember(r.Member, r.Person, r.Country)
}

type teamQueryRow struct {
	Team       teamRow           `gorm:"embedded;embeddedPrefix:teams_"`
	TeamMember teamMemberColumns `gorm:"embedded;embeddedPrefix:team_members_"`
	Member     memberColumns     `gorm:"embedded;embeddedPrefix:judo_members_"`
	Person     personColumns     `gorm:"embedded;embeddedPrefix:persons_"`
	Country    countryColumns    `gorm:"embedded;embeddedPrefix:countries_"`
}

// teamFromRows builds a team from the rows of one team. A team without members has
// one row without member columns.
func teamFromRows(rows []teamQueryRow) (domain.Team, error) {
	team := rows[0].Team.toDomain()
	members := make([]domain.TeamMember, 0, len(rows))
	for _, row := range rows {
		if row.TeamMember.MemberID == nil {
			continue
		}
		member, err := toMember(row.Member, row.Person, row.Country)
		if err != nil {
			return domain.Team{}, err
		}
		var createdAt time.Time
		if row.TeamMember.CreatedAt != nil {
			createdAt = *row.TeamMember.CreatedAt
		}
		members = append(members, domain.TeamMember{
			Active:        row.TeamMember.Active != nil && database.IsSet(*row.TeamMember.Active),
			Member:        member,
			TraceableTime: kernel.TraceableTimeFrom(createdAt, row.TeamMember.UpdatedAt),
		})
	}
	return team.WithMembers(members...), nil
}
