package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/teams/domain"
	"github.com/fbraem/kwai/internal/domains/teams/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.MemberQuery      = memberQuery{}
	_ ports.MemberRepository = (*MemberRepository)(nil)
)

type memberQuery struct {
	query database.Query
}

func newMemberQuery(db *database.Database) memberQuery {
	columns := append(membersTable.Aliases(), personsTable.Aliases()...)
	columns = append(columns, countriesTable.Aliases()...)
	sel := membersTable.Select().
		Join(personsTable.Ref(), personsTable.Column("id")+" = "+membersTable.Column("person_id")).
		Join(countriesTable.Ref(), countriesTable.Column("id")+" = "+personsTable.Column("nationality_id")).
		Columns(columns...).
		OrderBy(personsTable.Column("lastname"), personsTable.Column("firstname"), membersTable.Column("id"))
	return memberQuery{query: database.NewQuery(db, sel, membersTable.Column("id"))}
}

func (q memberQuery) FilterByID(id domain.MemberIdentifier) ports.MemberQuery {
	return memberQuery{query: q.query.Where(membersTable.Column("id")+" = ?", id.Value())}
}

func (q memberQuery) FilterByUUID(uuid kernel.UniqueID) ports.MemberQuery {
	return memberQuery{query: q.query.Where(membersTable.Column("uuid")+" = ?", uuid.String())}
}

func (q memberQuery) FilterByTeam(team domain.TeamIdentifier, inTeam bool) ports.MemberQuery {
	operator := " IN (?)"
	if !inTeam {
		operator = " NOT IN (?)"
	}
	teamMembers := teamMembersTable.Select().Columns("member_id").Where("team_id = ?", team.Value())
	return memberQuery{query: q.query.Where(membersTable.Column("id")+operator, teamMembers)}
}

func (q memberQuery) FilterByBirthdate(start, end kernel.Date) ports.MemberQuery {
	column := personsTable.Column("birthdate")
	if end.IsEmpty() {
		return memberQuery{query: q.query.Where(column+" >= ?", start.Time())}
	}
	return memberQuery{query: q.query.Where(column+" >= ? AND "+column+" <= ?", start.Time(), end.Time())}
}

func (q memberQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// MemberRepository reads the members of the club for teams.
type MemberRepository struct {
	db *database.Database
}

func NewMemberRepository(db *database.Database) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) CreateQuery() ports.MemberQuery {
	return newMemberQuery(r.db)
}

func (r *MemberRepository) Get(ctx context.Context, query ports.MemberQuery) (domain.Member, error) {
	q, ok := query.(memberQuery)
	if !ok {
		return domain.Member{}, fmt.Errorf("unsupported member query %T", query)
	}
	row, found, err := database.FetchOne[memberQueryRow](ctx, q.query)
	if err != nil {
		return domain.Member{}, err
	}
	if !found {
		return domain.Member{}, ports.ErrMemberNotFound
	}
	return row.toDomain()
}

func (r *MemberRepository) GetAll(ctx context.Context, query ports.MemberQuery, limit, offset int) iter.Seq2[domain.Member, error] {
	q, ok := query.(memberQuery)
	if !ok {
		return func(yield func(domain.Member, error) bool) {
			yield(domain.Member{}, fmt.Errorf("unsupported member query %T", query))
		}
	}
	return database.Map(database.Fetch[memberQueryRow](ctx, q.query, limit, offset), memberQueryRow.toDomain)
}
