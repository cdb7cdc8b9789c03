package sqlstore

import (
	"context"
	"time"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.MemberQuery = memberQuery{}

type memberQuery struct {
	query database.Query
}

func newMemberQuery(db *database.Database) memberQuery {
	columns := append(membersTable.Aliases(), personsTable.Aliases()...)
	columns = append(columns, nationalitiesTable.Aliases()...)
	columns = append(columns, contactsTable.Aliases()...)
	columns = append(columns, countriesTable.Aliases()...)
	sel := membersTable.Select().
		Join(personsTable.Ref(), personsTable.Column("id")+" = "+membersTable.Column("person_id")).
		Join(nationalitiesTable.Ref(), nationalitiesTable.Column("id")+" = "+personsTable.Column("nationality_id")).
		Join(contactsTable.Ref(), contactsTable.Column("id")+" = "+personsTable.Column("contact_id")).
		Join(countriesTable.Ref(), countriesTable.Column("id")+" = "+contactsTable.Column("country_id")).
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

func (q memberQuery) FilterByLicense(license string) ports.MemberQuery {
	return memberQuery{query: q.query.Where(membersTable.Column("license")+" = ?", license)}
}

// FilterByLicenseDate keeps the licenses ending in [first day of month, first day of next month).
func (q memberQuery) FilterByLicenseDate(month, year int) ports.MemberQuery {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	column := membersTable.Column("license_end_date")
	return memberQuery{query: q.query.Where(column+" >= ? AND "+column+" < ?", start, end)}
}

func (q memberQuery) FilterByActive() ports.MemberQuery {
	return memberQuery{query: q.query.Where(membersTable.Column("active")+" = ?", 1)}
}

func (q memberQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}
