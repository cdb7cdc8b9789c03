package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/platform/sqlite"
)

type clubRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Active    int       `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (clubRecord) TableName() string { return "clubs" }

type playerRecord struct {
	ID     int64  `gorm:"primaryKey;column:id"`
	ClubID int64  `gorm:"column:club_id;index"`
	Name   string `gorm:"column:name"`
}

func (playerRecord) TableName() string { return "players" }

var (
	clubsTable   = NewTable("clubs", "id", "name", "active", "created_at")
	playersTable = NewTable("players", "id", "club_id", "name")
)

type clubRow struct {
	ID        int64     `gorm:"column:id"`
	Name      string    `gorm:"column:name"`
	Active    int       `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (r clubRow) Key() int64 { return r.ID }

type playerRow struct {
	ID     int64  `gorm:"column:id"`
	ClubID int64  `gorm:"column:club_id"`
	Name   string `gorm:"column:name"`
}

func (r playerRow) Key() int64 { return r.ID }

type clubPlayerRow struct {
	Club   clubRow   `gorm:"embedded;embeddedPrefix:clubs_"`
	Player playerRow `gorm:"embedded;embeddedPrefix:players_"`
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := sqlite.Connect(context.Background(), filepath.Join(t.TempDir(), "kwai.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clubRecord{}, &playerRecord{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db)
}

func insertClub(t *testing.T, ctx context.Context, db *Database, name string) int64 {
	t.Helper()
	id, err := db.Insert(ctx, clubsTable.Name(), &clubRow{Name: name, Active: 1, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

func clubQuery(db *Database) Query {
	return NewQuery(db, clubsTable.Select().Columns(clubsTable.QualifiedColumns()...), clubsTable.Column("id")).
		OrderBy(clubsTable.Column("id"))
}

func TestInsertAndFetchOne(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	id := insertClub(t, ctx, db, "Kwai Judo")

	row, ok, err := FetchOne[clubRow](ctx, clubQuery(db).Where(clubsTable.Column("id")+" = ?", id))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Kwai Judo", row.Name)
	require.Equal(t, 1, row.Active)

	_, ok, err = FetchOne[clubRow](ctx, clubQuery(db).Where(clubsTable.Column("id")+" = ?", id+100))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCountIgnoresPaging(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	for i := 0; i < 20; i++ {
		insertClub(t, ctx, db, fmt.Sprintf("club %02d", i))
	}
	q := clubQuery(db)

	page, err := FetchAll[clubRow](ctx, q, 5, 10)
	require.NoError(t, err)
	require.Len(t, page, 5)
	require.Equal(t, "club 10", page[0].Name)

	count, err := q.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 20, count)

	all, err := FetchAll[clubRow](ctx, q, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, int(count))
}

func TestQueryIsImmutable(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	insertClub(t, ctx, db, "Kwai")
	insertClub(t, ctx, db, "Tsuki")

	base := clubQuery(db)
	filtered := base.Where(clubsTable.Column("name")+" = ?", "Kwai")

	count, err := base.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = filtered.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestJoinedRowsUseAliases(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	clubID := insertClub(t, ctx, db, "Kwai")
	_, err := db.Insert(ctx, playersTable.Name(), &playerRow{ClubID: clubID, Name: "Jigoro"})
	require.NoError(t, err)

	sel := clubsTable.Select().
		Join(playersTable.Ref(), playersTable.Column("club_id")+" = "+clubsTable.Column("id")).
		Columns(append(clubsTable.Aliases(), playersTable.Aliases()...)...)
	rows, err := SelectAll[clubPlayerRow](ctx, db, sel)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, clubID, rows[0].Club.ID)
	require.Equal(t, "Kwai", rows[0].Club.Name)
	require.Equal(t, "Jigoro", rows[0].Player.Name)
}

func TestDetailQueryPagesOnKeys(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	for i := 0; i < 3; i++ {
		clubID := insertClub(t, ctx, db, fmt.Sprintf("club %d", i))
		for j := 0; j < 2; j++ {
			_, err := db.Insert(ctx, playersTable.Name(), &playerRow{ClubID: clubID, Name: fmt.Sprintf("player %d.%d", i, j)})
			require.NoError(t, err)
		}
	}

	detail := clubsTable.Select().
		Join(playersTable.Ref(), playersTable.Column("club_id")+" = "+clubsTable.Column("id")).
		Columns(append(clubsTable.Aliases(), playersTable.Aliases()...)...)
	q := NewQuery(db, clubsTable.Select(), clubsTable.Column("id")).
		WithDetail(detail, clubsTable.Column("id")).
		OrderBy(clubsTable.Column("name"))

	var groups [][]clubPlayerRow
	for group, err := range Group(Fetch[clubPlayerRow](ctx, q, 2, 1), func(r clubPlayerRow) int64 { return r.Club.ID }) {
		require.NoError(t, err)
		groups = append(groups, group)
	}
	require.Len(t, groups, 2)
	require.Equal(t, "club 1", groups[0][0].Club.Name)
	require.Len(t, groups[0], 2)
	require.Equal(t, "club 2", groups[1][0].Club.Name)

	count, err := q.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	id := insertClub(t, ctx, db, "Kwai")

	require.NoError(t, db.Update(ctx, clubsTable.Name(), Where("id = ?", id), &clubRow{ID: id, Name: "Kwai Kortrijk", Active: 0, CreatedAt: time.Now().UTC()}))
	row, ok, err := FetchOne[clubRow](ctx, clubQuery(db).Where("id = ?", id))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Kwai Kortrijk", row.Name)
	require.Equal(t, 0, row.Active)

	require.NoError(t, db.Delete(ctx, clubsTable.Name(), Where("id = ?", id)))
	count, err := clubQuery(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestExecuteWithSubquery(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	kwai := insertClub(t, ctx, db, "Kwai")
	insertClub(t, ctx, db, "Tsuki")
	_, err := db.Insert(ctx, playersTable.Name(), &playerRow{ClubID: kwai, Name: "Jigoro"})
	require.NoError(t, err)

	withPlayers := playersTable.Select().Columns(playersTable.Column("club_id"))
	require.NoError(t, db.Execute(ctx, "UPDATE clubs SET active = 0 WHERE id NOT IN (?)", withPlayers))

	count, err := clubQuery(db).Where("active = 1").Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestQueryErrorKeepsStatement(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	_, err := NewQuery(db, From("unknown_table"), "id").Count(ctx)
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	require.Contains(t, queryErr.SQL, "unknown_table")
}

func TestUnitOfWorkRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	insertClub(t, ctx, db, "B")

	err := NewUnitOfWork(db).Do(ctx, func(ctx context.Context) error {
		if _, err := db.Insert(ctx, clubsTable.Name(), &clubRow{Name: "A", CreatedAt: time.Now().UTC()}); err != nil {
			return err
		}
		_, err := db.Insert(ctx, clubsTable.Name(), &clubRow{Name: "B", CreatedAt: time.Now().UTC()})
		return err
	})
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)

	count, err := clubQuery(db).Where("name = ?", "A").Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestUnitOfWorkCommits(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	failure := errors.New("import stopped")

	require.NoError(t, NewUnitOfWork(db).Do(ctx, func(ctx context.Context) error {
		_, err := db.Insert(ctx, clubsTable.Name(), &clubRow{Name: "A", CreatedAt: time.Now().UTC()})
		return err
	}))

	err := NewUnitOfWork(db, AlwaysCommit()).Do(ctx, func(ctx context.Context) error {
		if _, err := db.Insert(ctx, clubsTable.Name(), &clubRow{Name: "C", CreatedAt: time.Now().UTC()}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	count, err := clubQuery(db).Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestUnitOfWorkRejectsNesting(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	uow := NewUnitOfWork(db)

	err := uow.Do(ctx, func(ctx context.Context) error {
		return uow.Do(ctx, func(context.Context) error { return nil })
	})
	require.ErrorIs(t, err, ErrNestedUnitOfWork)
}

func TestTransactionJoinsUnitOfWork(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	failure := errors.New("stop")

	err := NewUnitOfWork(db).Do(ctx, func(ctx context.Context) error {
		if err := db.Transaction(ctx, func(ctx context.Context) error {
			_, err := db.Insert(ctx, clubsTable.Name(), &clubRow{Name: "A", CreatedAt: time.Now().UTC()})
			return err
		}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	count, err := clubQuery(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}
