// Package trainingtest creates coaches for tests of the training context.
package trainingtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/domains/club/clubtest"
	"github.com/fbraem/kwai/internal/domains/training/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type coachRow struct {
	ID        int64     `gorm:"column:id"`
	MemberID  int64     `gorm:"column:member_id"`
	Active    int       `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (r coachRow) Key() int64 { return r.ID }

// CreateCoach stores a club member and makes it an active coach.
func CreateCoach(t testing.TB, db *database.Database, license string, name kernel.Name) domain.Coach {
	t.Helper()
	member := clubtest.CreateMember(t, db, license, name, time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC))
	id, err := db.Insert(context.Background(), "coaches", &coachRow{
		MemberID:  member.ID().Value(),
		Active:    1,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return domain.Coach{Entity: kernel.NewEntity(kernel.NewIntIdentifier(id)), Name: name, Active: true}
}

type teamRow struct {
	ID        int64     `gorm:"column:id"`
	Name      string    `gorm:"column:name"`
	Active    int       `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (r teamRow) Key() int64 { return r.ID }

// CreateTeam stores an active team.
func CreateTeam(t testing.TB, db *database.Database, name string) domain.Team {
	t.Helper()
	id, err := db.Insert(context.Background(), "teams", &teamRow{Name: name, Active: 1, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	return domain.Team{Entity: kernel.NewEntity(kernel.NewIntIdentifier(id)), Name: name}
}
