package databasetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

type userRow struct {
	ID        int64     `gorm:"column:id"`
	Email     string    `gorm:"column:email"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	UUID      string    `gorm:"column:uuid"`
	Password  string    `gorm:"column:password"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (r userRow) Key() int64 { return r.ID }

// CreateOwner stores a user and returns it as the owner of entities created in tests.
func CreateOwner(t testing.TB, db *database.Database, email string, name kernel.Name) kernel.Owner {
	t.Helper()
	uuid := kernel.NewUniqueID()
	row := &userRow{
		Email:     email,
		FirstName: name.FirstName,
		LastName:  name.LastName,
		UUID:      uuid.String(),
		CreatedAt: time.Now().UTC(),
	}
	id, err := db.Insert(context.Background(), "users", row)
	require.NoError(t, err)
	return kernel.Owner{ID: kernel.NewIntIdentifier(id), UUID: uuid, Name: name}
}
