package sqlstore

import (
	"context"
	"strings"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.CountryRepository = (*CountryRepository)(nil)

// CountryRepository reads and maintains the countries table.
type CountryRepository struct {
	db *database.Database
}

func NewCountryRepository(db *database.Database) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) GetByISO2(ctx context.Context, iso2 string) (domain.Country, error) {
	query := database.NewQuery(r.db, countriesTable.Select().Columns(countriesTable.QualifiedColumns()...), countriesTable.Column("id")).
		Where(countriesTable.Column("iso_2")+" = ?", strings.ToUpper(iso2))
	row, ok, err := database.FetchOne[countryRow](ctx, query)
	if err != nil {
		return domain.Country{}, err
	}
	if !ok {
		return domain.Country{}, ports.ErrCountryNotFound
	}
	return row.toDomain(), nil
}

func (r *CountryRepository) Create(ctx context.Context, country domain.Country) (domain.Country, error) {
	id, err := r.db.Insert(ctx, countriesTable.Name(), ptr(newCountryRow(country)))
	if err != nil {
		return domain.Country{}, err
	}
	country.Entity = country.WithID(kernel.NewIntIdentifier(id))
	return country, nil
}

func (r *CountryRepository) Delete(ctx context.Context, country domain.Country) error {
	return r.db.Delete(ctx, countriesTable.Name(), byID(country.ID()))
}
