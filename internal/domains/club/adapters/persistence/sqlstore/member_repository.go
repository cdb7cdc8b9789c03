package sqlstore

import (
	"context"
	"fmt"
	"iter"

	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var _ ports.MemberRepository = (*MemberRepository)(nil)

// MemberRepository stores members in judo_members, with their person and contact.
type MemberRepository struct {
	db *database.Database
}

// NewMemberRepository creates a member repository on db.
func NewMemberRepository(db *database.Database) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) CreateQuery() ports.MemberQuery {
	return newMemberQuery(r.db)
}

func (r *MemberRepository) Get(ctx context.Context, query ports.MemberQuery) (domain.Member, error) {
	q, err := asMemberQuery(query)
	if err != nil {
		return domain.Member{}, err
	}
	row, ok, err := database.FetchOne[memberQueryRow](ctx, q.query)
	if err != nil {
		return domain.Member{}, err
	}
	if !ok {
		return domain.Member{}, ports.ErrMemberNotFound
	}
	return row.toDomain()
}

func (r *MemberRepository) GetAll(ctx context.Context, query ports.MemberQuery, limit, offset int) iter.Seq2[domain.Member, error] {
	q, err := asMemberQuery(query)
	if err != nil {
		return func(yield func(domain.Member, error) bool) {
			yield(domain.Member{}, err)
		}
	}
	return database.Map(database.Fetch[memberQueryRow](ctx, q.query, limit, offset), memberQueryRow.toDomain)
}

// Create inserts the member. A contact or person without identifier is inserted first.
func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	err := r.db.Transaction(ctx, func(ctx context.Context) error {
		person := member.Person
		if person.ID().IsEmpty() {
			contact := person.Contact
			if contact.ID().IsEmpty() {
				id, err := r.db.Insert(ctx, contactsTable.Name(), ptr(newContactRow(contact)))
				if err != nil {
					return err
				}
				contact.Entity = contact.WithID(kernel.NewIntIdentifier(id))
			}
			person.Contact = contact
			id, err := r.db.Insert(ctx, personsTable.Name(), ptr(newPersonRow(person)))
			if err != nil {
				return err
			}
			person.Entity = person.WithID(kernel.NewIntIdentifier(id))
		}
		member.Person = person
		id, err := r.db.Insert(ctx, membersTable.Name(), ptr(newMemberRow(member)))
		if err != nil {
			return err
		}
		member.Entity = member.WithID(kernel.NewIntIdentifier(id))
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

// Update writes the member, its person and its contact.
func (r *MemberRepository) Update(ctx context.Context, member domain.Member) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		contact := member.Person.Contact
		if err := r.db.Update(ctx, contactsTable.Name(), byID(contact.ID()), ptr(newContactRow(contact))); err != nil {
			return err
		}
		if err := r.db.Update(ctx, personsTable.Name(), byID(member.Person.ID()), ptr(newPersonRow(member.Person))); err != nil {
			return err
		}
		return r.db.Update(ctx, membersTable.Name(), byID(member.ID()), ptr(newMemberRow(member)))
	})
}

// Delete removes the member. The person and contact remain.
func (r *MemberRepository) Delete(ctx context.Context, member domain.Member) error {
	return r.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.db.Delete(ctx, memberUploadsTable.Name(), database.Where("member_id = ?", member.ID().Value())); err != nil {
			return err
		}
		return r.db.Delete(ctx, membersTable.Name(), byID(member.ID()))
	})
}

func (r *MemberRepository) ActivateMembers(ctx context.Context, upload domain.FileUpload) error {
	return r.setActive(ctx, upload, true)
}

func (r *MemberRepository) DeactivateMembers(ctx context.Context, upload domain.FileUpload) error {
	return r.setActive(ctx, upload, false)
}

func (r *MemberRepository) setActive(ctx context.Context, upload domain.FileUpload, active bool) error {
	operator := "NOT IN"
	if active {
		operator = "IN"
	}
	uploaded := memberUploadsTable.Select().
		Columns("member_id").
		Where("import_id = ?", upload.ID().Value())
	return r.db.Execute(ctx,
		fmt.Sprintf("UPDATE %s SET active = ? WHERE id %s (?)", membersTable.Name(), operator),
		database.Flag(active), uploaded,
	)
}

func asMemberQuery(query ports.MemberQuery) (memberQuery, error) {
	q, ok := query.(memberQuery)
	if !ok {
		return memberQuery{}, fmt.Errorf("unsupported member query %T", query)
	}
	return q, nil
}

func byID(id kernel.IntIdentifier) database.Predicate {
	return database.Where("id = ?", id.Value())
}

func ptr[T any](value T) *T {
	return &value
}
