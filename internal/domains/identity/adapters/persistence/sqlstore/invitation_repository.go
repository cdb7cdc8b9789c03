package sqlstore

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	_ ports.UserInvitationQuery      = invitationQuery{}
	_ ports.UserInvitationRepository = (*UserInvitationRepository)(nil)
)

type invitationQuery struct {
	query database.Query
}

// newInvitationQuery returns the invitations with the user that sent them, newest first.
func newInvitationQuery(db *database.Database) invitationQuery {
	columns := append(invitationsTable.Aliases(), invitersTable.Aliases()...)
	filter := invitationsTable.Select().
		Join(invitersTable.Ref(), invitersTable.Column("id")+" = "+invitationsTable.Column("user_id")).
		Columns(columns...)
	query := database.NewQuery(db, filter, invitationsTable.Column("id")).
		OrderBy(invitationsTable.Column("created_at") + " DESC")
	return invitationQuery{query: query}
}

func (q invitationQuery) where(sql string, args ...any) invitationQuery {
	return invitationQuery{query: q.query.Where(sql, args...)}
}

func (q invitationQuery) FilterByID(id domain.UserInvitationIdentifier) ports.UserInvitationQuery {
	return q.where(invitationsTable.Column("id")+" = ?", id.Value())
}

func (q invitationQuery) FilterByUUID(uuid kernel.UniqueID) ports.UserInvitationQuery {
	return q.where(invitationsTable.Column("uuid")+" = ?", uuid.String())
}

func (q invitationQuery) FilterByEmail(email kernel.EmailAddress) ports.UserInvitationQuery {
	return q.where(invitationsTable.Column("email")+" = ?", email.String())
}

func (q invitationQuery) FilterActive() ports.UserInvitationQuery {
	return q.where(invitationsTable.Column("revoked")+" = ? AND "+invitationsTable.Column("confirmed_at")+" IS NULL", 0)
}

func (q invitationQuery) FilterNotExpired(now time.Time) ports.UserInvitationQuery {
	return q.where(invitationsTable.Column("expired_at")+" > ?", now)
}

func (q invitationQuery) Count(ctx context.Context) (int, error) {
	count, err := q.query.Count(ctx)
	return int(count), err
}

// UserInvitationRepository stores invitations in user_invitations.
type UserInvitationRepository struct {
	db *database.Database
}

func NewUserInvitationRepository(db *database.Database) *UserInvitationRepository {
	return &UserInvitationRepository{db: db}
}

func (r *UserInvitationRepository) CreateQuery() ports.UserInvitationQuery {
	return newInvitationQuery(r.db)
}

func (r *UserInvitationRepository) Get(ctx context.Context, query ports.UserInvitationQuery) (domain.UserInvitation, error) {
	for invitation, err := range r.GetAll(ctx, query, 1, 0) {
		return invitation, err
	}
	return domain.UserInvitation{}, ports.ErrUserInvitationNotFound
}

func (r *UserInvitationRepository) GetAll(ctx context.Context, query ports.UserInvitationQuery, limit, offset int) iter.Seq2[domain.UserInvitation, error] {
	q, ok := query.(invitationQuery)
	if !ok {
		return func(yield func(domain.UserInvitation, error) bool) {
			yield(domain.UserInvitation{}, fmt.Errorf("unsupported user invitation query %T", query))
		}
	}
	return database.Map(database.Fetch[invitationQueryRow](ctx, q.query, limit, offset), invitationQueryRow.toDomain)
}

func (r *UserInvitationRepository) Create(ctx context.Context, invitation domain.UserInvitation) (domain.UserInvitation, error) {
	id, err := r.db.Insert(ctx, invitationsTable.Name(), ptr(newInvitationRow(invitation)))
	if err != nil {
		return domain.UserInvitation{}, err
	}
	invitation.Entity = invitation.WithID(kernel.NewIntIdentifier(id))
	return invitation, nil
}

func (r *UserInvitationRepository) Update(ctx context.Context, invitation domain.UserInvitation) error {
	return r.db.Update(ctx, invitationsTable.Name(), byID(invitation.ID()), ptr(newInvitationRow(invitation)))
}

func (r *UserInvitationRepository) Delete(ctx context.Context, invitation domain.UserInvitation) error {
	return r.db.Delete(ctx, invitationsTable.Name(), byID(invitation.ID()))
}
