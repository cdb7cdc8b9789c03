// Package sqlstore stores the identity context in the kwai database.
package sqlstore

import (
	"fmt"
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/platform/database"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

var (
	usersTable = database.NewTable("users",
		"id", "email", "first_name", "last_name", "remark", "uuid", "last_login", "last_unsuccessful_login",
		"password", "revoked", "admin", "created_at", "updated_at")
	accessTokensTable = database.NewTable("oauth_access_tokens",
		"id", "identifier", "expiration", "user_id", "revoked", "created_at", "updated_at")
	refreshTokensTable = database.NewTable("oauth_refresh_tokens",
		"id", "identifier", "access_token_id", "expiration", "revoked", "created_at", "updated_at")
	invitationsTable = database.NewTable("user_invitations",
		"id", "email", "first_name", "last_name", "uuid", "expired_at", "remark", "user_id", "confirmed_at",
		"mailed_at", "revoked", "created_at", "updated_at")
	invitersTable   = database.NewTable("users", "id", "uuid", "first_name", "last_name").As("inviters")
	recoveriesTable = database.NewTable("user_recoveries",
		"id", "user_id", "uuid", "expired_at", "confirmed_at", "mailed_at", "remark", "created_at", "updated_at")
	userLogsTable = database.NewTable("user_logs",
		"id", "success", "email", "refresh_token_id", "client_ip", "user_agent", "remark", "created_at")
)

type userAccountRow struct {
	ID                    int64      `gorm:"column:id"`
	Email                 string     `gorm:"column:email"`
	FirstName             string     `gorm:"column:first_name"`
	LastName              string     `gorm:"column:last_name"`
	Remark                *string    `gorm:"column:remark"`
	UUID                  string     `gorm:"column:uuid"`
	LastLogin             *time.Time `gorm:"column:last_login"`
	LastUnsuccessfulLogin *time.Time `gorm:"column:last_unsuccessful_login"`
	Password              string     `gorm:"column:password"`
	Revoked               int        `gorm:"column:revoked"`
	Admin                 int        `gorm:"column:admin"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt             *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r userAccountRow) Key() int64 { return r.ID }

func newUserAccountRow(account domain.UserAccount) userAccountRow {
	return userAccountRow{
		ID:                    account.ID().Value(),
		Email:                 account.Email.String(),
		FirstName:             account.Name.FirstName,
		LastName:              account.Name.LastName,
		Remark:                database.NullString(account.Remark),
		UUID:                  account.UUID.String(),
		LastLogin:             account.LastLogin.Ptr(),
		LastUnsuccessfulLogin: account.LastUnsuccessfulLogin.Ptr(),
		Password:              account.Password.Hash(),
		Revoked:               database.Flag(account.Revoked),
		Admin:                 database.Flag(account.Admin),
		CreatedAt:             account.TraceableTime.CreatedAt.Time(),
		UpdatedAt:             account.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r userAccountRow) toDomain() (domain.UserAccount, error) {
	uuid, err := kernel.ParseUniqueID(r.UUID)
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("user %d: %w", r.ID, err)
	}
	email, err := kernel.NewEmailAddress(r.Email)
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("user %d: %w", r.ID, err)
	}
	return domain.UserAccount{
		Entity:                kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		UUID:                  uuid,
		Email:                 email,
		Name:                  kernel.Name{FirstName: r.FirstName, LastName: r.LastName},
		Remark:                database.StringValue(r.Remark),
		Password:              kernel.PasswordFromHash(r.Password),
		LastLogin:             kernel.TimestampFromPtr(r.LastLogin),
		LastUnsuccessfulLogin: kernel.TimestampFromPtr(r.LastUnsuccessfulLogin),
		Revoked:               database.IsSet(r.Revoked),
		Admin:                 database.IsSet(r.Admin),
		TraceableTime:         kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}, nil
}

type accessTokenRow struct {
	ID         int64      `gorm:"column:id"`
	Identifier string     `gorm:"column:identifier"`
	Expiration time.Time  `gorm:"column:expiration"`
	UserID     int64      `gorm:"column:user_id"`
	Revoked    int        `gorm:"column:revoked"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r accessTokenRow) Key() int64 { return r.ID }

func newAccessTokenRow(token domain.AccessToken) accessTokenRow {
	return accessTokenRow{
		ID:         token.ID().Value(),
		Identifier: token.Identifier.String(),
		Expiration: token.Expiration.Time(),
		UserID:     token.User.ID().Value(),
		Revoked:    database.Flag(token.Revoked),
		CreatedAt:  token.TraceableTime.CreatedAt.Time(),
		UpdatedAt:  token.TraceableTime.UpdatedAt.Ptr(),
	}
}

func (r accessTokenRow) toDomain(user domain.UserAccount) domain.AccessToken {
	return domain.AccessToken{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Identifier:    domain.TokenIdentifier(r.Identifier),
		Expiration:    kernel.NewTimestamp(r.Expiration),
		User:          user,
		Revoked:       database.IsSet(r.Revoked),
		TraceableTime: kernel.TraceableTimeFrom(r.CreatedAt, r.UpdatedAt),
	}
}

type accessTokenQueryRow struct {
	AccessToken accessTokenRow `gorm:"embedded;embeddedPrefix:oauth_access_tokens_"`
	User        userAccountRow `gorm:"embedded;embeddedPrefix:users_"`
}

func (r accessTokenQueryRow) toDomain() (domain.AccessToken, error) {
	user, err := r.User.toDomain()
	if err != nil {
		return domain.AccessToken{}, err
	}
	return r.AccessToken.toDomain(user), nil
}

type refreshTokenRow struct {
	ID            int64      `gorm:"column:id"`
	Identifier    string     `gorm:"column:identifier"`
	AccessTokenID int64      `gorm:"column:access_token_id"`
	Expiration    time.Time  `gorm:"column:expiration"`
	Revoked       int        `gorm:"column:revoked"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r refreshTokenRow) Key() int64 { return r.ID }

func newRefreshTokenRow(token domain.RefreshToken) refreshTokenRow {
	return refreshTokenRow{
		ID:            token.ID().Value(),
		Identifier:    token.Identifier.String(),
		AccessTokenID: token.AccessToken.ID().Value(),
		Expiration:    token.Expiration.Time(),
		Revoked:       database.Flag(token.Revoked),
		CreatedAt:     token.TraceableTime.CreatedAt.Time(),
		UpdatedAt:     token.TraceableTime.UpdatedAt.Ptr(),
	}
}

type refreshTokenQueryRow struct {
	RefreshToken refreshTokenRow `gorm:"embedded;embeddedPrefix:oauth_refresh_tokens_"`
	AccessToken  accessTokenRow  `gorm:"embedded;embeddedPrefix:oauth_access_tokens_"`
	User         userAccountRow  `gorm:"embedded;embeddedPrefix:users_"`
}

func (r refreshTokenQueryRow) toDomain() (domain.RefreshToken, error) {
	user, err := r.User.toDomain()
	if err != nil {
		return domain.RefreshToken{}, err
	}
	return domain.RefreshToken{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.RefreshToken.ID)),
		Identifier:    domain.TokenIdentifier(r.RefreshToken.Identifier),
		Expiration:    kernel.NewTimestamp(r.RefreshToken.Expiration),
		AccessToken:   r.AccessToken.toDomain(user),
		Revoked:       database.IsSet(r.RefreshToken.Revoked),
		TraceableTime: kernel.TraceableTimeFrom(r.RefreshToken.CreatedAt, r.RefreshToken.UpdatedAt),
	}, nil
}

type invitationRow struct {
	ID          int64      `gorm:"column:id"`
	Email       string     `gorm:"column:email"`
	FirstName   string     `gorm:"column:first_name"`
	LastName    string     `gorm:"column:last_name"`
	UUID        string     `gorm:"column:uuid"`
	ExpiredAt   time.Time  `gorm:"column:expired_at"`
	Remark      *string    `gorm:"column:remark"`
	UserID      int64      `gorm:"column:user_id"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	MailedAt    *time.Time `gorm:"column:mailed_at"`
	Revoked     int        `gorm:"column:revoked"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r invitationRow) Key() int64 { return r.ID }

func newInvitationRow(invitation domain.UserInvitation) invitationRow {
	return invitationRow{
		ID:          invitation.ID().Value(),
		Email:       invitation.Email.String(),
		FirstName:   invitation.Name.FirstName,
		LastName:    invitation.Name.LastName,
		UUID:        invitation.UUID.String(),
		ExpiredAt:   invitation.ExpiredAt.Time(),
		Remark:      database.NullString(invitation.Remark),
		UserID:      invitation.InvitedBy.ID.Value(),
		ConfirmedAt: invitation.ConfirmedAt.Ptr(),
		MailedAt:    invitation.MailedAt.Ptr(),
		Revoked:     database.Flag(invitation.Revoked),
		CreatedAt:   invitation.TraceableTime.CreatedAt.Time(),
		UpdatedAt:   invitation.TraceableTime.UpdatedAt.Ptr(),
	}
}

type inviterColumns struct {
	ID        int64  `gorm:"column:id"`
	UUID      string `gorm:"column:uuid"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

type invitationQueryRow struct {
	Invitation invitationRow  `gorm:"embedded;embeddedPrefix:user_invitations_"`
	Inviter    inviterColumns `gorm:"embedded;embeddedPrefix:inviters_"`
}

func (r invitationQueryRow) toDomain() (domain.UserInvitation, error) {
	uuid, err := kernel.ParseUniqueID(r.Invitation.UUID)
	if err != nil {
		return domain.UserInvitation{}, fmt.Errorf("user invitation %d: %w", r.Invitation.ID, err)
	}
	email, err := kernel.NewEmailAddress(r.Invitation.Email)
	if err != nil {
		return domain.UserInvitation{}, fmt.Errorf("user invitation %d: %w", r.Invitation.ID, err)
	}
	inviter, err := kernel.ParseUniqueID(r.Inviter.UUID)
	if err != nil {
		return domain.UserInvitation{}, fmt.Errorf("user %d: %w", r.Inviter.ID, err)
	}
	return domain.UserInvitation{
		Entity:    kernel.NewEntity(kernel.NewIntIdentifier(r.Invitation.ID)),
		UUID:      uuid,
		Email:     email,
		Name:      kernel.Name{FirstName: r.Invitation.FirstName, LastName: r.Invitation.LastName},
		ExpiredAt: kernel.NewTimestamp(r.Invitation.ExpiredAt),
		Remark:    database.StringValue(r.Invitation.Remark),
		InvitedBy: kernel.Owner{
			ID:   kernel.NewIntIdentifier(r.Inviter.ID),
			UUID: inviter,
			Name: kernel.Name{FirstName: r.Inviter.FirstName, LastName: r.Inviter.LastName},
		},
		ConfirmedAt:   kernel.TimestampFromPtr(r.Invitation.ConfirmedAt),
		MailedAt:      kernel.TimestampFromPtr(r.Invitation.MailedAt),
		Revoked:       database.IsSet(r.Invitation.Revoked),
		TraceableTime: kernel.TraceableTimeFrom(r.Invitation.CreatedAt, r.Invitation.UpdatedAt),
	}, nil
}

type recoveryRow struct {
	ID          int64      `gorm:"column:id"`
	UserID      int64      `gorm:"column:user_id"`
	UUID        string     `gorm:"column:uuid"`
	ExpiredAt   time.Time  `gorm:"column:expired_at"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	MailedAt    *time.Time `gorm:"column:mailed_at"`
	Remark      *string    `gorm:"column:remark"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (r recoveryRow) Key() int64 { return r.ID }

func newRecoveryRow(recovery domain.UserRecovery) recoveryRow {
	return recoveryRow{
		ID:          recovery.ID().Value(),
		UserID:      recovery.User.ID().Value(),
		UUID:        recovery.UUID.String(),
		ExpiredAt:   recovery.ExpiredAt.Time(),
		ConfirmedAt: recovery.ConfirmedAt.Ptr(),
		MailedAt:    recovery.MailedAt.Ptr(),
		Remark:      database.NullString(recovery.Remark),
		CreatedAt:   recovery.TraceableTime.CreatedAt.Time(),
		UpdatedAt:   recovery.TraceableTime.UpdatedAt.Ptr(),
	}
}

type recoveryQueryRow struct {
	Recovery recoveryRow    `gorm:"embedded;embeddedPrefix:user_recoveries_"`
	User     userAccountRow `gorm:"embedded;embeddedPrefix:users_"`
}

func (r recoveryQueryRow) toDomain() (domain.UserRecovery, error) {
	uuid, err := kernel.ParseUniqueID(r.Recovery.UUID)
	if err != nil {
		return domain.UserRecovery{}, fmt.Errorf("user recovery %d: %w", r.Recovery.ID, err)
	}
	user, err := r.User.toDomain()
	if err != nil {
		return domain.UserRecovery{}, err
	}
	return domain.UserRecovery{
		Entity:        kernel.NewEntity(kernel.NewIntIdentifier(r.Recovery.ID)),
		UUID:          uuid,
		User:          user,
		ExpiredAt:     kernel.NewTimestamp(r.Recovery.ExpiredAt),
		ConfirmedAt:   kernel.TimestampFromPtr(r.Recovery.ConfirmedAt),
		MailedAt:      kernel.TimestampFromPtr(r.Recovery.MailedAt),
		Remark:        database.StringValue(r.Recovery.Remark),
		TraceableTime: kernel.TraceableTimeFrom(r.Recovery.CreatedAt, r.Recovery.UpdatedAt),
	}, nil
}

type userLogRow struct {
	ID             int64     `gorm:"column:id"`
	Success        int       `gorm:"column:success"`
	Email          string    `gorm:"column:email"`
	RefreshTokenID *int64    `gorm:"column:refresh_token_id"`
	ClientIP       string    `gorm:"column:client_ip"`
	UserAgent      string    `gorm:"column:user_agent"`
	Remark         *string   `gorm:"column:remark"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (r userLogRow) Key() int64 { return r.ID }

func newUserLogRow(log domain.UserLog) userLogRow {
	return userLogRow{
		ID:             log.ID().Value(),
		Success:        database.Flag(log.Success),
		Email:          log.Email,
		RefreshTokenID: database.NullInt64(log.RefreshToken.Value()),
		ClientIP:       log.ClientIP,
		UserAgent:      log.UserAgent,
		Remark:         database.NullString(log.Remark),
		CreatedAt:      log.CreatedAt.Time(),
	}
}

func (r userLogRow) toDomain() domain.UserLog {
	return domain.UserLog{
		Entity:       kernel.NewEntity(kernel.NewIntIdentifier(r.ID)),
		Success:      database.IsSet(r.Success),
		Email:        r.Email,
		RefreshToken: kernel.NewIntIdentifier(database.Int64Value(r.RefreshTokenID)),
		ClientIP:     r.ClientIP,
		UserAgent:    r.UserAgent,
		Remark:       database.StringValue(r.Remark),
		CreatedAt:    kernel.NewTimestamp(r.CreatedAt),
	}
}

func byID(id kernel.IntIdentifier) database.Predicate {
	return database.Where("id = ?", id.Value())
}

func ptr[T any](value T) *T {
	return &value
}
