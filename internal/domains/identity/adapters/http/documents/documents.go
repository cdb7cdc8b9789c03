// Package documents converts identity entities to JSON:API documents. Resources are
// identified by their unique id, never by the database key.
package documents

import (
	"github.com/fbraem/kwai/internal/domains/identity/domain"
	"github.com/fbraem/kwai/internal/shared/jsonapi"
	"github.com/fbraem/kwai/internal/shared/kernel"
)

const (
	UserAccountType    = "user_accounts"
	UserInvitationType = "user_invitations"
	RevokedUserType    = "revoked_users"
)

type UserAccountAttributes struct {
	Email                 string           `json:"email"`
	FirstName             string           `json:"first_name"`
	LastName              string           `json:"last_name"`
	Remark                string           `json:"remark"`
	LastLogin             kernel.Timestamp `json:"last_login"`
	LastUnsuccessfulLogin kernel.Timestamp `json:"last_unsuccessful_login"`
	Revoked               bool             `json:"revoked"`
	Admin                 bool             `json:"admin"`
}

type UserAccountDocument = jsonapi.Document[UserAccountAttributes]

func NewUserAccountDocument(account domain.UserAccount) UserAccountDocument {
	return jsonapi.NewDocument(jsonapi.Resource[UserAccountAttributes]{
		Type: UserAccountType,
		ID:   account.UUID.String(),
		Attributes: UserAccountAttributes{
			Email:                 account.Email.String(),
			FirstName:             account.Name.FirstName,
			LastName:              account.Name.LastName,
			Remark:                account.Remark,
			LastLogin:             account.LastLogin,
			LastUnsuccessfulLogin: account.LastUnsuccessfulLogin,
			Revoked:               account.Revoked,
			Admin:                 account.Admin,
		},
		Meta: jsonapi.NewResourceMeta(account.TraceableTime),
	})
}

func NewUserAccountPresenter() *jsonapi.DocumentPresenter[domain.UserAccount, UserAccountAttributes] {
	return jsonapi.NewDocumentPresenter(NewUserAccountDocument)
}

func NewUserAccountsPresenter() *jsonapi.CollectionPresenter[domain.UserAccount, UserAccountAttributes] {
	return jsonapi.NewCollectionPresenter(NewUserAccountDocument)
}

// UserInvitationAttributes is also the payload of a new invitation. Only email,
// first_name, last_name and remark are read from a request.
type UserInvitationAttributes struct {
	Email       string           `json:"email" binding:"required,email"`
	FirstName   string           `json:"first_name" binding:"required"`
	LastName    string           `json:"last_name" binding:"required"`
	Remark      string           `json:"remark"`
	MailedAt    kernel.Timestamp `json:"mailed_at"`
	ExpiredAt   kernel.Timestamp `json:"expired_at"`
	ConfirmedAt kernel.Timestamp `json:"confirmed_at"`
	Revoked     bool             `json:"revoked"`
}

type UserInvitationDocument = jsonapi.Document[UserInvitationAttributes]

func NewUserInvitationDocument(invitation domain.UserInvitation) UserInvitationDocument {
	return jsonapi.NewDocument(jsonapi.Resource[UserInvitationAttributes]{
		Type: UserInvitationType,
		ID:   invitation.UUID.String(),
		Attributes: UserInvitationAttributes{
			Email:       invitation.Email.String(),
			FirstName:   invitation.Name.FirstName,
			LastName:    invitation.Name.LastName,
			Remark:      invitation.Remark,
			MailedAt:    invitation.MailedAt,
			ExpiredAt:   invitation.ExpiredAt,
			ConfirmedAt: invitation.ConfirmedAt,
			Revoked:     invitation.Revoked,
		},
		Meta: jsonapi.NewResourceMeta(invitation.TraceableTime),
	})
}

func NewUserInvitationPresenter() *jsonapi.DocumentPresenter[domain.UserInvitation, UserInvitationAttributes] {
	return jsonapi.NewDocumentPresenter(NewUserInvitationDocument)
}

func NewUserInvitationsPresenter() *jsonapi.CollectionPresenter[domain.UserInvitation, UserInvitationAttributes] {
	return jsonapi.NewCollectionPresenter(NewUserInvitationDocument)
}

// RevokedUserAttributes is read from and written to /auth/revoked_users. The id of
// the resource is the unique id of the user account.
type RevokedUserAttributes struct {
	Revoked bool `json:"revoked"`
}

type RevokedUserDocument = jsonapi.Document[RevokedUserAttributes]

func NewRevokedUserDocument(account domain.UserAccount) RevokedUserDocument {
	return jsonapi.NewDocument(jsonapi.Resource[RevokedUserAttributes]{
		Type:       RevokedUserType,
		ID:         account.UUID.String(),
		Attributes: RevokedUserAttributes{Revoked: account.Revoked},
		Meta:       jsonapi.NewResourceMeta(account.TraceableTime),
	})
}

func NewRevokedUserPresenter() *jsonapi.DocumentPresenter[domain.UserAccount, RevokedUserAttributes] {
	return jsonapi.NewDocumentPresenter(NewRevokedUserDocument)
}
