// Package application implements the use cases of the identity context.
package application

import (
	"time"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
	"github.com/fbraem/kwai/internal/platform/mail"
	"github.com/fbraem/kwai/internal/shared/uow"
)

var _ ports.Service = (*Service)(nil)

const (
	DefaultAccessTokenExpiry  = 2 * time.Hour
	DefaultRefreshTokenExpiry = 60 * 24 * time.Hour
	DefaultInvitationDays     = 7
	DefaultRecoveryExpiry     = 2 * time.Hour
)

// Repositories groups the stores the service works with.
type Repositories struct {
	Users         ports.UserAccountRepository
	AccessTokens  ports.AccessTokenRepository
	RefreshTokens ports.RefreshTokenRepository
	Invitations   ports.UserInvitationRepository
	Recoveries    ports.UserRecoveryRepository
	UserLogs      ports.UserLogRepository
}

// Website describes the site mails are sent for. URL is the base of the links in
// the mails, Email and Name form the sender.
type Website struct {
	URL   string
	Name  string
	Email string
}

type Option func(*Service)

func WithAccessTokenExpiry(d time.Duration) Option {
	return func(s *Service) { s.accessExpiry = d }
}

func WithRefreshTokenExpiry(d time.Duration) Option {
	return func(s *Service) { s.refreshExpiry = d }
}

func WithRecoveryExpiry(d time.Duration) Option {
	return func(s *Service) { s.recoveryExpiry = d }
}

func WithWebsite(website Website) Option {
	return func(s *Service) { s.website = website }
}

type Service struct {
	repos          Repositories
	publisher      ports.EventPublisher
	mailer         mail.Mailer
	templates      *mail.Templates
	uow            uow.UnitOfWork
	accessExpiry   time.Duration
	refreshExpiry  time.Duration
	recoveryExpiry time.Duration
	website        Website
}

func NewService(
	repos Repositories,
	publisher ports.EventPublisher,
	mailer mail.Mailer,
	templates *mail.Templates,
	unitOfWork uow.UnitOfWork,
	opts ...Option,
) *Service {
	s := &Service{
		repos:          repos,
		publisher:      publisher,
		mailer:         mailer,
		templates:      templates,
		uow:            unitOfWork,
		accessExpiry:   DefaultAccessTokenExpiry,
		refreshExpiry:  DefaultRefreshTokenExpiry,
		recoveryExpiry: DefaultRecoveryExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
