package domain

import "github.com/fbraem/kwai/internal/shared/kernel"

type UserLogIdentifier = kernel.IntIdentifier

// UserLog records one login or token renewal attempt. Email is kept as entered,
// so failed attempts for unknown accounts are logged too.
type UserLog struct {
	kernel.Entity[UserLogIdentifier]
	Success      bool
	Email        string
	RefreshToken RefreshTokenIdentifier
	ClientIP     string
	UserAgent    string
	Remark       string
	CreatedAt    kernel.Timestamp
}

// Client describes where a login request came from.
type Client struct {
	IP        string
	UserAgent string
}

func NewSuccessfulLogin(email string, token RefreshToken, client Client) UserLog {
	return UserLog{
		Success:      true,
		Email:        email,
		RefreshToken: token.ID(),
		ClientIP:     client.IP,
		UserAgent:    client.UserAgent,
		CreatedAt:    kernel.Now(),
	}
}

func NewFailedLogin(email string, client Client, remark string) UserLog {
	return UserLog{
		Email:     email,
		ClientIP:  client.IP,
		UserAgent: client.UserAgent,
		Remark:    remark,
		CreatedAt: kernel.Now(),
	}
}
