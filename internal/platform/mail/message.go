// Package mail composes and delivers the mails kwai sends to its users.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ErrNoRecipients is returned when a message has nobody to deliver to.
var ErrNoRecipients = errors.New("mail has no recipients")

type Recipient struct {
	Email string
	Name  string
}

func (r Recipient) String() string {
	return (&mail.Address{Name: r.Name, Address: r.Email}).String()
}

// Message is a mail with a plain text and an optional html body.
type Message struct {
	From    Recipient
	To      []Recipient
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if strings.TrimSpace(m.From.Email) == "" {
		return errors.New("mail has no sender")
	}
	for _, to := range m.To {
		if _, err := mail.ParseAddress(to.Email); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", to.Email, err)
		}
	}
	return nil
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}
