package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SMTPMailer sends messages as multipart/alternative mails over SMTP.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, message Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encode(message, time.Now())
	if err != nil {
		return err
	}
	to := make([]string, 0, len(message.To))
	for _, recipient := range message.To {
		to = append(to, recipient.Email)
	}
	if err := m.send(m.addr, m.auth, message.From.Email, to, body); err != nil {
		return fmt.Errorf("send mail to %v: %w", to, err)
	}
	return nil
}

func encode(message Message, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	recipients := make([]string, 0, len(message.To))
	for _, to := range message.To {
		recipients = append(recipients, to.String())
	}
	header := textproto.MIMEHeader{}
	header.Set("From", message.From.String())
	for _, recipient := range recipients {
		header.Add("To", recipient)
	}
	header.Set("Subject", mime.QEncoding.Encode("utf-8", message.Subject))
	header.Set("Date", now.Format(time.RFC1123Z))
	header.Set("MIME-Version", "1.0")
	for key, value := range message.Headers {
		header.Set(key, value)
	}

	writer := multipart.NewWriter(&buf)
	header.Set("Content-Type", "multipart/alternative; boundary="+writer.Boundary())
	for key, values := range header {
		for _, value := range values {
			fmt.Fprintf(&buf, "%s: %s\r\n", key, value)
		}
	}
	buf.WriteString("\r\n")

	parts := []struct{ contentType, body string }{{"text/plain; charset=utf-8", message.Text}}
	if message.HTML != "" {
		parts = append(parts, struct{ contentType, body string }{"text/html; charset=utf-8", message.HTML})
	}
	for _, part := range parts {
		w, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
