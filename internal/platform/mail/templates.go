package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names.
const (
	UserInvitationTemplate = "user_invitation"
	UserRecoveryTemplate   = "user_recovery"
)

// Templates renders the text and html variant of a mail. A template name has a
// <name>.txt.tmpl and a <name>.html.tmpl file.
type Templates struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func LoadTemplates() (*Templates, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text mail templates: %w", err)
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html mail templates: %w", err)
	}
	return &Templates{text: text, html: html}, nil
}

// Compose renders the template into a message for the recipients.
func (t *Templates) Compose(name, subject string, data any, from Recipient, to ...Recipient) (Message, error) {
	var text, html bytes.Buffer
	if err := t.text.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}
	if err := t.html.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}
	return Message{From: from, To: to, Subject: subject, Text: text.String(), HTML: html.String()}, nil
}
