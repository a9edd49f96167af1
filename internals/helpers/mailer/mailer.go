package mailer

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	"sync"
	texttemplate "text/template"

	"teecha_backend/internals/configs"
)

// Message is a templated email addressed to one recipient.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	Template string
	Data     map[string]any

	TextContent string
	HTMLContent string
}

// Mailer sends a message synchronously; callers decide how to treat failures.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// New picks the sender from MAIL_PROVIDER (sendgrid|console).
func New() Mailer {
	fromEmail := configs.GetEnv("MAIL_FROM_EMAIL", "no-reply@teecha.app")
	fromName := configs.GetEnv("MAIL_FROM_NAME", configs.AppName)

	switch strings.ToLower(configs.GetEnv("MAIL_PROVIDER", "console")) {
	case "sendgrid":
		key := configs.GetEnv("SENDGRID_API_KEY")
		if key == "" {
			log.Println("[MAIL] SENDGRID_API_KEY empty, falling back to console")
			break
		}
		log.Println("[MAIL] using sendgrid")
		return NewSendgrid(key, fromName, fromEmail)
	}
	log.Println("[MAIL] using console sender")
	return NewConsole(fromName, fromEmail)
}

/* ===============================
   Templates
=================================*/

type template struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

var (
	templates     = map[string]template{}
	templatesOnce sync.Once
)

func loadTemplates() {
	for name, src := range templateSources {
		templates[name] = template{
			html: htmltemplate.Must(htmltemplate.New(name).Parse(src.html)),
			text: texttemplate.Must(texttemplate.New(name).Parse(src.text)),
		}
	}
}

// Render fills TextContent and HTMLContent from the named template.
func (m *Message) Render() error {
	if m.Template == "" {
		return nil
	}
	templatesOnce.Do(loadTemplates)
	tpl, ok := templates[m.Template]
	if !ok {
		return fmt.Errorf("unknown email template %q", m.Template)
	}

	data := map[string]any{
		"AppName":     configs.AppName,
		"FrontendURL": configs.FrontendURL,
		"Name":        m.ToName,
	}
	for k, v := range m.Data {
		data[k] = v
	}

	var html, text bytes.Buffer
	if err := tpl.html.Execute(&html, data); err != nil {
		return fmt.Errorf("render html %s: %w", m.Template, err)
	}
	if err := tpl.text.Execute(&text, data); err != nil {
		return fmt.Errorf("render text %s: %w", m.Template, err)
	}
	m.HTMLContent = html.String()
	m.TextContent = text.String()
	return nil
}
