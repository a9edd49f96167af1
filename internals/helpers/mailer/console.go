package mailer

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// ConsoleMailer prints emails to the log and keeps a copy of each one.
type ConsoleMailer struct {
	from          mail.Address
	subjPrefix    string
	DisableOutput bool
	FailWith      error

	mu   sync.Mutex
	sent []Message
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsole(fromName, fromEmail string) *ConsoleMailer {
	return &ConsoleMailer{
		from:       mail.Address{Name: fromName, Address: fromEmail},
		subjPrefix: "[" + fromName + "] ",
	}
}

func (m *ConsoleMailer) Send(_ context.Context, msg *Message) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if err := msg.Render(); err != nil {
		return err
	}

	if !m.DisableOutput {
		body := new(strings.Builder)
		_, _ = fmt.Fprintf(body, "From: %s\r\n", m.from.String())
		_, _ = fmt.Fprintf(body, "To: %s\r\n", (&mail.Address{Name: msg.ToName, Address: msg.ToEmail}).String())
		_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
		_, _ = fmt.Fprintf(body, "Subject: %s\r\n\r\n", m.subjPrefix+msg.Subject)
		_, _ = fmt.Fprint(body, msg.TextContent)
		log.Printf("[MAIL] console\n%s", body.String())
	}

	m.mu.Lock()
	m.sent = append(m.sent, *msg)
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of every message sent so far.
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

// Last returns the most recent message to the given address.
func (m *ConsoleMailer) Last(toEmail string) (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if strings.EqualFold(m.sent[i].ToEmail, toEmail) {
			return m.sent[i], true
		}
	}
	return Message{}, false
}
