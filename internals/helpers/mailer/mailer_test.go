package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmEmail(t *testing.T) {
	msg := &Message{
		ToEmail:  "a@x.com",
		ToName:   "A <b>",
		Subject:  "Confirm",
		Template: TemplateConfirmEmail,
		Data:     map[string]any{"Link": "http://localhost:3000/confirm-email/tok"},
	}
	require.NoError(t, msg.Render())

	assert.Contains(t, msg.TextContent, "http://localhost:3000/confirm-email/tok")
	assert.Contains(t, msg.HTMLContent, `href="http://localhost:3000/confirm-email/tok"`)
	assert.Contains(t, msg.HTMLContent, "A &lt;b&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	err := (&Message{Template: "nope"}).Render()
	assert.Error(t, err)
}

func TestConsoleMailerRecords(t *testing.T) {
	m := NewConsole("Teecha", "no-reply@teecha.app")
	m.DisableOutput = true

	require.NoError(t, m.Send(context.Background(), &Message{ToEmail: "a@x.com", Subject: "one", Template: TemplateWelcome}))
	require.NoError(t, m.Send(context.Background(), &Message{ToEmail: "A@x.com", Subject: "two", Template: TemplateWelcome}))

	last, ok := m.Last("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "two", last.Subject)
	assert.Len(t, m.Sent(), 2)

	_, ok = m.Last("b@x.com")
	assert.False(t, ok)

	m.FailWith = errors.New("smtp down")
	assert.Error(t, m.Send(context.Background(), &Message{ToEmail: "a@x.com"}))
	assert.Len(t, m.Sent(), 2)
}
