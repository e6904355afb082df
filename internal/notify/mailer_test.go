package notify

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSend_MockModeWhenUnconfigured(t *testing.T) {
	var buf bytes.Buffer
	m := NewMailer(Config{AdminEmail: "ops@example.com"}, log.New(&buf, "", 0))

	err := m.Send("Security Alert: Unauthorized Access", "details here")
	require.NoError(t, err, "mock mode always reports success")

	out := buf.String()
	assert.Contains(t, out, "MOCK EMAIL")
	assert.Contains(t, out, "ops@example.com")
	assert.Contains(t, out, "Security Alert: Unauthorized Access")
	assert.Contains(t, out, "details here")
}

func TestSend_PlaceholderUserIsMockMode(t *testing.T) {
	var buf bytes.Buffer
	m := NewMailer(Config{User: "admin@sector7.com", Password: "x"}, log.New(&buf, "", 0))

	require.NoError(t, m.Send("subject", "body"))
	assert.Contains(t, buf.String(), "MOCK EMAIL")
}

func TestSend_ConfiguredUsesTransport(t *testing.T) {
	var buf bytes.Buffer
	m := NewMailer(Config{
		SMTPHost:   "smtp.example.com",
		User:       "alerts@example.com",
		Password:   "secret",
		AdminEmail: "ops@example.com",
	}, log.New(&buf, "", 0))

	var sent *gomail.Message
	m.send = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	require.NoError(t, m.Send("Door Breach", "body text"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"[SYSTEM ALERT] Door Breach"}, sent.GetHeader("Subject"))
	assert.Equal(t, []string{"ops@example.com"}, sent.GetHeader("To"))
	assert.NotContains(t, buf.String(), "MOCK EMAIL")
}

func TestSend_TransportErrorSurfaces(t *testing.T) {
	m := NewMailer(Config{
		SMTPHost: "smtp.example.com",
		User:     "alerts@example.com",
		Password: "secret",
	}, log.New(&bytes.Buffer{}, "", 0))
	m.send = func(*gomail.Message) error { return errors.New("connection refused") }

	err := m.Send("subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConfigured(t *testing.T) {
	assert.False(t, Config{}.Configured())
	assert.False(t, Config{User: "a@b.c"}.Configured())
	assert.False(t, Config{User: "admin@sector7.com", Password: "x"}.Configured())
	assert.True(t, Config{User: "a@b.c", Password: "x"}.Configured())
}
