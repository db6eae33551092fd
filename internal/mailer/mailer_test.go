package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildResetMessage(t *testing.T) {
	msg := buildResetMessage("no-reply@example.com", "alice@example.com", "tok-123")

	assert.Contains(t, msg, "From: no-reply@example.com\r\n")
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Password reset request\r\n")
	assert.Contains(t, msg, "tok-123")
	// Headers and body are separated by a blank line.
	assert.Contains(t, msg, "\r\n\r\n")
}

func TestLogMailer_SendPasswordReset(t *testing.T) {
	m := NewLogMailer(zap.NewNop())

	err := m.SendPasswordReset(context.Background(), "alice@example.com", "tok-123")
	require.NoError(t, err)
}
