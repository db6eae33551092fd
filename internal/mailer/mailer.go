package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/SupermaxiMarket/pme-freelance-assistant/config"
)

// SMTPMailer delivers password-reset emails over SMTP.
type SMTPMailer struct {
	cfg config.SMTP
	log *zap.Logger
}

func NewSMTPMailer(cfg config.SMTP, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	msg := buildResetMessage(m.cfg.From, email, token)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	m.log.Info("password reset email sent", zap.String("recipient", email))

	return nil
}

func buildResetMessage(from, to, token string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString("Subject: Password reset request\r\n")
	b.WriteString("\r\n")
	b.WriteString("A password reset was requested for your account.\r\n")
	b.WriteString(fmt.Sprintf("Reset token: %s\r\n", token))
	b.WriteString("The token expires in one hour. If you did not request this, ignore this email.\r\n")

	return b.String()
}

// LogMailer is the development substitute for real delivery: the token only
// shows up in the server log.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.log.Info("password reset email (not sent, no SMTP host configured)",
		zap.String("recipient", email),
		zap.String("token", token),
	)

	return nil
}
