// Package mailer delivers transactional mail. SMTP is used when configured;
// otherwise messages are written to the log so local setups still see links.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg  SMTPConfig
	send func(e *email.Email, addr string, a smtp.Auth) error
}

func NewSMTP(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		send: func(e *email.Email, addr string, a smtp.Auth) error {
			return e.Send(addr, a)
		},
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)

	var a smtp.Auth
	if m.cfg.User != "" {
		a = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	if err := m.send(e, addr, a); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer writes messages to the request logger instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	zerolog.Ctx(ctx).Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("📧 mail not sent (SMTP disabled)")
	return nil
}

// Recorder keeps sent messages in memory.
type Recorder struct {
	Sent []Message
}

func (r *Recorder) Send(ctx context.Context, msg Message) error {
	r.Sent = append(r.Sent, msg)
	return nil
}
