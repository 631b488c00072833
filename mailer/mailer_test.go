package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_BuildsMessage(t *testing.T) {
	m := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "u", Password: "p", From: "TeaZen <shop@example.com>"})

	var gotAddr string
	var got *email.Email
	m.send = func(e *email.Email, addr string, a smtp.Auth) error {
		got, gotAddr = e, addr
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), Message{To: "lan@example.com", Subject: "Reset", Text: "link"}))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"lan@example.com"}, got.To)
	assert.Equal(t, "TeaZen <shop@example.com>", got.From)
	assert.Equal(t, "link", string(got.Text))
}

func TestSMTPMailer_WrapsError(t *testing.T) {
	m := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 25})
	boom := errors.New("boom")
	m.send = func(*email.Email, string, smtp.Auth) error { return boom }

	err := m.Send(context.Background(), Message{To: "a@b.c"})
	assert.ErrorIs(t, err, boom)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Send(context.Background(), Message{To: "x@y.z"}))
	assert.Len(t, r.Sent, 1)
	require.NoError(t, LogMailer{}.Send(context.Background(), Message{To: "x@y.z"}))
}
