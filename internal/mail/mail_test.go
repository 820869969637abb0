package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"paragraphs", "<p>Olá</p><p>Clique <a href=\"x\">aqui</a>: http://x/create-account?invite=1</p>",
			"Olá Clique aqui: http://x/create-account?invite=1"},
		{"line breaks", "a<br>b<br/>c", "a b c"},
		{"drops style", "<style>p{color:red}</style><p>hi</p>", "hi"},
		{"entities", "<b>Tom &amp; Jerry</b>", "Tom & Jerry"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.in))
		})
	}
}

func TestMessage_PlainText(t *testing.T) {
	assert.Equal(t, "given", Message{HTML: "<p>html</p>", Text: "given"}.PlainText())
	assert.Equal(t, "html", Message{HTML: "<p>html</p>", Text: "  "}.PlainText())
}

func TestSimulatedSender(t *testing.T) {
	ctx := context.Background()

	ok := NewSimulatedSender(nil, 0)
	assert.NoError(t, ok.Send(ctx, Message{To: "a@example.com"}))
	assert.ErrorIs(t, ok.Send(ctx, Message{To: " "}), ErrNoRecipient)

	failing := NewSimulatedSender(nil, 5)
	assert.Equal(t, 1.0, failing.failureRate)
	assert.ErrorIs(t, failing.Send(ctx, Message{To: "a@example.com"}), ErrSimulatedFailure)

	half := NewSimulatedSender(nil, 0.5)
	half.roll = func() float64 { return 0.7 }
	assert.NoError(t, half.Send(ctx, Message{To: "a@example.com"}))
	half.roll = func() float64 { return 0.2 }
	assert.Error(t, half.Send(ctx, Message{To: "a@example.com"}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, ok.Send(cancelled, Message{To: "a@example.com"}), context.Canceled)
}

func TestSMTPSender_BuildsMultipartMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", From: "noreply@example.com"})

	var (
		gotAddr string
		gotTo   []string
		gotBody string
		gotAuth smtp.Auth
	)
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotBody = addr, a, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), Message{
		To:      "ana@example.com",
		Subject: "Convite",
		HTML:    "<p>Entre: <a href=\"http://x\">link</a></p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, []string{"ana@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Content-Type: multipart/alternative")
	assert.Contains(t, gotBody, "text/plain; charset=UTF-8")
	assert.Contains(t, gotBody, "Entre: link")
	assert.Contains(t, gotBody, "<a href=\"http://x\">link</a>")
	assert.True(t, strings.Index(gotBody, "text/plain") < strings.Index(gotBody, "text/html"))
}

func TestSMTPSender_WrapsTransportError(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: "25"})
	boom := errors.New("connection refused")
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := s.Send(context.Background(), Message{To: "a@example.com", HTML: "x"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipient)
}
