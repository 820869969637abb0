package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/mail"
)

type recordingSender struct {
	mu     sync.Mutex
	sent   []mail.Message
	failTo map[string]bool
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTo[msg.To] {
		return errors.New("mailbox unavailable")
	}
	r.sent = append(r.sent, msg)
	return nil
}

func campaign(emails ...string) EmailRequest {
	req := EmailRequest{
		Subject: "Convite",
		HTML:    `<p>Crie sua conta: <a href="{link}">{link}</a></p>`,
	}
	for _, e := range emails {
		req.Recipients = append(req.Recipients, EmailRecipient{Email: e})
	}
	return req
}

func TestEmailService_AllDelivered(t *testing.T) {
	env := newTestEnv(t)
	sender := &recordingSender{}
	svc := NewEmailService(env.invites, sender, "https://alumni.example.com/", 3, nil)

	report, err := svc.SendInvites(context.Background(), "admin-1", campaign("a@example.com", "b@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Details.SuccessfulSends)
	assert.Equal(t, 0, report.Details.FailedSends)
	assert.Empty(t, report.Details.Errors)

	invites, err := env.invites.List(context.Background())
	require.NoError(t, err)
	require.Len(t, invites, 2)

	require.Len(t, sender.sent, 2)
	for _, msg := range sender.sent {
		assert.NotContains(t, msg.HTML, "{link}")
		assert.Contains(t, msg.HTML, "https://alumni.example.com/create-account?invite=")
	}
	codes := map[string]bool{}
	for _, inv := range invites {
		codes[inv.Code] = true
		assert.Equal(t, "admin-1", inv.CreatedBy)
	}
	for _, msg := range sender.sent {
		code := msg.HTML[strings.Index(msg.HTML, "invite=")+len("invite=") : strings.Index(msg.HTML, `">`)]
		assert.True(t, codes[code], "link must carry an issued invite code")
	}
}

func TestEmailService_PartialFailureKeepsInvites(t *testing.T) {
	env := newTestEnv(t)
	sender := &recordingSender{failTo: map[string]bool{"bad@example.com": true}}
	svc := NewEmailService(env.invites, sender, "http://localhost:5173", 2, nil)

	report, err := svc.SendInvites(context.Background(), "admin-1", campaign("a@example.com", "bad@example.com", "c@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrPartialFailure)
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Details.SuccessfulSends)
	assert.Equal(t, 1, report.Details.FailedSends)
	assert.Equal(t, []EmailError{{Email: "bad@example.com", Error: "mailbox unavailable"}}, report.Details.Errors)

	invites, err := env.invites.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, invites, 3, "failed sends do not revoke issued invites")
}

func TestEmailService_MalformedAddressFailsOnlyThatRecipient(t *testing.T) {
	env := newTestEnv(t)
	sender := &recordingSender{}
	svc := NewEmailService(env.invites, sender, "http://localhost:5173", 2, nil)

	report, err := svc.SendInvites(context.Background(), "admin-1", campaign("a@example.com", "not-an-address", "  "))
	assert.ErrorIs(t, err, apperrors.ErrPartialFailure)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Details.SuccessfulSends)
	assert.Equal(t, 2, report.Details.FailedSends)
	require.Len(t, report.Details.Errors, 2)
	assert.Equal(t, "not-an-address", report.Details.Errors[0].Email)
	assert.Contains(t, report.Details.Errors[0].Error, mail.ErrInvalidAddress.Error())
	assert.Equal(t, mail.ErrNoRecipient.Error(), report.Details.Errors[1].Error)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@example.com", sender.sent[0].To)

	invites, err := env.invites.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, invites, 3, "every recipient gets an invite, reachable or not")
}

func TestEmailService_TotalFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEmailService(env.invites, mail.NewSimulatedSender(nil, 1), "http://localhost", 0, nil)

	report, err := svc.SendInvites(context.Background(), "admin-1", campaign("a@example.com", "b@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrTotalFailure)
	assert.Equal(t, 0, report.Details.SuccessfulSends)
	assert.Equal(t, 2, report.Details.FailedSends)
	assert.Equal(t, "a@example.com", report.Details.Errors[0].Email)
	assert.Equal(t, "b@example.com", report.Details.Errors[1].Email)
}

func TestEmailService_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEmailService(env.invites, &recordingSender{}, "http://localhost", 1, nil)
	ctx := context.Background()

	_, err := svc.SendInvites(ctx, "admin-1", campaign())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req := campaign("a@example.com")
	req.Subject = " "
	_, err = svc.SendInvites(ctx, "admin-1", req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	invites, err := env.invites.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, invites)
}

func TestInviteLink(t *testing.T) {
	assert.Equal(t, "http://x/create-account?invite=abc", InviteLink("http://x/", "abc"))
}
