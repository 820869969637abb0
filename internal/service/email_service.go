package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/mail"
)

const linkPlaceholder = "{link}"

// EmailRecipient is one address of a bulk invite campaign. Addresses are
// checked per recipient, so a bad one is reported without failing the rest.
type EmailRecipient struct {
	Email string `json:"email"`
}

// EmailRequest is the payload of a bulk invite campaign.
type EmailRequest struct {
	Recipients []EmailRecipient `json:"recipients" validate:"required,min=1,dive"`
	Subject    string           `json:"subject" validate:"required"`
	HTML       string           `json:"html" validate:"required"`
	Text       string           `json:"text"`
}

// EmailError records why one recipient was not reached.
type EmailError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// EmailDetails tallies a campaign.
type EmailDetails struct {
	SuccessfulSends int          `json:"successfulSends"`
	FailedSends     int          `json:"failedSends"`
	Errors          []EmailError `json:"errors"`
}

// EmailReport is the outcome of a campaign.
type EmailReport struct {
	Message string       `json:"message"`
	Details EmailDetails `json:"details"`
}

// EmailService sends invite emails, one fresh invite per recipient.
type EmailService interface {
	SendInvites(ctx context.Context, adminID string, req EmailRequest) (*EmailReport, error)
}

type emailService struct {
	invites     InviteService
	sender      mail.Sender
	baseURL     string
	concurrency int
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewEmailService creates an email service. Links point at baseURL.
func NewEmailService(invites InviteService, sender mail.Sender, baseURL string, concurrency int, logger *zap.Logger) EmailService {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &emailService{
		invites:     invites,
		sender:      sender,
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: concurrency,
		validate:    validator.New(),
		logger:      logger,
	}
}

// InviteLink builds the signup link for code.
func InviteLink(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/create-account?invite=" + code
}

// SendInvites issues and mails one invite per recipient. A failed send keeps
// its invite. The returned error is nil when every send succeeded,
// ErrPartialFailure when some did and ErrTotalFailure when none did; the
// report is returned in all three cases.
func (s *emailService) SendInvites(ctx context.Context, adminID string, req EmailRequest) (*EmailReport, error) {
	if len(req.Recipients) == 0 {
		return nil, fmt.Errorf("%w: recipient list is empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTML) == "" {
		return nil, fmt.Errorf("%w: subject and html body are required", apperrors.ErrValidationFailed)
	}

	results := make([]error, len(req.Recipients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range req.Recipients {
		g.Go(func() error {
			results[i] = s.sendOne(gctx, adminID, r.Email, req)
			return nil
		})
	}
	_ = g.Wait()

	report := &EmailReport{Details: EmailDetails{Errors: []EmailError{}}}
	for i, err := range results {
		if err == nil {
			report.Details.SuccessfulSends++
			continue
		}
		report.Details.FailedSends++
		report.Details.Errors = append(report.Details.Errors, EmailError{
			Email: req.Recipients[i].Email,
			Error: err.Error(),
		})
	}

	s.logger.Info("invite campaign finished",
		zap.String("admin_id", adminID),
		zap.Int("successful", report.Details.SuccessfulSends),
		zap.Int("failed", report.Details.FailedSends),
	)

	switch {
	case report.Details.FailedSends == 0:
		report.Message = "All invite emails were processed for delivery."
		return report, nil
	case report.Details.SuccessfulSends == 0:
		report.Message = "Failed to process the invite emails."
		return report, apperrors.ErrTotalFailure
	default:
		report.Message = "Invite emails processed with some errors."
		return report, apperrors.ErrPartialFailure
	}
}

func (s *emailService) sendOne(ctx context.Context, adminID, to string, req EmailRequest) error {
	invite, err := s.invites.Issue(ctx, adminID)
	if err != nil {
		return err
	}
	to = strings.TrimSpace(to)
	if err := s.checkAddress(to); err != nil {
		s.logger.Warn("invite email not sent", zap.String("to", to), zap.String("invite", invite.Code), zap.Error(err))
		return err
	}
	link := InviteLink(s.baseURL, invite.Code)
	msg := mail.Message{
		To:      to,
		Subject: req.Subject,
		HTML:    strings.ReplaceAll(req.HTML, linkPlaceholder, link),
		Text:    strings.ReplaceAll(req.Text, linkPlaceholder, link),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Warn("invite email failed", zap.String("to", msg.To), zap.String("invite", invite.Code), zap.Error(err))
		return err
	}
	return nil
}

func (s *emailService) checkAddress(to string) error {
	if to == "" {
		return mail.ErrNoRecipient
	}
	if err := s.validate.Var(to, "email"); err != nil {
		return fmt.Errorf("%w: %q", mail.ErrInvalidAddress, to)
	}
	return nil
}
