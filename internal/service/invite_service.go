package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"alumnidir/internal/auth"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

// SignupInput is the payload for redeeming an invite into a new profile.
type SignupInput struct {
	InviteCode          string   `json:"inviteCode" validate:"required"`
	Username            string   `json:"username" validate:"required"`
	Password            string   `json:"password" validate:"required,min=6"`
	Name                string   `json:"name" validate:"required"`
	Course              string   `json:"course"`
	GraduationYear      string   `json:"graduationYear"`
	PersonalDescription string   `json:"personalDescription"`
	CareerDescription   string   `json:"careerDescription"`
	ContactLinks        []string `json:"contactLinks" validate:"max=5"`
	ProfileImage        string   `json:"profileImage"`
	FaceImage           string   `json:"faceImage"`
	FacePoints          string   `json:"facePoints"`
	TermsAccepted       bool     `json:"termsAccepted" validate:"required"`
}

// CancelInviteInput names the invite to cancel.
type CancelInviteInput struct {
	Code string `json:"code" validate:"required"`
}

// InviteService manages the single-use invite ledger.
type InviteService interface {
	Issue(ctx context.Context, adminID string) (*model.Invite, error)
	List(ctx context.Context) ([]model.Invite, error)
	Cancel(ctx context.Context, code string) (*model.Invite, error)
	Redeem(ctx context.Context, in SignupInput) (*model.Profile, error)
}

type inviteService struct {
	repo   repository.InviteRepository
	tx     repository.Transactor
	hasher auth.PasswordHasher
	now    func() time.Time
}

// NewInviteService creates a new invite service.
func NewInviteService(repo repository.InviteRepository, tx repository.Transactor, hasher auth.PasswordHasher) InviteService {
	return &inviteService{repo: repo, tx: tx, hasher: hasher, now: time.Now}
}

// Issue creates an unused invite owned by adminID.
func (s *inviteService) Issue(ctx context.Context, adminID string) (*model.Invite, error) {
	invite := &model.Invite{
		CreatedBy: adminID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return invite, nil
}

// List returns every invite, newest first.
func (s *inviteService) List(ctx context.Context) ([]model.Invite, error) {
	invites, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}

// Cancel consumes an unused invite without creating a profile.
func (s *inviteService) Cancel(ctx context.Context, code string) (*model.Invite, error) {
	code = strings.TrimSpace(code)
	invite, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find invite: %w", err)
	}
	if invite.Used {
		return nil, apperrors.ErrInvalidOrUsedInvite
	}

	at := s.now()
	ok, err := s.repo.MarkUsed(ctx, code, at)
	if err != nil {
		return nil, fmt.Errorf("cancel invite: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidOrUsedInvite
	}
	invite.Used = true
	invite.UsedAt = &at
	return invite, nil
}

// Redeem creates a profile from in and consumes its invite in one transaction.
// Either both happen or neither does.
func (s *inviteService) Redeem(ctx context.Context, in SignupInput) (*model.Profile, error) {
	code := strings.TrimSpace(in.InviteCode)
	username := strings.TrimSpace(in.Username)
	if code == "" || username == "" || strings.TrimSpace(in.Name) == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: inviteCode, username, name and a password of at least 6 characters are required", apperrors.ErrValidationFailed)
	}
	if !in.TermsAccepted {
		return nil, fmt.Errorf("%w: terms must be accepted", apperrors.ErrValidationFailed)
	}
	links, err := cleanContactLinks(in.ContactLinks)
	if err != nil {
		return nil, err
	}
	digest, err := s.hasher.Digest(in.Password)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Name:                strings.TrimSpace(in.Name),
		Username:            username,
		PasswordDigest:      digest,
		Course:              in.Course,
		GraduationYear:      in.GraduationYear,
		PersonalDescription: in.PersonalDescription,
		CareerDescription:   in.CareerDescription,
		ContactLinks:        links,
		ProfileImage:        in.ProfileImage,
		FaceImage:           in.FaceImage,
		FacePoints:          in.FacePoints,
		TermsAccepted:       true,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		invite, err := repos.Invites.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInvalidOrUsedInvite
			}
			return fmt.Errorf("find invite: %w", err)
		}
		if invite.Used {
			return apperrors.ErrInvalidOrUsedInvite
		}

		taken, err := repos.Profiles.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return apperrors.ErrConflict
		}

		if profile.Course != "" {
			courses, err := repos.Courses.List(ctx)
			if err != nil {
				return fmt.Errorf("list courses: %w", err)
			}
			if !slices.Contains(courses, profile.Course) {
				return fmt.Errorf("%w: unknown course %q", apperrors.ErrValidationFailed, profile.Course)
			}
		}

		if err := repos.Profiles.Create(ctx, profile); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrConflict
			}
			return fmt.Errorf("create profile: %w", err)
		}

		ok, err := repos.Invites.MarkUsed(ctx, code, s.now())
		if err != nil {
			return fmt.Errorf("consume invite: %w", err)
		}
		if !ok {
			return apperrors.ErrInvalidOrUsedInvite
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

