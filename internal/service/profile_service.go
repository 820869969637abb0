package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"alumnidir/internal/auth"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
	"alumnidir/internal/session"
)

// UpdateProfileInput is a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name                *string   `json:"name,omitempty"`
	Course              *string   `json:"course,omitempty"`
	GraduationYear      *string   `json:"graduationYear,omitempty"`
	PersonalDescription *string   `json:"personalDescription,omitempty"`
	CareerDescription   *string   `json:"careerDescription,omitempty"`
	ContactLinks        *[]string `json:"contactLinks,omitempty"`
	ProfileImage        *string   `json:"profileImage,omitempty"`
	FaceImage           *string   `json:"faceImage,omitempty"`
	FacePoints          *string   `json:"facePoints,omitempty"`
	Password            *string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Verified            *bool     `json:"verified,omitempty"`
}

// ProfileService handles directory profile operations.
type ProfileService interface {
	List(ctx context.Context) ([]model.Profile, error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	GetByUsername(ctx context.Context, username string) (*model.Profile, error)
	Update(ctx context.Context, actor session.Session, id string, in UpdateProfileInput) (*model.Profile, error)
	Delete(ctx context.Context, actor session.Session, id string) error
}

type profileService struct {
	repo    repository.ProfileRepository
	courses CourseService
	hasher  auth.PasswordHasher
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository, courses CourseService, hasher auth.PasswordHasher) ProfileService {
	return &profileService{repo: repo, courses: courses, hasher: hasher}
}

// List returns every profile, verified or not. Callers apply visibility.
func (s *profileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Get retrieves a profile by ID.
func (s *profileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ErrNotFound
	}
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// GetByUsername retrieves a profile by username.
func (s *profileService) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	profile, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get profile by username: %w", err)
	}
	return profile, nil
}

// Update applies in to profile id. The owner may edit self-service fields and
// the password; an admin may only flip verification.
func (s *profileService) Update(ctx context.Context, actor session.Session, id string, in UpdateProfileInput) (*model.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsAdmin():
		if in.Verified != nil {
			profile.Verified = *in.Verified
		}
	case actor.Owns(profile.ID):
		if err := s.applySelfService(ctx, profile, in); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) applySelfService(ctx context.Context, p *model.Profile, in UpdateProfileInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be blank", apperrors.ErrValidationFailed)
		}
		p.Name = name
	}
	if in.Course != nil && *in.Course != p.Course {
		if err := s.checkCourse(ctx, *in.Course); err != nil {
			return err
		}
		p.Course = *in.Course
	}
	if in.ContactLinks != nil {
		links, err := cleanContactLinks(*in.ContactLinks)
		if err != nil {
			return err
		}
		p.ContactLinks = links
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return fmt.Errorf("%w: password must have at least 6 characters", apperrors.ErrValidationFailed)
		}
		digest, err := s.hasher.Digest(*in.Password)
		if err != nil {
			return err
		}
		p.PasswordDigest = digest
	}
	setIfPresent(&p.GraduationYear, in.GraduationYear)
	setIfPresent(&p.PersonalDescription, in.PersonalDescription)
	setIfPresent(&p.CareerDescription, in.CareerDescription)
	setIfPresent(&p.ProfileImage, in.ProfileImage)
	setIfPresent(&p.FaceImage, in.FaceImage)
	setIfPresent(&p.FacePoints, in.FacePoints)
	return nil
}

func (s *profileService) checkCourse(ctx context.Context, course string) error {
	if course == "" {
		return nil
	}
	ok, err := s.courses.Contains(ctx, course)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown course %q", apperrors.ErrValidationFailed, course)
	}
	return nil
}

// Delete removes a profile. Only admins may delete.
func (s *profileService) Delete(ctx context.Context, actor session.Session, id string) error {
	if !actor.IsAdmin() {
		return apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// cleanContactLinks trims links, drops blanks and enforces the maximum.
func cleanContactLinks(links []string) ([]string, error) {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) > model.MaxContactLinks {
		return nil, fmt.Errorf("%w: at most %d contact links", apperrors.ErrValidationFailed, model.MaxContactLinks)
	}
	return out, nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
