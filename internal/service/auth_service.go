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
)

// RegisterAdminInput is the payload for creating an admin account.
type RegisterAdminInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// AuthService verifies credentials for both account kinds.
type AuthService interface {
	RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*model.Admin, error)
	AuthenticateAlumni(ctx context.Context, username, password string) (*model.Profile, error)
	AuthenticateAdmin(ctx context.Context, username, password string) (*model.Admin, error)
}

type authService struct {
	profiles repository.ProfileRepository
	admins   repository.AdminRepository
	hasher   auth.PasswordHasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(profiles repository.ProfileRepository, admins repository.AdminRepository, hasher auth.PasswordHasher) AuthService {
	return &authService{
		profiles: profiles,
		admins:   admins,
		hasher:   hasher,
	}
}

// RegisterAdmin creates an admin with a digested password. Usernames are unique among admins only.
func (s *authService) RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*model.Admin, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidationFailed)
	}

	existing, err := s.admins.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrConflict
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check admin existence: %w", err)
	}

	digest, err := s.hasher.Digest(in.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:           strings.TrimSpace(in.Name),
		Username:       username,
		PasswordDigest: digest,
		Role:           in.Role,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// AuthenticateAlumni checks alumni credentials. Unknown usernames and wrong
// passwords both yield ErrUnauthorized.
func (s *authService) AuthenticateAlumni(ctx context.Context, username, password string) (*model.Profile, error) {
	profile, err := s.profiles.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if !s.hasher.Verify(profile.PasswordDigest, password) {
		return nil, apperrors.ErrUnauthorized
	}
	return profile, nil
}

// AuthenticateAdmin checks admin credentials.
func (s *authService) AuthenticateAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	admin, err := s.admins.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !s.hasher.Verify(admin.PasswordDigest, password) {
		return nil, apperrors.ErrUnauthorized
	}
	return admin, nil
}
