package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

// AdminService looks up admin accounts.
type AdminService interface {
	Get(ctx context.Context, id string) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
}

type adminService struct {
	repo repository.AdminRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(repo repository.AdminRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) Get(ctx context.Context, id string) (*model.Admin, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ErrNotFound
	}
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

func (s *adminService) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return admin, nil
}
