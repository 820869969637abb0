package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"alumnidir/internal/cache"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

const (
	courseCacheKey = "courses"
	courseCacheTTL = 10 * time.Minute
)

// CourseService manages the ordered course list.
type CourseService interface {
	List(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, names []string) ([]string, error)
	Contains(ctx context.Context, name string) (bool, error)
	EnsureDefaults(ctx context.Context) (bool, error)
}

type courseService struct {
	repo  repository.CourseRepository
	tx    repository.Transactor
	cache *cache.Client
}

// NewCourseService creates a course service. cache may be nil.
func NewCourseService(repo repository.CourseRepository, tx repository.Transactor, cache *cache.Client) CourseService {
	return &courseService{repo: repo, tx: tx, cache: cache}
}

// List returns the course list, from cache when possible.
func (s *courseService) List(ctx context.Context) ([]string, error) {
	var names []string
	if s.cache.GetJSON(ctx, courseCacheKey, &names) {
		return names, nil
	}

	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	s.cache.SetJSON(ctx, courseCacheKey, names, courseCacheTTL)
	return names, nil
}

// Replace swaps the whole list. Names are trimmed; blanks and duplicates are rejected.
// Profiles keep whatever course name they already had.
func (s *courseService) Replace(ctx context.Context, names []string) ([]string, error) {
	clean := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("%w: course name must not be blank", apperrors.ErrValidationFailed)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: duplicate course %q", apperrors.ErrValidationFailed, n)
		}
		seen[n] = struct{}{}
		clean = append(clean, n)
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Courses.Replace(ctx, clean)
	})
	if err != nil {
		return nil, fmt.Errorf("replace courses: %w", err)
	}
	s.cache.Delete(ctx, courseCacheKey)
	return clean, nil
}

// Contains reports whether name is in the course list.
func (s *courseService) Contains(ctx context.Context, name string) (bool, error) {
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// EnsureDefaults installs the default list when no course exists. It reports
// whether anything was written.
func (s *courseService) EnsureDefaults(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.Replace(ctx, model.DefaultCourses); err != nil {
		return false, err
	}
	return true, nil
}
