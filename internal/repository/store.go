package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories that share one database handle.
type Repositories struct {
	Profiles ProfileRepository
	Admins   AdminRepository
	Invites  InviteRepository
	Courses  CourseRepository
}

// Transactor runs fn with repositories bound to a single database transaction.
// Returning an error from fn rolls every write back.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Store owns the database handle and hands out repositories bound to it.
type Store struct {
	Repositories
	db *gorm.DB
}

// Ensure Store implements Transactor
var _ Transactor = (*Store)(nil)

// NewStore creates repositories over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{Repositories: bind(db), db: db}
}

// WithTransaction executes a function within a database transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, bind(tx))
	})
}

func bind(db *gorm.DB) Repositories {
	return Repositories{
		Profiles: NewProfileRepository(db),
		Admins:   NewAdminRepository(db),
		Invites:  NewInviteRepository(db),
		Courses:  NewCourseRepository(db),
	}
}
