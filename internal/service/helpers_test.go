package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alumnidir/internal/auth"
	"alumnidir/internal/db"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
)

type testEnv struct {
	store    *repository.Store
	hasher   auth.PasswordHasher
	courses  CourseService
	profiles ProfileService
	invites  InviteService
	auth     AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.Open("sqlite", "file::memory:", nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repository.NewStore(gdb)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	courses := NewCourseService(store.Courses, store, nil)
	env := &testEnv{
		store:    store,
		hasher:   hasher,
		courses:  courses,
		profiles: NewProfileService(store.Profiles, courses, hasher),
		invites:  NewInviteService(store.Invites, store, hasher),
		auth:     NewAuthService(store.Profiles, store.Admins, hasher),
	}
	_, err = courses.EnsureDefaults(context.Background())
	require.NoError(t, err)
	return env
}

func (e *testEnv) seedInvite(t *testing.T, code string) *model.Invite {
	t.Helper()
	invite := &model.Invite{Code: code, CreatedBy: "admin-1"}
	require.NoError(t, e.store.Invites.Create(context.Background(), invite))
	return invite
}

func (e *testEnv) signup(t *testing.T, code, username string) *model.Profile {
	t.Helper()
	e.seedInvite(t, code)
	profile, err := e.invites.Redeem(context.Background(), SignupInput{
		InviteCode:    code,
		Username:      username,
		Password:      "secret1",
		Name:          "Jane Doe",
		TermsAccepted: true,
	})
	require.NoError(t, err)
	return profile
}
