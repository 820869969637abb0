package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
)

func TestCourseService_DefaultsAreSeededOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	names, err := env.courses.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCourses, names)

	seeded, err := env.courses.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestCourseService_Replace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	got, err := env.courses.Replace(ctx, []string{" Medicina ", "Direito"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Medicina", "Direito"}, got)

	names, err := env.courses.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medicina", "Direito"}, names)

	ok, err := env.courses.Contains(ctx, "Direito")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.courses.Replace(ctx, []string{"A", " "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = env.courses.Replace(ctx, []string{"A", "A"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	names, err = env.courses.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medicina", "Direito"}, names, "rejected replacement leaves the list untouched")
}

func TestCourseService_RenameDoesNotTouchProfiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedInvite(t, "c1")
	_, err := env.invites.Redeem(ctx, SignupInput{
		InviteCode: "c1", Username: "ana", Password: "secret1", Name: "Ana",
		Course: "Engenharia de Software", TermsAccepted: true,
	})
	require.NoError(t, err)

	_, err = env.courses.Replace(ctx, []string{"Engenharia de Computação"})
	require.NoError(t, err)

	profile, err := env.profiles.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Engenharia de Software", profile.Course)
}

func TestCourseService_ReplaceWithEmptyList(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.courses.Replace(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	names, err := env.courses.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
