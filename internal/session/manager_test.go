package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumnidir/internal/model"
)

type fakeCourses struct {
	names []string
	err   error
	calls atomic.Int32
}

func (f *fakeCourses) List(context.Context) ([]string, error) {
	f.calls.Add(1)
	return f.names, f.err
}

type fakeProfiles struct {
	profiles []model.Profile
	err      error
	calls    atomic.Int32
}

func (f *fakeProfiles) List(context.Context) ([]model.Profile, error) {
	f.calls.Add(1)
	return f.profiles, f.err
}

func newTestManager() (*Manager, *MemoryStorage, *fakeCourses, *fakeProfiles) {
	storage := NewMemoryStorage()
	courses := &fakeCourses{names: []string{"Ciência da Computação"}}
	profiles := &fakeProfiles{profiles: []model.Profile{
		{ID: "p1", Name: "Ana", Verified: true},
		{ID: "p2", Name: "Bia", Verified: false},
	}}
	return NewManager(storage, courses, profiles, nil), storage, courses, profiles
}

func TestEstablishAlumni_ClearsAdmin(t *testing.T) {
	m, storage, _, _ := newTestManager()
	ctx := context.Background()

	_, err := m.EstablishAdmin(ctx, "sid", model.Admin{ID: "a1", Username: "root"})
	require.NoError(t, err)

	sess, err := m.EstablishAlumni(ctx, "sid", model.Profile{ID: "p1", Username: "ana"}, true)
	require.NoError(t, err)
	assert.Equal(t, KindAlumni, sess.Kind)
	assert.True(t, sess.FirstLogin)

	_, hasAdmin, _ := storage.Get(ctx, adminKey("sid"))
	assert.False(t, hasAdmin)

	resolved, err := m.Resolve(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "p1", resolved.ProfileID())
	assert.Equal(t, "ana", resolved.Profile.Username)
	assert.True(t, resolved.FirstLogin)
}

func TestEstablishAdmin_ClearsAlumniAndFirstLogin(t *testing.T) {
	m, storage, _, _ := newTestManager()
	ctx := context.Background()

	_, err := m.EstablishAlumni(ctx, "sid", model.Profile{ID: "p1"}, true)
	require.NoError(t, err)
	_, err = m.EstablishAdmin(ctx, "sid", model.Admin{ID: "a1"})
	require.NoError(t, err)

	assert.Equal(t, 1, storage.Len())
	resolved, err := m.Resolve(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, resolved.IsAdmin())
	assert.Equal(t, "a1", resolved.AdminID())
	assert.False(t, resolved.FirstLogin)
}

func TestEstablish_MintsSessionID(t *testing.T) {
	m, _, _, _ := newTestManager()
	sess, err := m.EstablishAdmin(context.Background(), "", model.Admin{ID: "a1"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
}

func TestResolve_BothIdentitiesPrefersAlumni(t *testing.T) {
	m, storage, _, _ := newTestManager()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, alumniKey("sid"), []byte(`{"id":"p1","username":"ana"}`)))
	require.NoError(t, storage.Set(ctx, adminKey("sid"), []byte(`{"id":"a1"}`)))

	sess, err := m.Resolve(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, KindAlumni, sess.Kind)
	assert.Equal(t, "p1", sess.ProfileID())
	assert.Equal(t, []string{}, sess.Profile.ContactLinks)

	_, hasAdmin, _ := storage.Get(ctx, adminKey("sid"))
	assert.False(t, hasAdmin)
}

func TestResolve_UnknownAndEmpty(t *testing.T) {
	m, _, _, _ := newTestManager()

	sess, err := m.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, KindAnonymous, sess.Kind)

	sess, err = m.Resolve(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, KindAnonymous, sess.Kind)
	assert.Equal(t, "nope", sess.ID)
}

func TestLogout_RemovesEverything(t *testing.T) {
	m, storage, _, _ := newTestManager()
	ctx := context.Background()

	_, err := m.EstablishAlumni(ctx, "sid", model.Profile{ID: "p1"}, true)
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx, "sid"))
	assert.Equal(t, 0, storage.Len())

	sess, err := m.Resolve(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, KindAnonymous, sess.Kind)
}

func TestEstablish_DoesNotStorePasswordDigests(t *testing.T) {
	m, storage, _, _ := newTestManager()
	ctx := context.Background()
	const digest = "$2a$04$abcdefghijklmnopqrstuv"

	sess, err := m.EstablishAlumni(ctx, "alumni", model.Profile{ID: "p1", PasswordDigest: digest}, false)
	require.NoError(t, err)
	assert.Empty(t, sess.Profile.PasswordDigest)
	require.NoError(t, m.UpdateAlumni(ctx, "alumni", model.Profile{ID: "p1", Name: "New", PasswordDigest: digest}))

	_, err = m.EstablishAdmin(ctx, "admin", model.Admin{ID: "a1", PasswordDigest: digest})
	require.NoError(t, err)

	for _, key := range []string{alumniKey("alumni"), adminKey("admin")} {
		blob, ok, err := storage.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, key)
		assert.NotContains(t, string(blob), digest, key)
	}

	resolved, err := m.Resolve(ctx, "alumni")
	require.NoError(t, err)
	assert.Equal(t, "New", resolved.Profile.Name)
	assert.Empty(t, resolved.Profile.PasswordDigest)
}

func TestUpdateAlumni_ClearsFirstLogin(t *testing.T) {
	m, _, _, _ := newTestManager()
	ctx := context.Background()

	_, err := m.EstablishAlumni(ctx, "sid", model.Profile{ID: "p1", Name: "Old"}, true)
	require.NoError(t, err)
	require.NoError(t, m.UpdateAlumni(ctx, "sid", model.Profile{ID: "p1", Name: "New"}))

	sess, err := m.Resolve(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, sess.FirstLogin)
	assert.Equal(t, "New", sess.Profile.Name)
}

func TestState_AppliesVisibilityAndCaches(t *testing.T) {
	m, _, courses, profiles := newTestManager()
	ctx := context.Background()

	alumni := Session{ID: "s1", Kind: KindAlumni, Profile: &model.Profile{ID: "p1"}}
	st := m.State(ctx, alumni)
	assert.Len(t, st.Profiles(), 1)
	assert.Equal(t, []string{"Ciência da Computação"}, st.Courses())

	assert.Same(t, st, m.State(ctx, alumni))
	assert.Equal(t, int32(1), profiles.calls.Load())
	assert.Equal(t, int32(1), courses.calls.Load())

	admin := Session{ID: "s2", Kind: KindAdmin, Admin: &model.Admin{ID: "a1"}}
	assert.Len(t, m.State(ctx, admin).Profiles(), 2)
}

func TestState_AnonymousLoadsEveryTime(t *testing.T) {
	m, _, _, profiles := newTestManager()
	ctx := context.Background()

	m.State(ctx, Anonymous(""))
	m.State(ctx, Anonymous(""))
	assert.Equal(t, int32(2), profiles.calls.Load())
}

func TestState_AnonymousWithIDIsNotCached(t *testing.T) {
	m, _, _, profiles := newTestManager()
	ctx := context.Background()

	_, err := m.EstablishAlumni(ctx, "s1", model.Profile{ID: "p1"}, false)
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx, "s1"))

	sess, err := m.Resolve(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, KindAnonymous, sess.Kind)

	m.State(ctx, sess)
	m.State(ctx, sess)
	assert.Equal(t, int32(2), profiles.calls.Load())

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.states)
}

func TestState_RefreshAndMarkStale(t *testing.T) {
	m, _, _, profiles := newTestManager()
	ctx := context.Background()
	sess := Session{ID: "s1", Kind: KindAlumni, Profile: &model.Profile{ID: "p1"}}

	first := m.State(ctx, sess)
	refreshed := m.Refresh(ctx, sess)
	assert.NotSame(t, first, refreshed)
	assert.Same(t, refreshed, m.State(ctx, sess))

	m.MarkStale()
	assert.NotSame(t, refreshed, m.State(ctx, sess))
	assert.Equal(t, int32(3), profiles.calls.Load())
}

func TestState_ReadFailuresDegradeToEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	m := NewManager(storage,
		&fakeCourses{err: errors.New("db down")},
		&fakeProfiles{err: errors.New("db down")},
		nil)

	st := m.State(context.Background(), Anonymous(""))
	assert.Empty(t, st.Courses())
	assert.Empty(t, st.Profiles())
	assert.NotNil(t, st.Profiles())
}

func TestState_IsImmutable(t *testing.T) {
	m, _, _, _ := newTestManager()
	st := m.State(context.Background(), Anonymous(""))

	profiles := st.Profiles()
	profiles[0].Name = "mutated"
	assert.Equal(t, "Ana", st.Profiles()[0].Name)
}

func TestRedisStorage_UnreachableReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	s := NewRedisStorage(rdb, "alumni:", time.Minute)

	_, _, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "k", []byte("v")))
	assert.NoError(t, s.Delete(context.Background()))
}
