package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alumnidir/internal/model"
	"alumnidir/internal/search"
)

const (
	alumniKeyPrefix     = "sess:alumni:"
	adminKeyPrefix      = "sess:admin:"
	firstLoginKeyPrefix = "sess:first_login:"
)

// CourseLister loads the course list.
type CourseLister interface {
	List(ctx context.Context) ([]string, error)
}

// ProfileLister loads every profile in the directory.
type ProfileLister interface {
	List(ctx context.Context) ([]model.Profile, error)
}

// Manager persists session identities and caches per-session directory state.
type Manager struct {
	storage  Storage
	courses  CourseLister
	profiles ProfileLister
	logger   *zap.Logger

	mu         sync.Mutex
	states     map[string]*State
	generation atomic.Uint64
}

// NewManager creates a session manager.
func NewManager(storage Storage, courses CourseLister, profiles ProfileLister, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		storage:  storage,
		courses:  courses,
		profiles: profiles,
		logger:   logger,
		states:   make(map[string]*State),
	}
}

func alumniKey(sid string) string     { return alumniKeyPrefix + sid }
func adminKey(sid string) string      { return adminKeyPrefix + sid }
func firstLoginKey(sid string) string { return firstLoginKeyPrefix + sid }

// EstablishAlumni logs profile in on sid, replacing any admin identity. An empty
// sid mints a new one. Password digests are never written to session storage.
func (m *Manager) EstablishAlumni(ctx context.Context, sid string, profile model.Profile, firstLogin bool) (Session, error) {
	if sid == "" {
		sid = uuid.NewString()
	}
	profile.PasswordDigest = ""
	blob, err := json.Marshal(profile.Document())
	if err != nil {
		return Session{}, fmt.Errorf("encode alumni session: %w", err)
	}
	if err := m.storage.Delete(ctx, adminKey(sid)); err != nil {
		return Session{}, fmt.Errorf("clear admin session: %w", err)
	}
	if err := m.storage.Set(ctx, alumniKey(sid), blob); err != nil {
		return Session{}, fmt.Errorf("store alumni session: %w", err)
	}
	if firstLogin {
		err = m.storage.Set(ctx, firstLoginKey(sid), []byte("true"))
	} else {
		err = m.storage.Delete(ctx, firstLoginKey(sid))
	}
	if err != nil {
		return Session{}, fmt.Errorf("store first login flag: %w", err)
	}
	m.dropState(sid)

	p := profile
	return Session{ID: sid, Kind: KindAlumni, Profile: &p, FirstLogin: firstLogin}, nil
}

// EstablishAdmin logs admin in on sid, replacing any alumni identity. An empty
// sid mints a new one.
func (m *Manager) EstablishAdmin(ctx context.Context, sid string, admin model.Admin) (Session, error) {
	if sid == "" {
		sid = uuid.NewString()
	}
	admin.PasswordDigest = ""
	blob, err := json.Marshal(admin.Document())
	if err != nil {
		return Session{}, fmt.Errorf("encode admin session: %w", err)
	}
	if err := m.storage.Delete(ctx, alumniKey(sid), firstLoginKey(sid)); err != nil {
		return Session{}, fmt.Errorf("clear alumni session: %w", err)
	}
	if err := m.storage.Set(ctx, adminKey(sid), blob); err != nil {
		return Session{}, fmt.Errorf("store admin session: %w", err)
	}
	m.dropState(sid)

	a := admin
	return Session{ID: sid, Kind: KindAdmin, Admin: &a}, nil
}

// UpdateAlumni rewrites the stored profile of an alumni session after the owner
// saved it, and clears the first-login flag.
func (m *Manager) UpdateAlumni(ctx context.Context, sid string, profile model.Profile) error {
	if sid == "" {
		return nil
	}
	profile.PasswordDigest = ""
	blob, err := json.Marshal(profile.Document())
	if err != nil {
		return fmt.Errorf("encode alumni session: %w", err)
	}
	if err := m.storage.Set(ctx, alumniKey(sid), blob); err != nil {
		return fmt.Errorf("store alumni session: %w", err)
	}
	return m.ClearFirstLogin(ctx, sid)
}

// ClearFirstLogin removes the first-login flag of sid.
func (m *Manager) ClearFirstLogin(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := m.storage.Delete(ctx, firstLoginKey(sid)); err != nil {
		return fmt.Errorf("clear first login flag: %w", err)
	}
	return nil
}

// Resolve rebuilds the session persisted under sid. When both identities are
// present the alumni one wins and the admin key is removed.
func (m *Manager) Resolve(ctx context.Context, sid string) (Session, error) {
	if sid == "" {
		return Anonymous(""), nil
	}

	alumniBlob, hasAlumni, err := m.storage.Get(ctx, alumniKey(sid))
	if err != nil {
		return Session{}, fmt.Errorf("read alumni session: %w", err)
	}
	adminBlob, hasAdmin, err := m.storage.Get(ctx, adminKey(sid))
	if err != nil {
		return Session{}, fmt.Errorf("read admin session: %w", err)
	}

	if hasAlumni {
		var doc model.Document
		if err := json.Unmarshal(alumniBlob, &doc); err != nil {
			return Session{}, fmt.Errorf("decode alumni session: %w", err)
		}
		if hasAdmin {
			m.logger.Warn("session has both identities, keeping alumni", zap.String("session_id", sid))
			if err := m.storage.Delete(ctx, adminKey(sid)); err != nil {
				return Session{}, fmt.Errorf("clear admin session: %w", err)
			}
			m.dropState(sid)
		}
		_, firstLogin, err := m.storage.Get(ctx, firstLoginKey(sid))
		if err != nil {
			return Session{}, fmt.Errorf("read first login flag: %w", err)
		}
		p := model.ProfileFromDocument(doc)
		return Session{ID: sid, Kind: KindAlumni, Profile: &p, FirstLogin: firstLogin}, nil
	}

	if hasAdmin {
		var doc model.Document
		if err := json.Unmarshal(adminBlob, &doc); err != nil {
			return Session{}, fmt.Errorf("decode admin session: %w", err)
		}
		a := model.AdminFromDocument(doc)
		return Session{ID: sid, Kind: KindAdmin, Admin: &a}, nil
	}

	return Anonymous(sid), nil
}

// Logout removes every key of sid and its cached state.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	m.dropState(sid)
	if err := m.storage.Delete(ctx, alumniKey(sid), adminKey(sid), firstLoginKey(sid)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// State returns the directory state for sess, loading it on first use.
// Anonymous sessions get a fresh state every call and are never cached.
func (m *Manager) State(ctx context.Context, sess Session) *State {
	gen := m.generation.Load()
	if cacheable(sess) {
		m.mu.Lock()
		st, ok := m.states[sess.ID]
		m.mu.Unlock()
		if ok && st.generation == gen {
			return st
		}
	}
	return m.load(ctx, sess, gen)
}

// Refresh discards the cached state of sess and loads a new one.
func (m *Manager) Refresh(ctx context.Context, sess Session) *State {
	m.dropState(sess.ID)
	return m.load(ctx, sess, m.generation.Load())
}

// MarkStale makes every cached state reload on next use. Call it after writes
// to profiles or courses.
func (m *Manager) MarkStale() {
	m.generation.Add(1)
}

func (m *Manager) load(ctx context.Context, sess Session, gen uint64) *State {
	var (
		courses  []string
		profiles []model.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := m.courses.List(gctx)
		if err != nil {
			m.logger.Warn("load courses for session state", zap.String("session_id", sess.ID), zap.Error(err))
			return nil
		}
		courses = list
		return nil
	})
	g.Go(func() error {
		list, err := m.profiles.List(gctx)
		if err != nil {
			m.logger.Warn("load profiles for session state", zap.String("session_id", sess.ID), zap.Error(err))
			return nil
		}
		profiles = search.Visible(list, sess.IsAdmin())
		return nil
	})
	_ = g.Wait()

	st := newState(courses, profiles, gen)
	if cacheable(sess) {
		m.mu.Lock()
		m.states[sess.ID] = st
		m.mu.Unlock()
	}
	return st
}

func cacheable(sess Session) bool {
	return sess.ID != "" && sess.Kind != KindAnonymous
}

func (m *Manager) dropState(sid string) {
	if sid == "" {
		return
	}
	m.mu.Lock()
	delete(m.states, sid)
	m.mu.Unlock()
}
