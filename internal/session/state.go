package session

import (
	"time"

	"alumnidir/internal/model"
)

// State is the directory data loaded for one session. It is never mutated after
// construction; accessors hand out copies.
type State struct {
	courses    []string
	profiles   []model.Profile
	loadedAt   time.Time
	generation uint64
}

func newState(courses []string, profiles []model.Profile, generation uint64) *State {
	if courses == nil {
		courses = []string{}
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	return &State{
		courses:    courses,
		profiles:   profiles,
		loadedAt:   time.Now(),
		generation: generation,
	}
}

// Courses returns the course list.
func (s *State) Courses() []string {
	out := make([]string, len(s.courses))
	copy(out, s.courses)
	return out
}

// Profiles returns the directory visible to the session.
func (s *State) Profiles() []model.Profile {
	out := make([]model.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// LoadedAt returns when the state was fetched.
func (s *State) LoadedAt() time.Time {
	return s.loadedAt
}
