// Package session tracks who is logged in for a session id and the directory
// state loaded on that session's behalf.
package session

import (
	"alumnidir/internal/model"
)

// Kind identifies which account, if any, a session belongs to.
type Kind string

const (
	KindAnonymous Kind = "anonymous"
	KindAlumni    Kind = "alumni"
	KindAdmin     Kind = "admin"
)

// Session is the resolved identity behind a session id.
// At most one of Profile and Admin is set.
type Session struct {
	ID         string         `json:"id,omitempty"`
	Kind       Kind           `json:"kind"`
	Profile    *model.Profile `json:"profile,omitempty"`
	Admin      *model.Admin   `json:"admin,omitempty"`
	FirstLogin bool           `json:"firstLogin"`
}

// Anonymous returns a session with no logged-in account.
func Anonymous(id string) Session {
	return Session{ID: id, Kind: KindAnonymous}
}

// IsAdmin reports whether an admin is logged in.
func (s Session) IsAdmin() bool {
	return s.Kind == KindAdmin && s.Admin != nil
}

// IsAlumni reports whether an alumni is logged in.
func (s Session) IsAlumni() bool {
	return s.Kind == KindAlumni && s.Profile != nil
}

// ProfileID returns the logged-in profile id, or "".
func (s Session) ProfileID() string {
	if !s.IsAlumni() {
		return ""
	}
	return s.Profile.ID
}

// AdminID returns the logged-in admin id, or "".
func (s Session) AdminID() string {
	if !s.IsAdmin() {
		return ""
	}
	return s.Admin.ID
}

// Owns reports whether the session belongs to the alumni with profileID.
func (s Session) Owns(profileID string) bool {
	return profileID != "" && s.ProfileID() == profileID
}
