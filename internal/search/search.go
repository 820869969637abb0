// Package search implements directory filtering and autocomplete over an
// in-memory snapshot of profiles. Every function is pure.
package search

import (
	"strings"

	"alumnidir/internal/model"
)

const (
	// SuggestionLimit caps the autocomplete list.
	SuggestionLimit = 7
	// RecentLimit is the default size of the recent profiles list.
	RecentLimit = 6
)

// Filters narrows a directory listing. Empty fields match everything.
type Filters struct {
	Query  string `query:"q"`
	Course string `query:"course"`
	Year   string `query:"year"`
}

// Visible applies the directory visibility policy: admins see every profile,
// everybody else sees verified profiles only.
func Visible(profiles []model.Profile, includeUnverified bool) []model.Profile {
	out := make([]model.Profile, 0, len(profiles))
	for _, p := range profiles {
		if CanView(p, includeUnverified, "") {
			out = append(out, p)
		}
	}
	return out
}

// CanView applies the same policy to a single profile. Its owner, identified by
// viewerProfileID, always sees it.
func CanView(p model.Profile, includeUnverified bool, viewerProfileID string) bool {
	return p.Verified || includeUnverified || (viewerProfileID != "" && p.ID == viewerProfileID)
}

// Suggest returns up to SuggestionLimit profiles whose name or course contains q,
// ignoring case, in snapshot order. An empty q yields no suggestions.
func Suggest(snapshot []model.Profile, q string) []model.Profile {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.Profile{}
	}
	needle := strings.ToLower(q)
	out := make([]model.Profile, 0, SuggestionLimit)
	for _, p := range snapshot {
		if matchesQuery(p, needle) {
			out = append(out, p)
			if len(out) == SuggestionLimit {
				break
			}
		}
	}
	return out
}

// Filter returns every profile matching all non-empty filters. Course must match
// exactly and year is a substring match on the graduation year.
func Filter(snapshot []model.Profile, f Filters) []model.Profile {
	needle := strings.ToLower(strings.TrimSpace(f.Query))
	year := strings.TrimSpace(f.Year)
	out := make([]model.Profile, 0, len(snapshot))
	for _, p := range snapshot {
		if needle != "" && !matchesQuery(p, needle) {
			continue
		}
		if f.Course != "" && p.Course != f.Course {
			continue
		}
		if year != "" && !strings.Contains(p.GraduationYear, year) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Recent returns the first n profiles of the snapshot.
func Recent(snapshot []model.Profile, n int) []model.Profile {
	if n <= 0 {
		n = RecentLimit
	}
	if n > len(snapshot) {
		n = len(snapshot)
	}
	out := make([]model.Profile, n)
	copy(out, snapshot[:n])
	return out
}

func matchesQuery(p model.Profile, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Course), needle)
}
