package storage

import (
	"context"
	"sort"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
)

// SessionFilter narrows a session history. Zero fields match everything.
type SessionFilter struct {
	Kind models.SessionKind
	Day  string // YYYY-MM-DD, in Loc.
	Loc  *time.Location
}

// GetSessionHistory returns the session records of a profile, newest first.
func (s *Storage) GetSessionHistory(ctx context.Context, profileID string, filter SessionFilter) ([]models.SessionRecord, error) {
	profile, err := s.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return FilterSessions(profile.Sessions, filter), nil
}

// FilterSessions keeps the records matching filter and sorts them newest first.
func FilterSessions(records []models.SessionRecord, filter SessionFilter) []models.SessionRecord {
	loc := filter.Loc
	if loc == nil {
		loc = time.UTC
	}

	out := make([]models.SessionRecord, 0, len(records))
	for _, r := range records {
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.Day != "" && r.Date().In(loc).Format(time.DateOnly) != filter.Day {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date().After(out[j].Date())
	})
	return out
}
