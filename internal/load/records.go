package load

import (
	"slices"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
)

// TrendCap is how many entries a per-exercise trend history keeps.
const TrendCap = 10

// FindPersonalRecord resolves the best known set for an exercise, in order:
//  1. the personal-records entry under exactly this name,
//  2. the trend-history entry (same exact key) with the highest weight × reps,
//  3. the heaviest weight × reps set of any completed session whose exercise name matches
//     case-insensitively, ignoring sets without weight or reps,
//  4. nil.
//
// NOTE: 1 and 2 match names case-sensitively while 3 does not. Nobody has decided which one is
// right yet, so both behaviours are kept on purpose until product settles it.
func FindPersonalRecord(profile *models.Profile, exerciseName string) *models.PersonalRecord {
	if profile == nil {
		return nil
	}

	if pr, ok := profile.PersonalRecords[exerciseName]; ok {
		return &pr
	}

	if trend := profile.TrendHistory[exerciseName]; len(trend) > 0 {
		best := trend[0]
		for _, entry := range trend[1:] {
			if entry.Volume() > best.Volume() {
				best = entry
			}
		}
		return &best
	}

	var best *models.PersonalRecord
	for _, session := range profile.CompletedSessions() {
		for _, ex := range session.Exercises {
			if !strings.EqualFold(ex.Name, exerciseName) {
				continue
			}
			for _, set := range ex.Sets {
				if set.Weight <= 0 || set.Reps <= 0 {
					continue
				}
				candidate := models.PersonalRecord{Weight: set.Weight, Reps: set.Reps, Date: session.Date}
				if best == nil || candidate.Volume() > best.Volume() {
					best = &candidate
				}
			}
		}
	}
	return best
}

// UpdatePersonalRecord stores weight × reps as the new record for exerciseName when it beats the
// current one: strictly more volume, or the same volume lifted with strictly more weight.
// When it does not, the very same profile pointer is returned so callers can detect the no-op.
// The input profile is never modified.
func UpdatePersonalRecord(profile *models.Profile, exerciseName string, weight float64, reps int, at time.Time) *models.Profile {
	if profile == nil || reps <= 0 || weight < 0 {
		return profile
	}

	candidate := models.PersonalRecord{Weight: weight, Reps: reps, Date: at}
	existing, ok := profile.PersonalRecords[exerciseName]
	var existingVolume float64
	if ok {
		existingVolume = existing.Volume()
	}

	newVolume := candidate.Volume()
	improved := newVolume > existingVolume || (newVolume == existingVolume && weight > existing.Weight)
	if !improved {
		return profile
	}

	updated := profile.Clone()
	if updated.PersonalRecords == nil {
		updated.PersonalRecords = make(map[string]models.PersonalRecord)
	}
	if updated.TrendHistory == nil {
		updated.TrendHistory = make(map[string][]models.PersonalRecord)
	}
	updated.PersonalRecords[exerciseName] = candidate

	trend := append(slices.Clip(updated.TrendHistory[exerciseName]), candidate)
	if len(trend) > TrendCap {
		trend = slices.Clone(trend[len(trend)-TrendCap:])
	}
	updated.TrendHistory[exerciseName] = trend

	return updated
}
