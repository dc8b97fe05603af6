package models

import (
	"slices"
	"time"
)

type ExperienceTier string

const (
	Beginner     ExperienceTier = "Beginner"
	Intermediate ExperienceTier = "Intermediate"
	Advanced     ExperienceTier = "Advanced"
)

// Profile is the subset of the athlete profile the session engine reads and writes.
// Every field is omitempty so that a partial profile only carries what it updates.
type Profile struct {
	ID              string                      `json:"id,omitempty" toml:"id" yaml:"id"`
	Name            string                      `json:"name,omitempty" toml:"name" yaml:"name"`
	BodyWeight      float64                     `json:"body_weight,omitempty" toml:"body_weight" yaml:"body_weight"`
	Experience      ExperienceTier              `json:"experience,omitempty" toml:"experience" yaml:"experience"`
	PersonalRecords map[string]PersonalRecord   `json:"personal_records,omitempty" toml:"personal_records" yaml:"personal_records"`
	TrendHistory    map[string][]PersonalRecord `json:"trend_history,omitempty" toml:"trend_history" yaml:"trend_history"`
	Sessions        []SessionRecord             `json:"sessions,omitempty" toml:"session" yaml:"sessions"`
	Goal            *Goal                       `json:"goal,omitempty" toml:"goal" yaml:"goal"`
}

type Goal struct {
	Title   string      `json:"title,omitempty" toml:"title" yaml:"title"`
	Current float64     `json:"current" toml:"current" yaml:"current"` // Completion percentage, 0..100.
	History []GoalPoint `json:"history,omitempty" toml:"history" yaml:"history"`
}

type GoalPoint struct {
	Date  time.Time `json:"date" toml:"date" yaml:"date"`
	Value float64   `json:"value" toml:"value" yaml:"value"`
}

// GoalProgress is a plan provider's estimate of how a session moved the active goal.
type GoalProgress struct {
	ProgressIncrement          float64 `json:"progress_increment"`
	IsOnTrack                  bool    `json:"is_on_track"`
	AdjustmentAdvice           string  `json:"adjustment_advice"`
	CurrentEstimatedCompletion float64 `json:"current_estimated_completion"`
}

// Clone returns a copy whose maps and slices can be replaced without touching p.
// Slice elements are shared, so callers must append to clipped slices rather than write in place.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.PersonalRecords != nil {
		c.PersonalRecords = make(map[string]PersonalRecord, len(p.PersonalRecords))
		for k, v := range p.PersonalRecords {
			c.PersonalRecords[k] = v
		}
	}
	if p.TrendHistory != nil {
		c.TrendHistory = make(map[string][]PersonalRecord, len(p.TrendHistory))
		for k, v := range p.TrendHistory {
			c.TrendHistory[k] = slices.Clip(v)
		}
	}
	c.Sessions = slices.Clip(p.Sessions)
	if p.Goal != nil {
		g := *p.Goal
		g.History = slices.Clip(p.Goal.History)
		c.Goal = &g
	}
	return &c
}

// CompletedSessions returns the completed variants of the session history, oldest first.
func (p *Profile) CompletedSessions() []CompletedSession {
	var out []CompletedSession
	for _, r := range p.Sessions {
		if r.Kind == SessionCompleted && r.Completed != nil {
			out = append(out, *r.Completed)
		}
	}
	return out
}
