package models

import (
	"fmt"
	"time"
)

type SessionKind string

const (
	SessionPlanned   SessionKind = "planned"
	SessionCompleted SessionKind = "completed"
)

type PlannedSession struct {
	ID              string    `json:"id" toml:"id" yaml:"id"`
	Date            time.Time `json:"date" toml:"date" yaml:"date"`
	Title           string    `json:"title,omitempty" toml:"title" yaml:"title"`
	Focus           string    `json:"focus,omitempty" toml:"focus" yaml:"focus"`
	DurationMinutes int       `json:"duration_minutes,omitempty" toml:"duration_minutes" yaml:"duration_minutes"`
}

type CompletedSession struct {
	ID              string        `json:"id" toml:"id" yaml:"id"`
	Date            time.Time     `json:"date" toml:"date" yaml:"date"`
	DurationSeconds int           `json:"duration_seconds" toml:"duration_seconds" yaml:"duration_seconds"`
	Tonnage         float64       `json:"tonnage" toml:"tonnage" yaml:"tonnage"`
	MetricCount     int           `json:"metric_count" toml:"metric_count" yaml:"metric_count"`
	EffortSeconds   int           `json:"effort_seconds" toml:"effort_seconds" yaml:"effort_seconds"`
	Feedback        string        `json:"feedback,omitempty" toml:"feedback" yaml:"feedback"`
	Exercises       []ExerciseLog `json:"exercises,omitempty" toml:"exercise" yaml:"exercises"`
}

// ExerciseLog is one exercise of a completed session, with the sets actually performed.
type ExerciseLog struct {
	Name string   `json:"name" toml:"name" yaml:"name"`
	Sets []SetLog `json:"sets" toml:"set" yaml:"sets"`
}

type SetLog struct {
	Weight float64 `json:"weight" toml:"weight" yaml:"weight"`
	Reps   int     `json:"reps" toml:"reps" yaml:"reps"`
}

// SessionRecord is a tagged variant: Kind says which one of Planned or Completed is set.
type SessionRecord struct {
	Kind      SessionKind       `json:"kind" toml:"kind" yaml:"kind"`
	Planned   *PlannedSession   `json:"planned,omitempty" toml:"planned,omitempty" yaml:"planned,omitempty"`
	Completed *CompletedSession `json:"completed,omitempty" toml:"completed,omitempty" yaml:"completed,omitempty"`
}

func NewPlannedRecord(p PlannedSession) SessionRecord {
	return SessionRecord{Kind: SessionPlanned, Planned: &p}
}

func NewCompletedRecord(c CompletedSession) SessionRecord {
	return SessionRecord{Kind: SessionCompleted, Completed: &c}
}

// Date returns the date of whichever variant the record holds.
func (r SessionRecord) Date() time.Time {
	switch r.Kind {
	case SessionPlanned:
		if r.Planned != nil {
			return r.Planned.Date
		}
	case SessionCompleted:
		if r.Completed != nil {
			return r.Completed.Date
		}
	}
	return time.Time{}
}

func (r SessionRecord) Validate() error {
	switch r.Kind {
	case SessionPlanned:
		if r.Planned == nil || r.Completed != nil {
			return fmt.Errorf("planned session record must carry only the planned payload")
		}
	case SessionCompleted:
		if r.Completed == nil || r.Planned != nil {
			return fmt.Errorf("completed session record must carry only the completed payload")
		}
	default:
		return fmt.Errorf("unknown session record kind %q", r.Kind)
	}
	return nil
}
