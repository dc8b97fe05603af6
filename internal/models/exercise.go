package models

import "time"

// PhaseExercise is a fixed-duration item of the warm-up, stretch-prep or cool-down sequence.
type PhaseExercise struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Instruction string `json:"instruction,omitempty" toml:"instruction" yaml:"instruction"`
	Duration    int    `json:"duration" toml:"duration" yaml:"duration"` // Seconds.
}

type Exercise struct {
	Name          string `json:"name" toml:"name" yaml:"name"`
	Sets          int    `json:"sets" toml:"sets" yaml:"sets"`
	Reps          string `json:"reps" toml:"reps" yaml:"reps"` // Free text: "10-12", "8", "Echec", "Max".
	Rest          int    `json:"rest" toml:"rest" yaml:"rest"` // Seconds.
	Description   string `json:"description,omitempty" toml:"description" yaml:"description"`
	SuggestedLoad string `json:"suggested_load,omitempty" toml:"suggested_load" yaml:"suggested_load"`
}

type PersonalRecord struct {
	Weight float64   `json:"weight" toml:"weight" yaml:"weight"`
	Reps   int       `json:"reps" toml:"reps" yaml:"reps"`
	Date   time.Time `json:"date" toml:"date" yaml:"date"`
}

// Volume is weight × reps.
func (pr PersonalRecord) Volume() float64 {
	return pr.Weight * float64(pr.Reps)
}

// PerformanceMetric is the result of one completed set. It is never modified once recorded.
type PerformanceMetric struct {
	ExerciseName  string    `json:"exercise_name"`
	Volume        float64   `json:"volume"`
	EffortSeconds int       `json:"effort_seconds"`
	RestSeconds   int       `json:"rest_seconds"`
	Weight        float64   `json:"weight"`
	Reps          int       `json:"reps"`
	Timestamp     time.Time `json:"timestamp"`
}
