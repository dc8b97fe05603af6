package models

// WorkoutPlan is what a plan provider hands to a session. Only Exercises may change afterwards,
// and only through a single-exercise substitution.
type WorkoutPlan struct {
	Title       string          `json:"title,omitempty" toml:"title" yaml:"title"`
	Warmup      []PhaseExercise `json:"warmup" toml:"warmup" yaml:"warmup"`
	StretchPrep []PhaseExercise `json:"stretch_prep,omitempty" toml:"stretch_prep" yaml:"stretch_prep"`
	Cooldown    []PhaseExercise `json:"cooldown" toml:"cooldown" yaml:"cooldown"`
	Exercises   []Exercise      `json:"exercises" toml:"exercise" yaml:"exercises"`
}

// WarmupSequence returns the warm-up items followed by the stretch-prep items.
func (p WorkoutPlan) WarmupSequence() []PhaseExercise {
	seq := make([]PhaseExercise, 0, len(p.Warmup)+len(p.StretchPrep))
	seq = append(seq, p.Warmup...)
	return append(seq, p.StretchPrep...)
}

// WithExercise returns a copy of the plan where the exercise at index i is replaced.
// The receiver's exercise slice is left untouched.
func (p WorkoutPlan) WithExercise(i int, ex Exercise) WorkoutPlan {
	exercises := make([]Exercise, len(p.Exercises))
	copy(exercises, p.Exercises)
	if i >= 0 && i < len(exercises) {
		exercises[i] = ex
	}
	p.Exercises = exercises
	return p
}
