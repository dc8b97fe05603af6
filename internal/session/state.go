package session

import (
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
)

type Phase string

const (
	PhasePreSession  Phase = "PRE_SESSION"
	PhaseWarmup      Phase = "WARMUP"
	PhaseActiveSet   Phase = "ACTIVE_SET"
	PhaseCooldown    Phase = "COOLDOWN"
	PhaseDebrief     Phase = "DEBRIEF"
	PhaseArchived    Phase = "ARCHIVED"
	PhaseBrowseStats Phase = "BROWSE_STATS"
)

// InSession reports whether the phase belongs to a running workout.
func (p Phase) InSession() bool {
	switch p {
	case PhaseWarmup, PhaseActiveSet, PhaseCooldown, PhaseDebrief:
		return true
	}
	return false
}

// Regime is the kind of clock a state needs.
type Regime int

const (
	RegimeNone Regime = iota
	RegimeCountdown
	RegimeStopwatch
)

func (r Regime) String() string {
	switch r {
	case RegimeCountdown:
		return "countdown"
	case RegimeStopwatch:
		return "stopwatch"
	default:
		return "none"
	}
}

// State is everything a session knows. It is only ever replaced, never modified in place,
// so a State handed out by the controller stays valid.
type State struct {
	ID    string
	Phase Phase

	// Profile carries the personal records updated during the session.
	// Loaded is the profile as it was before the session and is what Abandon goes back to.
	Profile *models.Profile
	Loaded  *models.Profile

	// Prepared is set by NewState and cleared once Abandon or leaving the stats discards the plan.
	Prepared bool

	Plan    models.WorkoutPlan
	Minutes int
	Focus   string

	// PhaseIndex points into the warm-up sequence or the cool-down list, depending on Phase.
	PhaseIndex      int
	ExerciseIndex   int
	SetNumber       int
	SuggestedWeight float64
	Resting         bool

	// Remaining is the countdown in seconds, Elapsed the stopwatch of the current set.
	Remaining int
	Elapsed   int

	// Segment changes whenever a new timed segment starts or the clock regime changes.
	// Ticks of an older segment are ignored.
	Segment int

	Recorder  Recorder
	StartedAt time.Time
	Feedback  string
	Progress  *models.GoalProgress
}

// NewState prepares a session in PRE_SESSION for the given profile and plan.
func NewState(id string, profile *models.Profile, plan models.WorkoutPlan, minutes int, focus string) State {
	return State{
		ID:       id,
		Phase:    PhasePreSession,
		Profile:  profile,
		Loaded:   profile,
		Prepared: true,
		Plan:     plan,
		Minutes:  minutes,
		Focus:    focus,
	}
}

// Regime returns which clock the state runs on.
func (s State) Regime() Regime {
	switch s.Phase {
	case PhaseWarmup, PhaseCooldown:
		return RegimeCountdown
	case PhaseActiveSet:
		if s.Resting {
			return RegimeCountdown
		}
		return RegimeStopwatch
	default:
		return RegimeNone
	}
}

// CurrentExercise returns the exercise being performed, if any.
func (s State) CurrentExercise() (models.Exercise, bool) {
	if s.Phase != PhaseActiveSet || s.ExerciseIndex < 0 || s.ExerciseIndex >= len(s.Plan.Exercises) {
		return models.Exercise{}, false
	}
	return s.Plan.Exercises[s.ExerciseIndex], true
}

// CurrentPhaseItem returns the warm-up or cool-down item being counted down, if any.
func (s State) CurrentPhaseItem() (models.PhaseExercise, bool) {
	var items []models.PhaseExercise
	switch s.Phase {
	case PhaseWarmup:
		items = s.Plan.WarmupSequence()
	case PhaseCooldown:
		items = s.Plan.Cooldown
	default:
		return models.PhaseExercise{}, false
	}
	if s.PhaseIndex < 0 || s.PhaseIndex >= len(items) {
		return models.PhaseExercise{}, false
	}
	return items[s.PhaseIndex], true
}

// Event is an input of Reduce.
type Event interface {
	event()
}

type (
	Start struct{ At time.Time }
	// Tick is one second of the clock opened for Segment.
	Tick        struct{ Segment int }
	Skip        struct{}
	ValidateSet struct {
		Weight float64
		Reps   int
		At     time.Time
	}
	SkipRest   struct{}
	Substitute struct{}
	// SubstitutionResolved carries the replacement for the exercise at Index.
	SubstitutionResolved struct {
		Index    int
		Exercise models.Exercise
	}
	FeedbackReady struct{ Text string }
	Archive       struct{ At time.Time }
	GoalProgressReady struct {
		Progress models.GoalProgress
		At       time.Time
	}
	// Persisted reports that the store accepted the archived profile.
	Persisted   struct{ Profile *models.Profile }
	Abandon     struct{}
	BrowseStats struct{}
	ExitStats   struct{}
)

func (Start) event()                {}
func (Tick) event()                 {}
func (Skip) event()                 {}
func (ValidateSet) event()          {}
func (SkipRest) event()             {}
func (Substitute) event()           {}
func (SubstitutionResolved) event() {}
func (FeedbackReady) event()        {}
func (Archive) event()              {}
func (GoalProgressReady) event()    {}
func (Persisted) event()            {}
func (Abandon) event()              {}
func (BrowseStats) event()          {}
func (ExitStats) event()            {}

// Effect is work Reduce asks the controller to do. Its outcome comes back as an Event.
type Effect interface {
	effect()
}

type (
	// RequestFeedback resolves to FeedbackReady.
	RequestFeedback struct {
		Profile *models.Profile
		Metrics []models.PerformanceMetric
	}
	// RequestSubstitution resolves to SubstitutionResolved, or to an error that leaves the state as is.
	RequestSubstitution struct {
		Index    int
		Exercise models.Exercise
		Profile  *models.Profile
	}
	// RequestGoalProgress resolves to GoalProgressReady.
	RequestGoalProgress struct {
		Profile *models.Profile
		Metrics []models.PerformanceMetric
		At      time.Time
	}
	// Persist resolves to Persisted, or to an error that keeps the session in DEBRIEF.
	Persist struct {
		Profile *models.Profile
	}
)

func (RequestFeedback) effect()     {}
func (RequestSubstitution) effect() {}
func (RequestGoalProgress) effect() {}
func (Persist) effect()             {}
