package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/misterclayt0n/hygie/internal/load"
	"github.com/misterclayt0n/hygie/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidSet        = errors.New("invalid set")
	ErrNotPrepared       = errors.New("session not prepared")
)

// Reduce applies one event to a state. It never mutates s and never performs I/O: provider calls
// and persistence come back as effects. On error the returned state is s itself.
func Reduce(s State, ev Event) (State, []Effect, error) {
	switch e := ev.(type) {
	case Start:
		if s.Phase != PhasePreSession {
			return invalid(s, ev)
		}
		if !s.Prepared {
			return s, nil, fmt.Errorf("%w: the plan was discarded", ErrNotPrepared)
		}
		s.StartedAt = e.At
		return enterWarmup(s)

	case Tick:
		return tick(s, e)

	case Skip:
		switch s.Phase {
		case PhaseWarmup:
			return nextWarmupItem(s)
		case PhaseCooldown:
			return nextCooldownItem(s)
		}
		return invalid(s, ev)

	case ValidateSet:
		return validateSet(s, e)

	case SkipRest:
		if s.Phase != PhaseActiveSet || !s.Resting {
			return invalid(s, ev)
		}
		return endRest(s), nil, nil

	case Substitute:
		ex, ok := s.CurrentExercise()
		if !ok {
			return invalid(s, ev)
		}
		return s, []Effect{RequestSubstitution{Index: s.ExerciseIndex, Exercise: ex, Profile: s.Profile}}, nil

	case SubstitutionResolved:
		if s.Phase != PhaseActiveSet || e.Index != s.ExerciseIndex || e.Index >= len(s.Plan.Exercises) {
			return invalid(s, ev)
		}
		s.Plan = s.Plan.WithExercise(e.Index, e.Exercise)
		s.SetNumber = min(s.SetNumber, targetSets(e.Exercise))
		s.SuggestedWeight = suggest(s.Profile, e.Exercise)
		return s, nil, nil

	case FeedbackReady:
		if s.Phase != PhaseDebrief {
			return invalid(s, ev)
		}
		s.Feedback = e.Text
		return s, nil, nil

	case Archive:
		if s.Phase != PhaseDebrief {
			return invalid(s, ev)
		}
		// a failed write is retried with the estimate already obtained
		if s.Progress != nil {
			return s, []Effect{Persist{Profile: archivedProfile(s, *s.Progress, e.At)}}, nil
		}
		return s, []Effect{RequestGoalProgress{Profile: s.Profile, Metrics: s.Recorder.Metrics(), At: e.At}}, nil

	case GoalProgressReady:
		if s.Phase != PhaseDebrief {
			return invalid(s, ev)
		}
		progress := e.Progress
		s.Progress = &progress
		return s, []Effect{Persist{Profile: archivedProfile(s, progress, e.At)}}, nil

	case Persisted:
		if s.Phase != PhaseDebrief || e.Profile == nil {
			return invalid(s, ev)
		}
		s.Phase = PhaseArchived
		s.Profile = e.Profile
		s.Loaded = e.Profile
		s.Segment++
		return s, nil, nil

	case Abandon:
		if !s.Phase.InSession() {
			return invalid(s, ev)
		}
		return reset(s), nil, nil

	case BrowseStats:
		switch s.Phase {
		case PhasePreSession, PhaseDebrief, PhaseArchived:
			s.Phase = PhaseBrowseStats
			return s, nil, nil
		}
		return invalid(s, ev)

	case ExitStats:
		if s.Phase != PhaseBrowseStats {
			return invalid(s, ev)
		}
		// nothing was started yet, the prepared plan stays
		if s.StartedAt.IsZero() {
			s.Phase = PhasePreSession
			return s, nil, nil
		}
		return reset(s), nil, nil
	}

	return s, nil, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
}

func invalid(s State, ev Event) (State, []Effect, error) {
	return s, nil, fmt.Errorf("%w: %T in %s", ErrInvalidTransition, ev, s.Phase)
}

func tick(s State, e Tick) (State, []Effect, error) {
	if e.Segment != s.Segment {
		return s, nil, nil
	}
	if s.Regime() == RegimeNone {
		return invalid(s, e)
	}

	if s.Regime() == RegimeStopwatch {
		s.Elapsed++
		return s, nil, nil
	}

	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining > 0 {
		return s, nil, nil
	}

	switch {
	case s.Phase == PhaseWarmup:
		return nextWarmupItem(s)
	case s.Phase == PhaseCooldown:
		return nextCooldownItem(s)
	default:
		return endRest(s), nil, nil
	}
}

func enterWarmup(s State) (State, []Effect, error) {
	s.Phase = PhaseWarmup
	s.PhaseIndex = 0
	items := s.Plan.WarmupSequence()
	if len(items) == 0 {
		return enterActive(s)
	}
	return countdown(s, items[0].Duration), nil, nil
}

func nextWarmupItem(s State) (State, []Effect, error) {
	items := s.Plan.WarmupSequence()
	s.PhaseIndex++
	if s.PhaseIndex >= len(items) {
		return enterActive(s)
	}
	return countdown(s, items[s.PhaseIndex].Duration), nil, nil
}

func enterActive(s State) (State, []Effect, error) {
	s.Phase = PhaseActiveSet
	s.PhaseIndex = 0
	if len(s.Plan.Exercises) == 0 {
		return enterCooldown(s)
	}
	s.ExerciseIndex = 0
	s.SetNumber = 1
	s.SuggestedWeight = suggest(s.Profile, s.Plan.Exercises[0])
	return stopwatch(s), nil, nil
}

func enterCooldown(s State) (State, []Effect, error) {
	s.Phase = PhaseCooldown
	s.Resting = false
	s.PhaseIndex = 0
	if len(s.Plan.Cooldown) == 0 {
		return enterDebrief(s)
	}
	return countdown(s, s.Plan.Cooldown[0].Duration), nil, nil
}

func nextCooldownItem(s State) (State, []Effect, error) {
	s.PhaseIndex++
	if s.PhaseIndex >= len(s.Plan.Cooldown) {
		return enterDebrief(s)
	}
	return countdown(s, s.Plan.Cooldown[s.PhaseIndex].Duration), nil, nil
}

func enterDebrief(s State) (State, []Effect, error) {
	s.Phase = PhaseDebrief
	s.PhaseIndex = 0
	s.Remaining = 0
	s.Elapsed = 0
	s.Segment++
	return s, []Effect{RequestFeedback{Profile: s.Profile, Metrics: s.Recorder.Metrics()}}, nil
}

func validateSet(s State, e ValidateSet) (State, []Effect, error) {
	ex, ok := s.CurrentExercise()
	if !ok || s.Resting {
		return invalid(s, e)
	}
	if e.Weight < 0 || e.Reps < 0 {
		return s, nil, fmt.Errorf("%w: %v x %d", ErrInvalidSet, e.Weight, e.Reps)
	}

	s.Recorder = s.Recorder.RecordSet(ex.Name, e.Weight, e.Reps, s.Elapsed, ex.Rest, e.At)
	s.Profile = load.UpdatePersonalRecord(s.Profile, ex.Name, e.Weight, e.Reps, e.At)

	if s.SetNumber < targetSets(ex) {
		s.SetNumber++
		return rest(s, ex.Rest), nil, nil
	}

	if s.ExerciseIndex+1 < len(s.Plan.Exercises) {
		s.ExerciseIndex++
		s.SetNumber = 1
		next := s.Plan.Exercises[s.ExerciseIndex]
		s.SuggestedWeight = suggest(s.Profile, next)
		return rest(s, next.Rest), nil, nil
	}

	return enterCooldown(s)
}

// targetSets treats a missing set count as a single set.
func targetSets(ex models.Exercise) int {
	return max(ex.Sets, 1)
}

func rest(s State, seconds int) State {
	if seconds <= 0 {
		return stopwatch(s)
	}
	s.Resting = true
	return countdown(s, seconds)
}

func endRest(s State) State {
	s.Resting = false
	return stopwatch(s)
}

func countdown(s State, seconds int) State {
	s.Remaining = max(seconds, 0)
	s.Elapsed = 0
	s.Segment++
	return s
}

func stopwatch(s State) State {
	s.Resting = false
	s.Remaining = 0
	s.Elapsed = 0
	s.Segment++
	return s
}

func suggest(profile *models.Profile, ex models.Exercise) float64 {
	return load.CalculateSuggestedWeight(profile, ex, load.ExtractReps(ex.Reps))
}

// reset goes back to PRE_SESSION with the last profile the store knows about,
// dropping the plan and every metric. The result cannot be started again.
func reset(s State) State {
	return State{
		ID:      s.ID,
		Phase:   PhasePreSession,
		Profile: s.Loaded,
		Loaded:  s.Loaded,
		Minutes: s.Minutes,
		Focus:   s.Focus,
		Segment: s.Segment + 1,
	}
}

// archivedProfile folds the session into a copy of the profile: one completed session record and,
// when a goal is active, its new completion value.
func archivedProfile(s State, progress models.GoalProgress, at time.Time) *models.Profile {
	profile := s.Profile.Clone()
	if profile == nil {
		profile = &models.Profile{}
	}

	duration := 0
	if !s.StartedAt.IsZero() && at.After(s.StartedAt) {
		duration = int(at.Sub(s.StartedAt).Seconds())
	}

	profile.Sessions = append(profile.Sessions, models.NewCompletedRecord(models.CompletedSession{
		ID:              s.ID,
		Date:            at,
		DurationSeconds: duration,
		Tonnage:         s.Recorder.Tonnage(),
		MetricCount:     s.Recorder.Count(),
		EffortSeconds:   s.Recorder.EffortSeconds(),
		Feedback:        s.Feedback,
		Exercises:       s.Recorder.ExerciseLogs(),
	}))

	if profile.Goal != nil {
		value := GoalCompletion(profile.Goal.Current, progress)
		profile.Goal.Current = value
		profile.Goal.History = append(profile.Goal.History, models.GoalPoint{Date: at, Value: value})
	}

	return profile
}

// GoalCompletion is the goal value after a session: the provider's own estimate when it gives one,
// the current value moved by the increment otherwise, kept within 0..100.
func GoalCompletion(current float64, progress models.GoalProgress) float64 {
	value := current + progress.ProgressIncrement
	if progress.CurrentEstimatedCompletion > 0 {
		value = progress.CurrentEstimatedCompletion
	}
	return min(max(value, 0), 100)
}
