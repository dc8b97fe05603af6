package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 20 * time.Second

const FallbackFeedback = "Session complete. Keep the same loads next time and add a rep wherever the last set felt easy."

const fallbackAdvice = "Keep training consistently, progress is reviewed after every session."

// FallbackProgress is the estimate used when the provider cannot produce one: one percentage point
// forward, on track.
func FallbackProgress() models.GoalProgress {
	return models.GoalProgress{
		ProgressIncrement: 1,
		IsOnTrack:         true,
		AdjustmentAdvice:  fallbackAdvice,
	}
}

// FallbackPlan is the built-in full-body plan used when no plan can be generated.
func FallbackPlan(minutes int) models.WorkoutPlan {
	return catalogPlan(focusFullBody, minutes)
}

// Guard wraps a PlanProvider so that each call is bounded by a timeout and every failure except
// substitution is replaced by its fallback. Substitution failures are returned to the caller,
// who keeps the current exercise.
type Guard struct {
	next    PlanProvider
	timeout time.Duration
}

func NewGuard(next PlanProvider, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Guard{next: next, timeout: timeout}
}

func (g *Guard) GeneratePlan(ctx context.Context, profile *models.Profile, minutes int, focus string) (models.WorkoutPlan, error) {
	if g.next == nil {
		return FallbackPlan(minutes), nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	plan, err := g.next.GeneratePlan(ctx, profile, minutes, focus)
	if err != nil {
		logrus.WithError(err).Warnln("plan generation failed, using the built-in plan")
		return FallbackPlan(minutes), nil
	}
	return plan, nil
}

func (g *Guard) SubstituteExercise(ctx context.Context, profile *models.Profile, current models.Exercise) (models.Exercise, error) {
	if g.next == nil {
		return models.Exercise{}, fmt.Errorf("substitute %q: %w", current.Name, ErrNoSubstitute)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ex, err := g.next.SubstituteExercise(ctx, profile, current)
	if err != nil {
		logrus.WithError(err).WithField("exercise", current.Name).Warnln("substitution failed")
		return models.Exercise{}, fmt.Errorf("substitute %q: %w", current.Name, err)
	}
	if strings.TrimSpace(ex.Name) == "" {
		return models.Exercise{}, fmt.Errorf("substitute %q: %w", current.Name, ErrNoSubstitute)
	}
	return ex, nil
}

func (g *Guard) GenerateSessionFeedback(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (string, error) {
	if g.next == nil {
		return FallbackFeedback, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.next.GenerateSessionFeedback(ctx, profile, metrics)
	if err != nil {
		logrus.WithError(err).Warnln("feedback generation failed, using the canned text")
		return FallbackFeedback, nil
	}
	if strings.TrimSpace(text) == "" {
		return FallbackFeedback, nil
	}
	return text, nil
}

func (g *Guard) AnalyzeGoalProgress(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (models.GoalProgress, error) {
	if g.next == nil {
		return FallbackProgress(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	progress, err := g.next.AnalyzeGoalProgress(ctx, profile, metrics)
	if err != nil {
		logrus.WithError(err).Warnln("goal progress analysis failed, using the default estimate")
		return FallbackProgress(), nil
	}
	return progress, nil
}
