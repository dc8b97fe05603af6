package provider

import (
	"context"
	"errors"
	"time"

	"github.com/misterclayt0n/hygie/internal/config"
	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/sirupsen/logrus"
)

var ErrNoSubstitute = errors.New("no substitute exercise")

// PlanProvider supplies the exercise content of a session. Every call may fail; Guard turns
// failures into the documented fallbacks.
type PlanProvider interface {
	GeneratePlan(ctx context.Context, profile *models.Profile, minutes int, focus string) (models.WorkoutPlan, error)
	SubstituteExercise(ctx context.Context, profile *models.Profile, current models.Exercise) (models.Exercise, error)
	GenerateSessionFeedback(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (string, error)
	AnalyzeGoalProgress(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (models.GoalProgress, error)
}

// New picks the provider described by cfg: the chat-completions client when an API key is set,
// the offline catalog otherwise. The result is always wrapped in a Guard.
func New(cfg config.ProviderConfig) *Guard {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.APIKey == "" {
		logrus.Debugln("no provider api key, using the offline catalog")
		return NewGuard(NewOffline(), timeout)
	}
	return NewGuard(NewChatClient(cfg.BaseURL, cfg.APIKey, cfg.Model), timeout)
}
