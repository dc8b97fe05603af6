package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/misterclayt0n/hygie/internal/models"
)

const (
	focusFullBody = "full body"
	focusUpper    = "upper"
	focusLower    = "lower"
)

var warmups = []models.PhaseExercise{
	{Name: "Jumping Jacks", Instruction: "Light pace, breathe through the nose.", Duration: 60},
	{Name: "Arm Circles", Instruction: "Ten forward, ten backward, growing the circle.", Duration: 45},
	{Name: "Bodyweight Squats", Instruction: "Slow descent, full depth.", Duration: 60},
}

var stretchPrep = []models.PhaseExercise{
	{Name: "World's Greatest Stretch", Instruction: "Alternate sides every rep.", Duration: 60},
}

var cooldowns = []models.PhaseExercise{
	{Name: "Quad Stretch", Instruction: "Hold each side, hips forward.", Duration: 45},
	{Name: "Hamstring Stretch", Instruction: "Hinge at the hips, back flat.", Duration: 45},
	{Name: "Child's Pose", Instruction: "Long exhales.", Duration: 60},
}

var catalog = map[string][]models.Exercise{
	focusFullBody: {
		{Name: "Squat", Sets: 3, Reps: "10-12", Rest: 90, Description: "Barbell back squat, hip crease below the knee."},
		{Name: "Bench Press", Sets: 3, Reps: "8-10", Rest: 90, Description: "Shoulder blades pinned, bar to mid chest."},
		{Name: "Dumbbell Row", Sets: 3, Reps: "10", Rest: 60, Description: "One arm at a time, pull to the hip."},
		{Name: "Romanian Deadlift", Sets: 3, Reps: "10", Rest: 90, Description: "Soft knees, bar close to the legs."},
		{Name: "Push-up", Sets: 2, Reps: "Max", Rest: 60, Description: "Body in one line, chest to the floor."},
	},
	focusUpper: {
		{Name: "Bench Press", Sets: 4, Reps: "6-8", Rest: 120, Description: "Shoulder blades pinned, bar to mid chest."},
		{Name: "Pull-up", Sets: 3, Reps: "Max", Rest: 90, Description: "Full hang at the bottom, chin over the bar."},
		{Name: "Overhead Press", Sets: 3, Reps: "8", Rest: 90, Description: "Glutes tight, bar path straight up."},
		{Name: "Dumbbell Row", Sets: 3, Reps: "10-12", Rest: 60, Description: "One arm at a time, pull to the hip."},
		{Name: "Dips", Sets: 2, Reps: "Echec", Rest: 60, Description: "Lean forward slightly, elbows back."},
	},
	focusLower: {
		{Name: "Squat", Sets: 4, Reps: "6-8", Rest: 120, Description: "Barbell back squat, hip crease below the knee."},
		{Name: "Romanian Deadlift", Sets: 3, Reps: "8-10", Rest: 90, Description: "Soft knees, bar close to the legs."},
		{Name: "Walking Lunge", Sets: 3, Reps: "12", Rest: 60, Description: "Long steps, back knee close to the floor."},
		{Name: "Leg Curl", Sets: 3, Reps: "12-15", Rest: 60, Description: "Pause at full contraction."},
		{Name: "Calf Raise", Sets: 3, Reps: "15", Rest: 45, Description: "Full stretch at the bottom."},
	},
}

var substitutes = map[string][]models.Exercise{
	"squat":             {{Name: "Goblet Squat", Description: "Dumbbell held at the chest."}, {Name: "Leg Press"}},
	"bench press":       {{Name: "Dumbbell Bench Press", Description: "Neutral wrists, full stretch."}, {Name: "Push-up"}},
	"dumbbell row":      {{Name: "Seated Cable Row"}, {Name: "Inverted Row"}},
	"romanian deadlift": {{Name: "Hip Thrust"}, {Name: "Good Morning"}},
	"push-up":           {{Name: "Incline Push-up", Description: "Hands on a bench."}},
	"pull-up":           {{Name: "Lat Pulldown"}, {Name: "Inverted Row"}},
	"overhead press":    {{Name: "Dumbbell Shoulder Press"}, {Name: "Landmine Press"}},
	"dips":              {{Name: "Close-grip Bench Press"}, {Name: "Bench Dips"}},
	"walking lunge":     {{Name: "Split Squat"}, {Name: "Step-up"}},
	"leg curl":          {{Name: "Nordic Curl"}, {Name: "Swiss Ball Curl"}},
	"calf raise":        {{Name: "Seated Calf Raise"}},
	"leg press":         {{Name: "Goblet Squat"}},
}

// Offline is a PlanProvider that never leaves the process. Plans and substitutes come from fixed
// tables.
type Offline struct{}

func NewOffline() *Offline {
	return &Offline{}
}

func (o *Offline) GeneratePlan(_ context.Context, _ *models.Profile, minutes int, focus string) (models.WorkoutPlan, error) {
	return catalogPlan(normalizeFocus(focus), minutes), nil
}

// SubstituteExercise returns the first catalogued alternative not already named current.
// Sets, reps and rest are kept from the replaced exercise.
func (o *Offline) SubstituteExercise(_ context.Context, _ *models.Profile, current models.Exercise) (models.Exercise, error) {
	for _, alt := range substitutes[strings.ToLower(strings.TrimSpace(current.Name))] {
		if strings.EqualFold(alt.Name, current.Name) {
			continue
		}
		ex := current
		ex.Name = alt.Name
		ex.Description = alt.Description
		ex.SuggestedLoad = ""
		return ex, nil
	}
	return models.Exercise{}, fmt.Errorf("%q: %w", current.Name, ErrNoSubstitute)
}

func (o *Offline) GenerateSessionFeedback(_ context.Context, _ *models.Profile, metrics []models.PerformanceMetric) (string, error) {
	if len(metrics) == 0 {
		return "No sets were recorded this time. Even a short session counts, come back to it soon.", nil
	}

	var tonnage float64
	best := metrics[0]
	for _, m := range metrics {
		tonnage += m.Volume
		if m.Volume > best.Volume {
			best = m
		}
	}
	return fmt.Sprintf(
		"%d sets done for %.1f kg moved. Best set: %s, %.1f kg x %d.",
		len(metrics), tonnage, best.ExerciseName, best.Weight, best.Reps,
	), nil
}

// AnalyzeGoalProgress credits one point per session plus a tenth of a point per set, up to three.
func (o *Offline) AnalyzeGoalProgress(_ context.Context, _ *models.Profile, metrics []models.PerformanceMetric) (models.GoalProgress, error) {
	if len(metrics) == 0 {
		return models.GoalProgress{
			ProgressIncrement: 0,
			IsOnTrack:         false,
			AdjustmentAdvice:  "Nothing was recorded, plan the next session early in the week.",
		}, nil
	}
	return models.GoalProgress{
		ProgressIncrement: min(1+float64(len(metrics))/10, 3),
		IsOnTrack:         true,
		AdjustmentAdvice:  fallbackAdvice,
	}, nil
}

func normalizeFocus(focus string) string {
	f := strings.ToLower(focus)
	switch {
	case strings.Contains(f, "upper"), strings.Contains(f, "push"), strings.Contains(f, "pull"):
		return focusUpper
	case strings.Contains(f, "lower"), strings.Contains(f, "leg"):
		return focusLower
	default:
		return focusFullBody
	}
}

// catalogPlan sizes a catalog plan to the session length: roughly one exercise per ten minutes,
// between two and the whole catalog.
func catalogPlan(focus string, minutes int) models.WorkoutPlan {
	exercises := catalog[focus]
	n := min(max(minutes/10, 2), len(exercises))

	plan := models.WorkoutPlan{
		Title:     strings.ToUpper(focus[:1]) + focus[1:] + " session",
		Warmup:    append([]models.PhaseExercise(nil), warmups...),
		Cooldown:  append([]models.PhaseExercise(nil), cooldowns...),
		Exercises: append([]models.Exercise(nil), exercises[:n]...),
	}
	if minutes >= 45 {
		plan.StretchPrep = append([]models.PhaseExercise(nil), stretchPrep...)
	}
	return plan
}
