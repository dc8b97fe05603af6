package load

import (
	"math"

	"github.com/misterclayt0n/hygie/internal/models"
)

// Step is the smallest load increment the engine prescribes.
const Step = 2.5

// beginnerReduction is taken off record-based suggestions for beginners.
const beginnerReduction = 0.15

// CalculateSuggestedWeight prescribes the load for an exercise at targetReps.
//
// Without any record it trusts the plan's suggested-load text when that parses to a positive
// number, otherwise it estimates from body weight and experience. With a record it estimates the
// 1RM (Epley), takes the share of it matching targetReps and removes 15% for beginners; a
// positive record-based load is never below one Step. The result is always a non-negative
// multiple of Step.
func CalculateSuggestedWeight(profile *models.Profile, exercise models.Exercise, targetReps int) float64 {
	var bodyWeight float64
	var tier models.ExperienceTier
	if profile != nil {
		bodyWeight = profile.BodyWeight
		tier = profile.Experience
	}

	record := FindPersonalRecord(profile, exercise.Name)
	if record == nil {
		if planned := ExtractWeight(exercise.SuggestedLoad); planned > 0 {
			return roundToStep(planned)
		}
		return roundToStep(bodyWeight * ExperienceFactor(tier))
	}

	oneRM := EstimateOneRM(record.Weight, record.Reps)
	suggested := oneRM * PercentageForReps(targetReps)
	if tier == models.Beginner {
		suggested *= 1 - beginnerReduction
	}
	rounded := roundToStep(suggested)
	if rounded == 0 && suggested > 0 {
		return Step
	}
	return rounded
}

// roundToStep rounds to the nearest Step. Invalid or negative loads give 0.
func roundToStep(weight float64) float64 {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return 0
	}
	return math.Round(weight/Step) * Step
}
