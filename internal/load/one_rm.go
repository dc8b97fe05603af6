package load

import "github.com/misterclayt0n/hygie/internal/models"

// EstimateOneRM applies the Epley formula: weight × (1 + reps/30).
func EstimateOneRM(weight float64, reps int) float64 {
	if reps <= 0 || weight <= 0 {
		return 0
	}

	return weight * (1 + float64(reps)/30)
}

// repPercentages maps a rep target to the share of 1RM it is usually performed at.
// Targets above the last breakpoint use overflowPercentage.
var repPercentages = []struct {
	reps    int
	percent float64
}{
	{1, 1.00},
	{2, 0.95},
	{3, 0.93},
	{4, 0.90},
	{5, 0.87},
	{6, 0.85},
	{8, 0.80},
	{10, 0.75},
	{12, 0.70},
	{15, 0.65},
	{20, 0.60},
}

const overflowPercentage = 0.55

// PercentageForReps picks the smallest breakpoint that is >= targetReps.
func PercentageForReps(targetReps int) float64 {
	for _, bp := range repPercentages {
		if targetReps <= bp.reps {
			return bp.percent
		}
	}
	return overflowPercentage
}

// ExperienceFactor is the share of body weight used as a first guess when nothing else is known.
func ExperienceFactor(tier models.ExperienceTier) float64 {
	switch tier {
	case models.Beginner:
		return 0.2
	case models.Intermediate:
		return 0.4
	case models.Advanced:
		return 0.6
	default:
		return 0.3
	}
}
