package load

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern     = regexp.MustCompile(`\d+`)
	decimalPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// ExtractReps reads the rep target out of a prescription such as "10-12", "8" or "Echec".
// Failure-style prescriptions ("Echec", "Max"), empty text and text without digits all yield 1.
func ExtractReps(text string) int {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" || strings.Contains(lower, "echec") || strings.Contains(lower, "échec") || strings.Contains(lower, "max") {
		return 1
	}

	match := intPattern.FindString(lower)
	if match == "" {
		return 1
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ExtractWeight returns the first decimal number in text, accepting "," or "." as separator.
// Returns 0 when there is none.
func ExtractWeight(text string) float64 {
	match := decimalPattern.FindString(text)
	if match == "" {
		return 0
	}
	w, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return w
}
