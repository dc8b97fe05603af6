package session

import (
	"slices"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
)

// Recorder accumulates the metrics of one session. It is a value: RecordSet returns a new Recorder
// and leaves the receiver as it was, so older states keep seeing their own metric list.
type Recorder struct {
	metrics []models.PerformanceMetric
	tonnage float64
	effort  int
}

// RecordSet appends the metric of one completed set.
func (r Recorder) RecordSet(exerciseName string, weight float64, reps, effortSeconds, restSeconds int, at time.Time) Recorder {
	metric := models.PerformanceMetric{
		ExerciseName:  exerciseName,
		Volume:        weight * float64(reps),
		EffortSeconds: effortSeconds,
		RestSeconds:   restSeconds,
		Weight:        weight,
		Reps:          reps,
		Timestamp:     at,
	}

	r.metrics = append(slices.Clip(r.metrics), metric)
	r.tonnage += metric.Volume
	r.effort += effortSeconds
	return r
}

// Tonnage is the running sum of volume.
func (r Recorder) Tonnage() float64 {
	return r.tonnage
}

// RecomputeTonnage sums volume over the metric list again.
func (r Recorder) RecomputeTonnage() float64 {
	var total float64
	for _, m := range r.metrics {
		total += m.Volume
	}
	return total
}

func (r Recorder) Count() int {
	return len(r.metrics)
}

func (r Recorder) EffortSeconds() int {
	return r.effort
}

func (r Recorder) Metrics() []models.PerformanceMetric {
	return slices.Clone(r.metrics)
}

func (r Recorder) ForExercise(name string) []models.PerformanceMetric {
	var out []models.PerformanceMetric
	for _, m := range r.metrics {
		if m.ExerciseName == name {
			out = append(out, m)
		}
	}
	return out
}

// ExerciseLogs groups the recorded sets per exercise, in the order exercises were first performed.
func (r Recorder) ExerciseLogs() []models.ExerciseLog {
	var logs []models.ExerciseLog
	index := make(map[string]int)
	for _, m := range r.metrics {
		i, ok := index[m.ExerciseName]
		if !ok {
			i = len(logs)
			index[m.ExerciseName] = i
			logs = append(logs, models.ExerciseLog{Name: m.ExerciseName})
		}
		logs[i].Sets = append(logs[i].Sets, models.SetLog{Weight: m.Weight, Reps: m.Reps})
	}
	return logs
}
