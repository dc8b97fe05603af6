package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseProfileFile_TOML(t *testing.T) {
	path := write(t, "ana.toml", `
id = "ana"
name = "Ana"
body_weight = 62.0
experience = "Intermediate"

[personal_records.Squat]
weight = 80.0
reps = 5
date = 2025-03-14T18:00:00Z

[[trend_history.Squat]]
weight = 80.0
reps = 5
date = 2025-03-14T18:00:00Z

[goal]
title = "Squat bodyweight x 5"
current = 40.0

[[session]]
kind = "completed"
[session.completed]
id = "c1"
date = 2025-03-10T18:00:00Z
duration_seconds = 3600
tonnage = 2400.0
metric_count = 9
effort_seconds = 420
[[session.completed.exercise]]
name = "Squat"
[[session.completed.exercise.set]]
weight = 80.0
reps = 5
`)

	p, err := ParseProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ana", p.ID)
	assert.Equal(t, models.Intermediate, p.Experience)
	assert.Equal(t, 80.0, p.PersonalRecords["Squat"].Weight)
	assert.Len(t, p.TrendHistory["Squat"], 1)
	require.NotNil(t, p.Goal)
	assert.Equal(t, 40.0, p.Goal.Current)

	require.Len(t, p.Sessions, 1)
	require.NoError(t, p.Sessions[0].Validate())
	completed := p.Sessions[0].Completed
	assert.Equal(t, 2400.0, completed.Tonnage)
	assert.Equal(t, []models.ExerciseLog{{Name: "Squat", Sets: []models.SetLog{{Weight: 80, Reps: 5}}}}, completed.Exercises)
}

func TestParseProfileFile_YAML(t *testing.T) {
	path := write(t, "bruno.yml", `
name: Bruno
body_weight: 81.5
experience: Beginner
sessions:
  - kind: planned
    planned:
      id: p1
      date: 2025-03-20T07:00:00Z
      focus: legs
`)

	p, err := ParseProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Bruno", p.Name)
	require.Len(t, p.Sessions, 1)
	assert.Equal(t, models.SessionPlanned, p.Sessions[0].Kind)
	assert.Equal(t, "legs", p.Sessions[0].Planned.Focus)
	assert.True(t, p.Sessions[0].Date().Equal(time.Date(2025, 3, 20, 7, 0, 0, 0, time.UTC)))
}

func TestParseProfileFile_Errors(t *testing.T) {
	_, err := ParseProfileFile(write(t, "ana.json", `{}`))
	assert.ErrorContains(t, err, "unsupported profile format")

	_, err = ParseProfileFile(write(t, "ana.toml", `name = `))
	assert.Error(t, err)

	_, err = ParseProfileFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsePlanFile(t *testing.T) {
	path := write(t, "push.toml", `
title = "Push"

[[warmup]]
name = "Band Pull-apart"
duration = 60

[[exercise]]
name = "Bench Press"
sets = 3
reps = "8-10"
rest = 90
suggested_load = "60kg"
`)

	plan, err := ParsePlanFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Push", plan.Title)
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, "60kg", plan.Exercises[0].SuggestedLoad)
	assert.Equal(t, 60, plan.WarmupSequence()[0].Duration)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(-3))
	assert.Equal(t, "0:09", FormatClock(9))
	assert.Equal(t, "1:30", FormatClock(90))
	assert.Equal(t, "12:05", FormatClock(725))
}
