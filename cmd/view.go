package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/misterclayt0n/hygie/internal/session"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/fatih/color"
)

// sessionView renders session states on a terminal. A new step prints a block, a tick on the
// same step only rewrites the clock line.
type sessionView struct {
	mu   sync.Mutex
	out  io.Writer
	last session.State
	seen bool
}

func newSessionView(out io.Writer) *sessionView {
	return &sessionView{out: out}
}

// onChange is handed to the controller and runs on its loop.
func (v *sessionView) onChange(s session.State) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.seen && sameStep(v.last, s) {
		v.printClock(s)
	} else {
		v.printState(s)
	}
	v.last, v.seen = s, true
}

func (v *sessionView) show(s session.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printState(s)
	v.last, v.seen = s, true
}

func sameStep(a, b session.State) bool {
	exA, _ := a.CurrentExercise()
	exB, _ := b.CurrentExercise()
	return a.Phase == b.Phase &&
		a.PhaseIndex == b.PhaseIndex &&
		a.ExerciseIndex == b.ExerciseIndex &&
		a.SetNumber == b.SetNumber &&
		a.Resting == b.Resting &&
		exA.Name == exB.Name &&
		a.Feedback == b.Feedback
}

func (v *sessionView) printClock(s session.State) {
	switch s.Regime() {
	case session.RegimeCountdown:
		fmt.Fprintf(v.out, "\r  ⏳ %s ", utils.FormatClock(s.Remaining))
	case session.RegimeStopwatch:
		fmt.Fprintf(v.out, "\r  ⏱  %s ", utils.FormatClock(s.Elapsed))
	}
}

func (v *sessionView) printState(s session.State) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	fmt.Fprintln(v.out)
	switch s.Phase {
	case session.PhasePreSession:
		title := s.Plan.Title
		if title == "" {
			title = "Session"
		}
		fmt.Fprintf(v.out, "%s (%d min)\n", boldGreen(title), s.Minutes)
		if n := len(s.Plan.WarmupSequence()); n > 0 {
			fmt.Fprintf(v.out, "  %s: %d items\n", boldCyan("Warm-up"), n)
		}
		for i, ex := range s.Plan.Exercises {
			fmt.Fprintf(v.out, "  %d. %s %d × %s, rest %s\n", i+1, boldCyan(ex.Name), ex.Sets, ex.Reps, utils.FormatClock(ex.Rest))
		}
		if n := len(s.Plan.Cooldown); n > 0 {
			fmt.Fprintf(v.out, "  %s: %d items\n", boldCyan("Cool-down"), n)
		}
		fmt.Fprintln(v.out, magenta("Type start to begin, help for commands."))

	case session.PhaseWarmup, session.PhaseCooldown:
		label, total := "WARM-UP", len(s.Plan.WarmupSequence())
		if s.Phase == session.PhaseCooldown {
			label, total = "COOL-DOWN", len(s.Plan.Cooldown)
		}
		item, _ := s.CurrentPhaseItem()
		fmt.Fprintf(v.out, "%s %d/%d %s\n", boldGreen(label), s.PhaseIndex+1, total, boldCyan(item.Name))
		if item.Instruction != "" {
			fmt.Fprintf(v.out, "  %s\n", item.Instruction)
		}
		v.printClock(s)

	case session.PhaseActiveSet:
		ex, _ := s.CurrentExercise()
		fmt.Fprintf(v.out, "%s %s set %d/%d, %s reps @ %s\n",
			boldGreen("SET"), boldCyan(ex.Name), s.SetNumber, max(ex.Sets, 1), ex.Reps,
			yellow(fmt.Sprintf("%.1f kg", s.SuggestedWeight)))
		if s.Resting {
			fmt.Fprintln(v.out, magenta("  Rest, type rest to skip it."))
		} else {
			fmt.Fprintln(v.out, magenta("  Type done <kg> <reps> when the set is over."))
		}
		v.printClock(s)

	case session.PhaseDebrief:
		fmt.Fprintln(v.out, boldGreen("DEBRIEF"))
		fmt.Fprintf(v.out, "  %s: %.1f kg over %d sets\n", boldCyan("Tonnage"), s.Recorder.Tonnage(), s.Recorder.Count())
		fmt.Fprintf(v.out, "  %s: %s\n", boldCyan("Effort"), seconds(s.Recorder.EffortSeconds()))
		for _, log := range s.Recorder.ExerciseLogs() {
			sets := make([]string, 0, len(log.Sets))
			for _, set := range log.Sets {
				sets = append(sets, fmt.Sprintf("%.1f×%d", set.Weight, set.Reps))
			}
			fmt.Fprintf(v.out, "  • %s: %s\n", log.Name, strings.Join(sets, ", "))
		}
		if s.Feedback != "" {
			fmt.Fprintf(v.out, "  %s\n", yellow(s.Feedback))
		}
		fmt.Fprintln(v.out, magenta("Type archive to save the session or abandon to drop it."))

	case session.PhaseArchived:
		fmt.Fprintln(v.out, boldGreen("✅ Session archived"))
		if goal := s.Profile.Goal; goal != nil {
			fmt.Fprintf(v.out, "  %s: %s (%.0f%%)\n", boldCyan("Goal"), goal.Title, goal.Current)
		}
		if s.Progress != nil && s.Progress.AdjustmentAdvice != "" {
			fmt.Fprintf(v.out, "  %s\n", yellow(s.Progress.AdjustmentAdvice))
		}

	case session.PhaseBrowseStats:
		fmt.Fprintln(v.out, magenta("Type back to leave the stats."))
	}
}
