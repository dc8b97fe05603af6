package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusProfile string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show meta data: total weight lifted, session count, gym hours, week streak, goal completion and sets per exercise (current week)",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(cmd.Context(), statusProfile)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		printStatus(profile, time.Now())
		return nil
	},
}

func printStatus(profile *models.Profile, now time.Time) {
	sessions := profile.CompletedSessions()

	var totalWeight float64
	var totalDuration, totalEffort int
	setsThisWeek := make(map[string]int)
	dates := make([]time.Time, 0, len(sessions))
	currentYear, currentWeek := utils.ToLocal(now).ISOWeek()

	for _, s := range sessions {
		totalWeight += s.Tonnage
		totalDuration += s.DurationSeconds
		totalEffort += s.EffortSeconds
		dates = append(dates, s.Date)

		year, week := utils.ToLocal(s.Date).ISOWeek()
		if year != currentYear || week != currentWeek {
			continue
		}
		for _, ex := range s.Exercises {
			setsThisWeek[ex.Name] += len(ex.Sets)
		}
	}

	printBoxedHeader("STATUS")

	printMetric("Athlete", profile.Name)
	printMetric("Total weight lifted", fmt.Sprintf("%.1f kg", totalWeight))
	printMetric("Total sessions", len(sessions))
	printMetric("Total time at gym", seconds(totalDuration).Round(time.Minute))
	printMetric("Time under effort", seconds(totalEffort))
	printMetric("Week streak", fmt.Sprintf("%d weeks", computeWeekStreak(dates, now)))
	if profile.Goal != nil {
		printMetric("Goal", fmt.Sprintf("%s (%.0f%%)", profile.Goal.Title, profile.Goal.Current))
	}
	fmt.Println()

	header := color.New(color.FgGreen, color.Bold).Sprintf("Sets per exercise (current week):")
	fmt.Println(header)
	var names []string
	for name := range setsThisWeek {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  • %s: %d sets\n", color.New(color.FgMagenta, color.Bold).Sprint(name), setsThisWeek[name])
	}
	fmt.Println()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value any) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak counts the consecutive ISO weeks, ending with the week of now, that hold at
// least one session.
func computeWeekStreak(dates []time.Time, now time.Time) int {
	weekSet := make(map[string]bool)
	for _, d := range dates {
		year, week := utils.ToLocal(d).ISOWeek()
		weekSet[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	now = utils.ToLocal(now)
	for {
		year, week := now.ISOWeek()
		if !weekSet[fmt.Sprintf("%d-%02d", year, week)] {
			break
		}
		streak++
		now = now.AddDate(0, 0, -7)
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusProfile, "profile", "p", "", "Profile name/ID")
	statusCmd.MarkFlagRequired("profile")
}
