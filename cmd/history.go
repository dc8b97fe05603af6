package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/storage"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyProfile string
	filterKind     string
	filterDay      string
	historyLimit   int
)

// historyCmd lists the planned and completed sessions of a profile, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the session history of a profile, optionally filtered by kind and/or day",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.ResolveProfileID(ctx, historyProfile)
		if err != nil {
			return err
		}

		filter := storage.SessionFilter{Kind: models.SessionKind(strings.ToLower(filterKind)), Loc: utils.Loc}
		if filterDay != "" {
			day, err := parseDay(filterDay)
			if err != nil {
				return err
			}
			filter.Day = day.Format(time.DateOnly)
		}

		records, err := st.GetSessionHistory(ctx, id, filter)
		if err != nil {
			return fmt.Errorf("failed to retrieve sessions: %w", err)
		}
		if historyLimit > 0 && len(records) > historyLimit {
			records = records[:historyLimit]
		}

		if len(records) == 0 {
			fmt.Println(color.New(color.FgMagenta).Sprint("No sessions found."))
			return nil
		}
		for i, r := range records {
			printRecord(i+1, r)
		}
		return nil
	},
}

func printRecord(n int, r models.SessionRecord) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	switch r.Kind {
	case models.SessionPlanned:
		p := r.Planned
		fmt.Printf("\n%s %d. %s %s\n", boldGreen("Planned"), n, utils.ToLocal(p.Date).Format(time.DateOnly), p.Title)
		if p.Focus != "" {
			fmt.Printf("   %s: %s\n", blue("Focus"), p.Focus)
		}
		if p.DurationMinutes > 0 {
			fmt.Printf("   %s: %d min\n", blue("Duration"), p.DurationMinutes)
		}

	case models.SessionCompleted:
		c := r.Completed
		fmt.Printf("\n%s %d. %s\n", boldGreen("Session"), n, c.ID)
		fmt.Printf("   %s: %s\n", blue("Date"), utils.FormatLocal(c.Date))
		fmt.Printf("   %s: %s\n", red("Duration"), seconds(c.DurationSeconds))
		fmt.Printf("   %s: %.1f kg over %d sets\n", blue("Tonnage"), c.Tonnage, c.MetricCount)
		if c.Feedback != "" {
			fmt.Printf("   %s: %s\n", magenta("Feedback"), c.Feedback)
		}
		for _, ex := range c.Exercises {
			fmt.Printf("   %s\n", boldCyan(ex.Name))
			fmt.Printf("      %-4s | %-12s | %-5s\n", "Set", "Weight (kg)", "Reps")
			fmt.Println("      " + strings.Repeat("─", 30))
			for j, set := range ex.Sets {
				fmt.Printf("      %-4d | %-12.1f | %-5d\n", j+1, set.Weight, set.Reps)
			}
		}
	}
}

// parseDay accepts 2006-01-02 or 02/01/06, read in the configured zone.
func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, s, utils.Loc)
	if err != nil {
		day, err = time.ParseInLocation("02/01/06", s, utils.Loc)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse day: %w", err)
	}
	return day, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&historyProfile, "profile", "p", "", "Profile name/ID")
	historyCmd.Flags().StringVarP(&filterKind, "kind", "k", "", "Only planned or completed sessions")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Only sessions of this day (YYYY-MM-DD)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "Number of sessions to display")
	historyCmd.MarkFlagRequired("profile")
}
