package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/load"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var prProfile string

var showPRCmd = &cobra.Command{
	Use:   "show-pr [exercise-name]",
	Short: "Display the personal record and trend history for a particular exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exName := args[0]

		profile, err := loadProfile(cmd.Context(), prProfile)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("%s %s:\n", boldGreen("Personal record for"), exName)
		record := load.FindPersonalRecord(profile, exName)
		if record == nil {
			fmt.Println(magenta("  No record yet."))
			return nil
		}

		fmt.Printf("  %s: %.1fkg × %d (%s: %.1fkg)\n",
			boldCyan("All-time PR"), record.Weight, record.Reps,
			yellow("Calculated 1RM"), load.EstimateOneRM(record.Weight, record.Reps))
		if !record.Date.IsZero() {
			fmt.Printf("  %s: %s\n", boldCyan("Set on"), utils.ToLocal(record.Date).Format(time.DateOnly))
		}

		trend := profile.TrendHistory[exName]
		if len(trend) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Println("  " + boldCyan("Trend:"))
		fmt.Printf("      %-10s | %-12s | %-5s | %-8s\n", "Date", "Weight (kg)", "Reps", "1RM")
		fmt.Println("      " + strings.Repeat("─", 44))
		for _, entry := range trend {
			fmt.Printf("      %-10s | %-12.1f | %-5d | %-8.1f\n",
				utils.ToLocal(entry.Date).Format(time.DateOnly), entry.Weight, entry.Reps,
				load.EstimateOneRM(entry.Weight, entry.Reps))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showPRCmd)
	showPRCmd.Flags().StringVarP(&prProfile, "profile", "p", "", "Profile name/ID")
	showPRCmd.MarkFlagRequired("profile")
}
