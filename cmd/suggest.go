package cmd

import (
	"fmt"

	"github.com/misterclayt0n/hygie/internal/load"
	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	suggestProfile  string
	suggestExercise string
	suggestReps     string
	suggestLoad     string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print the suggested weight for an exercise and what it is based on",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(cmd.Context(), suggestProfile)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		ex := models.Exercise{Name: suggestExercise, Reps: suggestReps, SuggestedLoad: suggestLoad}
		reps := load.ExtractReps(ex.Reps)
		weight := load.CalculateSuggestedWeight(profile, ex, reps)

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("%s %s: %.1f kg for %d reps\n", boldGreen("Suggested load for"), ex.Name, weight, reps)

		record := load.FindPersonalRecord(profile, ex.Name)
		switch {
		case record != nil:
			oneRM := load.EstimateOneRM(record.Weight, record.Reps)
			fmt.Printf("  %s: %.1fkg × %d (%s: %.1fkg, %.0f%% for %d reps)\n",
				boldCyan("Based on"), record.Weight, record.Reps,
				yellow("Estimated 1RM"), oneRM, load.PercentageForReps(reps)*100, reps)
			if profile.Experience == models.Beginner {
				fmt.Println("  Beginner reduction applied.")
			}
		case load.ExtractWeight(ex.SuggestedLoad) > 0:
			fmt.Printf("  %s: planned load %q\n", boldCyan("Based on"), ex.SuggestedLoad)
		default:
			fmt.Printf("  %s: %.1f kg body weight × %.1f (%s)\n", boldCyan("Based on"),
				profile.BodyWeight, load.ExperienceFactor(profile.Experience), profile.Experience)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVarP(&suggestProfile, "profile", "p", "", "Profile name/ID")
	suggestCmd.Flags().StringVarP(&suggestExercise, "exercise", "e", "", "Exercise name")
	suggestCmd.Flags().StringVarP(&suggestReps, "reps", "r", "10", "Prescribed reps, e.g. 8-10")
	suggestCmd.Flags().StringVar(&suggestLoad, "load", "", "Load suggested by the plan, e.g. 20kg")
	suggestCmd.MarkFlagRequired("profile")
	suggestCmd.MarkFlagRequired("exercise")
}
