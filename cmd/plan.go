package cmd

import (
	"fmt"
	"slices"

	"github.com/misterclayt0n/hygie/internal/models"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	planProfile string
	planDay     string
	planTitle   string
	planFocus   string
	planMinutes int
)

var planSessionCmd = &cobra.Command{
	Use:   "plan-session",
	Short: "Add a planned session to a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		day, err := parseDay(planDay)
		if err != nil {
			return err
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.ResolveProfileID(ctx, planProfile)
		if err != nil {
			return err
		}
		profile, err := st.Load(ctx, id)
		if err != nil {
			return err
		}

		planned := models.NewPlannedRecord(models.PlannedSession{
			ID:              uuid.New().String(),
			Date:            day,
			Title:           planTitle,
			Focus:           planFocus,
			DurationMinutes: planMinutes,
		})

		// arrays are replaced on upsert, so the whole history is sent back
		partial := &models.Profile{ID: id, Sessions: append(slices.Clip(profile.Sessions), planned)}
		if _, err := st.Upsert(ctx, partial); err != nil {
			return fmt.Errorf("failed to save planned session: %w", err)
		}

		fmt.Printf("✅ Planned %s on %s\n", color.New(color.Bold).Sprint(planTitle), day.Format("Mon 02 Jan 2006"))
		return nil
	},
}

var listProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		profiles, err := st.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}

		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		for _, p := range profiles {
			fmt.Printf("  • %s %s (%s, %.1f kg)\n", boldCyan(p.Name), p.ID, p.Experience, p.BodyWeight)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planSessionCmd)
	rootCmd.AddCommand(listProfilesCmd)

	planSessionCmd.Flags().StringVarP(&planProfile, "profile", "p", "", "Profile name/ID")
	planSessionCmd.Flags().StringVarP(&planDay, "day", "d", "", "Day of the session (YYYY-MM-DD)")
	planSessionCmd.Flags().StringVarP(&planTitle, "title", "t", "Training", "Session title")
	planSessionCmd.Flags().StringVarP(&planFocus, "focus", "f", "", "Session focus")
	planSessionCmd.Flags().IntVarP(&planMinutes, "minutes", "m", 0, "Planned duration in minutes")
	planSessionCmd.MarkFlagRequired("profile")
	planSessionCmd.MarkFlagRequired("day")
}
