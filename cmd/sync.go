package cmd

import (
	"fmt"

	"github.com/misterclayt0n/hygie/internal/storage"

	"github.com/spf13/cobra"
)

var exportProfileCmd = &cobra.Command{
	Use:   "export-profile [profile] [output-file]",
	Short: "Export a profile to a TOML file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.ResolveProfileID(ctx, args[0])
		if err != nil {
			return err
		}

		var outputFile string
		if len(args) == 2 {
			outputFile = args[1]
		} else if outputFile, err = storage.GetProfileExportPath(id); err != nil {
			return err
		}

		if err := st.ExportProfileToTOML(ctx, id, outputFile); err != nil {
			return fmt.Errorf("error exporting profile: %w", err)
		}

		fmt.Printf("✅ Profile exported successfully to %s\n", outputFile)
		return nil
	},
}

var importProfileCmd = &cobra.Command{
	Use:   "import-profile [file]",
	Short: "Import an athlete profile from a TOML or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		profile, err := st.ImportProfileFromFile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to import profile: %w", err)
		}

		fmt.Printf("✅ Imported %s (%s)\n", profile.Name, profile.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportProfileCmd)
	rootCmd.AddCommand(importProfileCmd)
}
