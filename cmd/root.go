package cmd

import (
	"context"

	"github.com/misterclayt0n/hygie/internal/config"
	"github.com/misterclayt0n/hygie/internal/logging"
	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/storage"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "hygie",
	Short:         "Guided strength sessions with load prescription",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}

		logging.Setup(logging.LoggerSetupParams{
			LogFileName:   loaded.Logging.File,
			LogToStdout:   loaded.Logging.ToStdout,
			LogLevel:      loaded.Logging.Level,
			LogFormatJSON: loaded.Logging.JSON,
		})
		utils.SetLocation(loaded.Location())

		cfg = loaded
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func openStorage() (*storage.Storage, error) {
	return storage.Open(cfg.DB)
}

// loadProfile resolves a profile id or name and loads it.
func loadProfile(ctx context.Context, ref string) (*models.Profile, error) {
	st, err := openStorage()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	id, err := st.ResolveProfileID(ctx, ref)
	if err != nil {
		return nil, err
	}
	return st.Load(ctx, id)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/hygie/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}
