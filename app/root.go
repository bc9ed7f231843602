// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/config"
)

var (
	configPath string        // directory holding main.toml
	cfg        config.Config // loaded by loadConfig
)

var rootCmd = &cobra.Command{
	Use:   "peopledesk",
	Short: "PeopleDesk is the role and permission service of the PeopleDesk HR suite",
	Long: `PeopleDesk manages roles, their permissions and the users holding them,
and guards the HR API with permission checks.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "etc", "directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration into cfg.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}
