package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/config"
)

func init() { //nolint:gochecknoinits
	configDumpCmd.Flags().BoolVar(&dumpAsJSON, "json", false, "dump as JSON instead of TOML")

	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	dumpAsJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	configDumpCmd = &cobra.Command{
		Use:     "dump",
		Short:   "Print the effective configuration with secrets redacted",
		Args:    cobra.NoArgs,
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dump := config.DumpConfig
			if dumpAsJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(config.Redacted(cfg))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)
