package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/permission"
)

func init() { //nolint:gochecknoinits
	permissionsCmd.Flags().BoolVar(&permissionsAsJSON, "json", false, "print the catalog as JSON")

	rootCmd.AddCommand(permissionsCmd)
}

var (
	permissionsAsJSON bool

	permissionsCmd = &cobra.Command{
		Use:   "permissions",
		Short: "Print the permission catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCatalog(cmd.OutOrStdout(), permission.Default(), permissionsAsJSON)
		},
	}
)

func printCatalog(w io.Writer, catalog *permission.Catalog, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(catalog.ListAll())
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0) //nolint:mnd

	_, _ = fmt.Fprintln(tw, "KEY\tCATEGORY\tDESCRIPTION")

	for _, p := range catalog.ListAll() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Category, p.Description)
	}

	return tw.Flush()
}
