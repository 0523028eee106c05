package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/video-enrichment-api/internal/buildinfo"
)

// Command creates a new cobra.Command to print build information.
func Command() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of video-enrichment-api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "video-enrichment-api %s\n", info)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}
