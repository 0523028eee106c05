package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// Command creates a new cobra.Command that creates or migrates the schema
// and exits.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Global().Module("migrate")

			db, err := datastore.Open(settings, datastore.Options{
				Logger:    log,
				Actor:     settings.Main.Name,
				SlowQuery: settings.Database.SlowQuery,
			})
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Warn("failed to close database", logger.Error(err))
				}
			}()

			if err := db.Initialize(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date at %s\n", db.Path())
			return err
		},
	}

	return cmd
}
