package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/migrations"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// dbHandle is implemented by backends that expose their database.
type dbHandle interface {
	DB() *sql.DB
}

func newMigrateCmd(e *env) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and print the schema version",
		Long:  "Attaching the backend applies every pending migration. With --down the\nmost recent migration is rolled back afterwards.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := e.attach(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			h, ok := a.gw.(dbHandle)
			if !ok {
				return fmt.Errorf("backend %s does not expose its database", e.settings.Backend)
			}
			dialect := migrations.DialectSQLite
			if e.settings.Backend == types.BackendPostgres {
				dialect = migrations.DialectPostgres
			}
			if down {
				if err := migrations.Down(ctx, h.DB(), dialect); err != nil {
					return err
				}
			}
			v, err := migrations.Version(ctx, h.DB(), dialect)
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"dialect": dialect, "version": v})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", dialect, v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	return cmd
}
