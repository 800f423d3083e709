package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/paths"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and initialize storage",
		Long:  "Write config.yaml with defaults and a fresh session secret when it is missing,\nthen create the database, apply migrations, and seed the built-in rows.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Close(); err != nil {
				return fmt.Errorf("finalize storage: %w", err)
			}
			dataDir, _ := e.dataDir()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", paths.ConfigFile(e.configDir))
			if e.settings.Backend != types.BackendPostgres {
				fmt.Fprintf(out, "data:   %s\n", dataDir)
			}
			fmt.Fprintln(out, "backoffice initialized successfully")
			return nil
		},
	}
}
