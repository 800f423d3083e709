// Package cli implements the backoffice command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/collection"
	"github.com/mesh-intelligence/backoffice/internal/paths"
	"github.com/mesh-intelligence/backoffice/internal/postgres"
	"github.com/mesh-intelligence/backoffice/internal/resource"
	"github.com/mesh-intelligence/backoffice/internal/sqlite"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// userError marks failures caused by bad input rather than the system.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return userError{fmt.Errorf(format, args...)}
}

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// env is the state shared by subcommands once the config is loaded.
type env struct {
	flags     rootFlags
	configDir string
	settings  Settings
	logger    *slog.Logger
	stderr    io.Writer
}

// NewRootCmd creates the top-level "backoffice" command with every
// subcommand registered.
func NewRootCmd() *cobra.Command {
	e := &env{stderr: os.Stderr}
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Back-office administration for the storefront",
		Long:          "backoffice serves the admin API and manages products, orders, customers,\nand content stored in SQLite or Postgres.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd)
		},
	}
	root.SetErr(e.stderr)

	root.PersistentFlags().StringVar(&e.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&e.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&e.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(e),
		newServeCmd(e),
		newMigrateCmd(e),
		newListCmd(e),
		newGetCmd(e),
		newDeleteCmd(e),
		newStatusCmd(e),
		newAdminCmd(e),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ue userError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrTrackingRequired),
		errors.Is(err, types.ErrInUse):
		return exitUserError
	}
	return exitSysError
}

func (e *env) load(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(e.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	e.configDir = dir
	created, err := writeDefaultConfig(dir, "")
	if err != nil {
		return err
	}
	s, err := loadSettings(dir)
	if err != nil {
		return err
	}
	e.settings = s
	e.logger = newLogger(cmd.ErrOrStderr(), s.Log.Level)
	if created {
		e.logger.Info("wrote default configuration", slog.String("path", paths.ConfigFile(dir)))
	}
	return nil
}

func (e *env) dataDir() (string, error) {
	return paths.ResolveDataDir(e.flags.dataDir, e.settings.DataDir)
}

// attached is an open gateway plus what was built around it.
type attached struct {
	gw       types.Gateway
	svc      *resource.Services
	registry *prometheus.Registry
}

func (a *attached) Close() error { return a.gw.Detach() }

// attach opens the configured backend, which applies pending migrations.
func (e *env) attach(_ context.Context) (*attached, error) {
	dataDir, err := e.dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	reg := prometheus.NewRegistry()
	metrics := collection.NewMetrics(reg)

	var gw types.Gateway
	switch e.settings.Backend {
	case types.BackendPostgres:
		gw = postgres.NewBackend(postgres.WithLogger(e.logger), postgres.WithMetrics(metrics))
	default:
		gw = sqlite.NewBackend(sqlite.WithLogger(e.logger), sqlite.WithMetrics(metrics))
	}
	if err := gw.Attach(e.settings.GatewayConfig(dataDir)); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", e.settings.Backend, err)
	}
	return &attached{
		gw:       gw,
		svc:      resource.New(gw, resource.WithLogger(e.logger)),
		registry: reg,
	}, nil
}
