package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/auth"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminAddCmd(e), newAdminLoginCmd(e))
	return cmd
}

func newAdminAddCmd(e *env) *cobra.Command {
	var d types.AdminUserDraft
	var role string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d.Role = types.Role(role)
			if err := d.Validate(); err != nil {
				return usageErrorf("invalid admin: %w", err)
			}
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.svc.Admins.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) as %s\n", u.Username, u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.Email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&d.Username, "username", "", "display name (default: email local part)")
	cmd.Flags().StringVar(&d.Password, "password", "", "login password")
	cmd.Flags().StringVar(&role, "role", string(types.RoleEditor), "super_admin, admin, or editor")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAdminLoginCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check admin credentials; the attempt is recorded in the login log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			sess := auth.NewSession(
				auth.NewLocalProvider(a.svc.Admins, e.logger),
				auth.WithAuditor(a.svc.Admins),
				auth.WithLogger(e.logger),
			)
			err = sess.Login(cmd.Context(), email, password)
			sess.Wait()
			if err != nil {
				return userError{err}
			}
			u, _ := sess.Current()
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
