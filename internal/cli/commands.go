package cli

import (
	"fmt"
	"io"

	pretty "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/pkg/table"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func newListCmd(e *env) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List a resource page by page",
		Long:  "List prints one page of a resource, optionally narrowed by a search query.\n\nResources: " + resourceNames(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := def.list(cmd.Context(), a.svc, o)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if e.flags.jsonMode {
				return writeJSON(out, res)
			}
			printPage(out, def.header, res)
			return nil
		},
	}
	addPageFlags(cmd, &o)
	return cmd
}

func newGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			if def.get == nil {
				return usageErrorf("%s cannot be fetched by id", args[0])
			}
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			v, found, err := def.get(cmd.Context(), a.svc, args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s %s: %w", args[0], args[1], types.ErrNotFound)
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			return renderRecord(cmd.OutOrStdout(), v)
		},
	}
}

// addPageFlags registers the flags that choose the page shown after a
// change.
func addPageFlags(cmd *cobra.Command, o *listOptions) {
	cmd.Flags().StringVar(&o.search, "search", "", "case-insensitive search query")
	cmd.Flags().IntVar(&o.page, "page", 1, "page number")
	cmd.Flags().IntVar(&o.perPage, "per-page", table.DefaultItemsPerPage, "items per page")
}

// printPage renders the rows of res followed by the page counter.
func printPage(out io.Writer, header pretty.Row, res listResult) {
	renderTable(out, header, res.rows)
	p := res.Pagination
	fmt.Fprintf(out, "page %d of %d (%d items)\n", p.CurrentPage, max(p.TotalPages, 1), p.TotalItems)
}

func newDeleteCmd(e *env) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete one record",
		Long:  "Delete removes the record and prints the page it was listed on. The page\nreflects the delete locally without reading the resource again.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			if def.del == nil {
				return usageErrorf("%s cannot be deleted", args[0])
			}
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := def.del(cmd.Context(), a.svc, args[1], o)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if e.flags.jsonMode {
				return writeJSON(out, map[string]any{"deleted": args[1], "pagination": res.Pagination})
			}
			fmt.Fprintf(out, "deleted %s %s\n", args[0], args[1])
			printPage(out, def.header, res)
			return nil
		},
	}
	addPageFlags(cmd, &o)
	return cmd
}

func newStatusCmd(e *env) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "status <resource> <id> <status>",
		Short: "Change the status of one record",
		Long: "Status sets the workflow or activation status of a record and prints the\n" +
			"page it is listed on.\n\n" +
			"products, categories, customers, admin-users: active, inactive\n" +
			"orders: pending, payment_confirmed, preparing, shipped, delivered, cancelled, refunded\n" +
			"reviews: pending, approved, rejected, spam",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			if def.status == nil {
				return usageErrorf("%s has no status", args[0])
			}
			a, err := e.attach(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			v, res, err := def.status(cmd.Context(), a.svc, args[1], args[2], o)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if e.flags.jsonMode {
				return writeJSON(out, v)
			}
			fmt.Fprintf(out, "%s %s is now %s\n", args[0], args[1], args[2])
			printPage(out, def.header, res)
			return nil
		},
	}
	addPageFlags(cmd, &o)
	return cmd
}
