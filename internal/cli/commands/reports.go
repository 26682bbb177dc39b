package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/tdexplorer/internal/cli/ui"
	"github.com/conduit-lang/tdexplorer/internal/explorer"
	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// reportFunc builds one report and explains its failure.
type reportFunc func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error)

// runReport opens the app, builds the report and prints it.
func runReport(cmd *cobra.Command, opts *rootOptions, build reportFunc) error {
	ctx := cmd.Context()
	a, err := opts.open(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	rep, err := build(ctx, a, a.explorer(commandLinker{}))
	if err != nil {
		return err
	}
	return opts.print(cmd, rep)
}

func (o *rootOptions) print(cmd *cobra.Command, rep *report.Report) error {
	out := cmd.OutOrStdout()
	if o.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	ui.RenderReport(out, rep, ui.ReportOptions{NoColor: o.noColor, ShowLinks: o.showLinks})
	return nil
}

func newTypesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the typed data definitions",
		Long: `List every definition of the type registry with its implementing class
and its definition class.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error) {
				rep, err := e.Types(ctx)
				return rep, a.describe(err, "", nil)
			})
		},
	}
}

func newTypeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type <key>",
		Short: "Show one typed data definition",
		Long: `Show every metadata entry of one typed data definition. Class names are
resolved to source links; nested structures are dumped.`,
		Example: `  tdexplorer type string
  tdexplorer type field_item:text_with_summary --format json`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: completeFrom(opts, func(a *app, args []string) []string {
			if len(args) > 0 {
				return nil
			}
			return a.registry.TypeKeys()
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return runReport(cmd, opts, func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error) {
				rep, err := e.Type(ctx, key)
				return rep, a.describe(err, key, a.registry.TypeKeys)
			})
		},
	}
}

func newEntityCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entity <entity-type> <id>",
		Short: "Show the field definitions of an entity",
		Example: `  tdexplorer entity node 2`,
		Args:    cobra.ExactArgs(2),
		ValidArgsFunction: completeFrom(opts, func(a *app, args []string) []string {
			switch len(args) {
			case 0:
				return a.registry.EntityTypeIDs()
			case 1:
				return a.entityIDs(args[0])
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, id := args[0], args[1]
			return runReport(cmd, opts, func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error) {
				rep, err := e.Entity(ctx, entityType, id)
				return rep, a.describeLoad(err, entityType, id)
			})
		},
	}
}

func newFieldCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "field <entity-type> <id> <name>",
		Short: "Show the properties and values of one entity field",
		Example: `  tdexplorer field node 2 body`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, id, name := args[0], args[1], args[2]
			return runReport(cmd, opts, func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error) {
				rep, err := e.Field(ctx, entityType, id, name)
				if errors.Is(err, typeddata.ErrUnknownField) {
					return nil, a.describe(err, name, func() []string { return a.fieldNames(ctx, entityType, id) })
				}
				return rep, a.describeLoad(err, entityType, id)
			})
		},
	}
}

func newConstraintsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "constraints",
		Short: "List the validation constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, func(ctx context.Context, a *app, e *explorer.Explorer) (*report.Report, error) {
				rep, err := e.Constraints(ctx)
				return rep, a.describe(err, "", nil)
			})
		},
	}
}
