package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/cli/ui"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the entity table and load the catalogue entities into it",
		Long: `Create the entity table of the SQL store when it does not exist and
insert or replace every entity listed in the catalogue. Requires
store.driver sqlite3 or pgx.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.open(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.sqlStore == nil {
				return fmt.Errorf("seed needs a SQL store: set store.driver to sqlite3 or pgx (got %q)", a.cfg.Store.Driver)
			}
			if err := a.sqlStore.Migrate(ctx); err != nil {
				return err
			}
			records := a.registry.Entities()
			if len(records) == 0 {
				ui.WriteError(cmd.ErrOrStderr(), ui.ErrorOptions{
					Level:        ui.ErrorLevelWarning,
					Context:      "nothing to seed",
					Problem:      fmt.Sprintf("%s lists no entities; the %s table was created empty", a.cfg.Catalogue, a.cfg.Store.Table),
					HelpCommands: []string{"Add sample entities under the catalogue's entities section"},
					NoColor:      opts.noColor,
				})
				return nil
			}
			if err := a.sqlStore.Save(ctx, records...); err != nil {
				return err
			}

			a.logger.Info("store seeded", zap.Int("entities", len(records)), zap.String("table", a.cfg.Store.Table))
			ui.WriteSuccess(cmd.OutOrStdout(),
				fmt.Sprintf("Seeded %d entities into %s (%s)", len(records), a.cfg.Store.Table, a.cfg.Store.Driver),
				opts.noColor)
			return nil
		},
	}
}
