// Package commands implements the tdexplorer command line.
package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/tdexplorer/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	format     string
	noColor    bool
	showLinks  bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tdexplorer",
		Short: "Explore typed data definitions, entity fields and validation constraints",
		Long: color.CyanString(`tdexplorer - typed data explorer

Browse the typed data definitions of a catalogue, the fields of its entities
and the validation constraints they use. Every report is available on the
command line and, through 'tdexplorer serve', as linked web pages.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("invalid --format %q: use table or json", opts.format)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: ./tdexplorer.yaml)")
	flags.StringVar(&opts.format, "format", formatTable, "Output format: table or json")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.showLinks, "links", false, "Show link targets next to link labels")

	rootCmd.AddCommand(
		newTypesCommand(opts),
		newTypeCommand(opts),
		newEntityCommand(opts),
		newFieldCommand(opts),
		newConstraintsCommand(opts),
		newExploreCommand(opts),
		newServeCommand(opts),
		newSeedCommand(opts),
		NewVersionCommand(),
		NewCompletionCommand(),
	)

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "tdexplorer version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	return execute(NewRootCommand())
}

func execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var ce *cliError
	if errors.As(err, &ce) {
		opts := ce.opts
		opts.NoColor = color.NoColor
		ui.WriteError(rootCmd.ErrOrStderr(), opts)
		return err
	}
	errorColor := color.New(color.FgRed, color.Bold)
	errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	return err
}
