package commands

import (
	"errors"

	"github.com/conduit-lang/tdexplorer/internal/cli/ui"
	"github.com/conduit-lang/tdexplorer/internal/entity"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// cliError carries the presentation of a known failure.
type cliError struct {
	err  error
	opts ui.ErrorOptions
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

// errorOptions maps known error kinds to a context line and help commands.
// Unknown errors get empty options.
func errorOptions(err error) ui.ErrorOptions {
	opts := ui.ErrorOptions{Problem: err.Error()}
	switch {
	case errors.Is(err, typeddata.ErrUnknownTypeKey):
		opts.Context = "unknown type"
		opts.HelpCommands = []string{"List all types: tdexplorer types"}
	case errors.Is(err, typeddata.ErrUnknownEntityType):
		opts.Context = "unknown entity type"
		opts.HelpCommands = []string{"Pick an entity interactively: tdexplorer explore"}
	case errors.Is(err, typeddata.ErrEntityNotFound):
		opts.Context = "entity not found"
		opts.HelpCommands = []string{"Load the catalogue entities into the store: tdexplorer seed"}
	case errors.Is(err, typeddata.ErrUnknownField):
		opts.Context = "unknown field"
	case errors.Is(err, typeddata.ErrUnresolvableType):
		opts.Context = "unresolvable class"
		opts.HelpCommands = []string{"Check the class names in the catalogue: tdexplorer types"}
	case errors.Is(err, entity.ErrStoreNotMigrated):
		opts.Context = "store not initialized"
		opts.HelpCommands = []string{"Create and fill the entity table: tdexplorer seed"}
	}
	return opts
}
