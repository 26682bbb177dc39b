package commands

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/cli/config"
	"github.com/conduit-lang/tdexplorer/internal/cli/ui"
	"github.com/conduit-lang/tdexplorer/internal/entity"
	"github.com/conduit-lang/tdexplorer/internal/explorer"
	"github.com/conduit-lang/tdexplorer/internal/explorer/classlink"
	"github.com/conduit-lang/tdexplorer/internal/logging"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata/plugins"
	"github.com/conduit-lang/tdexplorer/runtime/metadata"
)

// app holds everything a command needs, built from the configuration.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *metadata.Registry
	classes  *classlink.Catalog
	store    typeddata.EntityStore
	// db and sqlStore are set for the SQL drivers.
	db       *sql.DB
	sqlStore *entity.SQLStore
}

// open loads the configuration, the catalogue and, when withStore is set,
// the entity store.
func (o *rootOptions) open(ctx context.Context, withStore bool) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return nil, err
	}

	registry, err := metadata.Load(cfg.Catalogue)
	if err != nil {
		logger.Sync()
		return nil, err
	}
	logger.Debug("catalogue loaded",
		zap.String("path", cfg.Catalogue),
		zap.Int("types", len(registry.TypeKeys())),
		zap.Int("entity_types", len(registry.EntityTypeIDs())))

	a := &app{cfg: cfg, logger: logger, registry: registry, classes: newClassCatalog()}
	if !withStore {
		return a, nil
	}
	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// newClassCatalog registers every class a catalogue may name.
func newClassCatalog() *classlink.Catalog {
	catalog := classlink.NewCatalog()
	catalog.Register(plugins.All()...)
	catalog.Register(typeddata.Classes()...)
	return catalog
}

func (a *app) openStore(ctx context.Context) error {
	if a.cfg.Store.Driver == config.DriverMemory {
		store, err := entity.NewMemoryStore(a.registry, a.registry.Entities()...)
		if err != nil {
			return err
		}
		a.store = store
		return nil
	}

	db, err := entity.Open(ctx, a.cfg.Store.Driver, a.cfg.Store.DSN)
	if err != nil {
		return err
	}
	store, err := entity.NewSQLStore(db, a.registry, a.cfg.Store.Driver, a.cfg.Store.Table)
	if err != nil {
		db.Close()
		return err
	}
	a.db = db
	a.sqlStore = store
	a.store = store
	a.logger.Debug("entity store opened",
		zap.String("driver", a.cfg.Store.Driver),
		zap.String("table", a.cfg.Store.Table))
	return nil
}

// explorer creates an explorer whose cross-links use linker.
func (a *app) explorer(linker explorer.Linker) *explorer.Explorer {
	resolver := classlink.NewResolver(a.classes, nil, a.cfg.LinkGenerator())
	return explorer.New(a.registry, a.registry, a.store, resolver, linker, explorer.WithLogger(a.logger))
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	a.logger.Sync()
	return errors.Join(errs...)
}

// commandLinker links to the equivalent tdexplorer invocations.
type commandLinker struct{}

func (commandLinker) TypeURL(key string) string {
	return shellCommand("tdexplorer", "type", key)
}

func (commandLinker) FieldURL(entityType, id, field string) string {
	return shellCommand("tdexplorer", "field", entityType, id, field)
}

// shellCommand joins args, single-quoting those a POSIX shell would split
// or expand.
func shellCommand(args ...string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
			quoted[i] = arg
			continue
		}
		quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}

// describe turns an exploration error into a CLI error with suggestions.
// subject is the user-supplied token the lookup was made with.
func (a *app) describe(err error, subject string, candidates func() []string) error {
	if err == nil {
		return nil
	}
	opts := errorOptions(err)
	if opts.Context == "" {
		return err
	}
	if subject != "" && candidates != nil {
		opts.Suggestions = ui.FindSimilar(subject, candidates())
	}
	return &cliError{err: err, opts: opts}
}

// describeLoad describes a failure to load entityType/id, suggesting
// entity types or ids.
func (a *app) describeLoad(err error, entityType, id string) error {
	switch {
	case errors.Is(err, typeddata.ErrUnknownEntityType):
		return a.describe(err, entityType, a.registry.EntityTypeIDs)
	case errors.Is(err, typeddata.ErrEntityNotFound):
		return a.describe(err, id, func() []string { return a.entityIDs(entityType) })
	}
	return a.describe(err, "", nil)
}

// fieldNames lists the fields of an entity, or nothing if it cannot be loaded.
func (a *app) fieldNames(ctx context.Context, entityType, id string) []string {
	e, err := a.store.Load(ctx, entityType, id)
	if err != nil {
		return nil
	}
	var names []string
	for _, def := range e.FieldDefinitions() {
		names = append(names, def.Name())
	}
	return names
}

// entityIDs lists the catalogue's sample entity ids of one type.
func (a *app) entityIDs(entityType string) []string {
	var ids []string
	for _, rec := range a.registry.Entities() {
		if rec.Type == entityType {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}
