// Package explorer walks the type registry, entity schemas and the
// constraint registry and builds reports from them.
//
// Every operation is request-scoped: it opens its own class-link session,
// reads from the injected registries and store, and returns a complete
// Report or the first error. Nothing is mutated and no state is shared
// between calls.
package explorer

import (
	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/explorer/classlink"
	"github.com/conduit-lang/tdexplorer/internal/explorer/format"
	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Linker builds the cross-links of a report. The hosting transport decides
// what a link looks like (an HTTP path, a shell command, ...).
type Linker interface {
	// TypeURL points at the detail view of a type registry key.
	TypeURL(key string) string
	// FieldURL points at the detail view of one entity field.
	FieldURL(entityType, id, field string) string
}

// Explorer builds reports. It is safe for concurrent use.
type Explorer struct {
	types       typeddata.TypeRegistry
	constraints typeddata.ConstraintRegistry
	entities    typeddata.EntityStore
	resolver    *classlink.Resolver
	linker      Linker
	logger      *zap.Logger
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Explorer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Explorer over the given collaborators.
func New(
	types typeddata.TypeRegistry,
	constraints typeddata.ConstraintRegistry,
	entities typeddata.EntityStore,
	resolver *classlink.Resolver,
	linker Linker,
	opts ...Option,
) *Explorer {
	e := &Explorer{
		types:       types,
		constraints: constraints,
		entities:    entities,
		resolver:    resolver,
		linker:      linker,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// request is the per-call state: one link session and its formatter.
type request struct {
	*format.Formatter
	types typeddata.TypeRegistry
}

func (e *Explorer) newRequest() *request {
	return &request{
		Formatter: format.New(e.resolver.Session()),
		types:     e.types,
	}
}

// typeLink links a data-type key to its detail view. Keys missing from the
// registry fail with ErrUnknownTypeKey instead of producing a dead link.
func (r *request) typeLink(key string, linker Linker) (report.Cell, error) {
	if _, err := r.types.Definition(key); err != nil {
		return report.Cell{}, err
	}
	return report.LinkCell(key, linker.TypeURL(key)), nil
}

func (e *Explorer) built(r *report.Report) *report.Report {
	e.logger.Debug("report built",
		zap.String("title", r.Title),
		zap.Int("rows", len(r.Rows)),
	)
	return r
}
