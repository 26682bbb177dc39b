package classlink

import (
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Default link templates.
const (
	DefaultFileTemplate    = "file://{file}#L{line}"
	DefaultPackageTemplate = "https://pkg.go.dev/{package}#{name}"
)

// LinkGenerator turns a Location into a URL. FileTemplate accepts {file}
// and {line}; PackageTemplate accepts {package} and {name} and is used when
// the declaring file is unknown.
type LinkGenerator struct {
	FileTemplate    string
	PackageTemplate string
}

// DefaultLinkGenerator returns a generator using the default templates.
func DefaultLinkGenerator() LinkGenerator {
	return LinkGenerator{FileTemplate: DefaultFileTemplate, PackageTemplate: DefaultPackageTemplate}
}

// Link returns the URL for a type named name declared at loc.
func (g LinkGenerator) Link(loc Location, name string) string {
	if loc.File != "" {
		return strings.NewReplacer(
			"{file}", filepath.ToSlash(loc.File),
			"{line}", strconv.Itoa(loc.Line),
		).Replace(g.FileTemplate)
	}
	return strings.NewReplacer(
		"{package}", loc.Package,
		"{name}", name,
	).Replace(g.PackageTemplate)
}

// ClassLink is a resolved class reference.
type ClassLink struct {
	// Text is the shortened label.
	Text string
	// URL opens the declaring source location.
	URL string
	// Class is the fully-qualified name.
	Class string
}

// Resolver resolves class references. It is safe for concurrent use; the
// per-request state lives in Sessions.
type Resolver struct {
	catalog *Catalog
	locator Locator
	links   LinkGenerator
}

// NewResolver creates a Resolver.
func NewResolver(catalog *Catalog, locator Locator, links LinkGenerator) *Resolver {
	if locator == nil {
		locator = RuntimeLocator{}
	}
	return &Resolver{catalog: catalog, locator: locator, links: links}
}

// Catalog returns the class catalog.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// Session starts a request-scoped resolution with its own label space and cache.
func (r *Resolver) Session() *Session {
	return &Session{
		resolver: r,
		short:    NewShortener(),
		cache:    make(map[reflect.Type]ClassLink),
	}
}

// Session resolves links for a single report. Not safe for concurrent use.
type Session struct {
	resolver *Resolver
	short    *Shortener
	cache    map[reflect.Type]ClassLink
}

// IsClassName reports whether name refers to a loadable type.
func (s *Session) IsClassName(name string) bool {
	_, ok := s.resolver.catalog.Lookup(name)
	return ok
}

// ResolveName resolves a class named in a definition.
func (s *Session) ResolveName(name string) (ClassLink, error) {
	t, ok := s.resolver.catalog.Lookup(name)
	if !ok {
		return ClassLink{}, typeddata.UnresolvableType(name)
	}
	return s.ResolveType(t)
}

// ResolveType resolves the class of a runtime type. Pointer types resolve
// to their element type.
func (s *Session) ResolveType(t reflect.Type) (ClassLink, error) {
	if t == nil {
		return ClassLink{}, typeddata.UnresolvableType("<nil>")
	}
	t = elem(t)
	if link, ok := s.cache[t]; ok {
		return link, nil
	}

	loc, err := s.resolver.locator.Locate(t)
	if err != nil {
		return ClassLink{}, err
	}
	link := ClassLink{
		Text:  s.short.Shorten(t.PkgPath(), t.Name()),
		URL:   s.resolver.links.Link(loc, t.Name()),
		Class: QualifiedName(t),
	}
	s.cache[t] = link
	return link, nil
}
