// Package classlink resolves class references (Go types, or the names
// catalogue documents use for them) to a short display label and a link to
// the declaring source location.
package classlink

import (
	"fmt"
	"reflect"
	"sync"
)

// Catalog maps fully-qualified type names to loadable Go types. It plays the
// role of a class loader: a string names a class only if it is registered.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]reflect.Type)}
}

// Register adds the runtime types of the given values. Pointers register
// their element type. It panics on unnamed types and on a name registered
// twice with a different type.
func (c *Catalog) Register(values ...any) {
	for _, v := range values {
		c.RegisterType(reflect.TypeOf(v))
	}
}

// RegisterType adds a single type.
func (c *Catalog) RegisterType(t reflect.Type) {
	name := QualifiedName(t)
	if name == "" {
		panic(fmt.Sprintf("classlink: cannot register unnamed type %v", t))
	}
	t = elem(t)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.types[name]; ok && existing != t {
		panic(fmt.Sprintf("classlink: %s already registered", name))
	}
	c.types[name] = t
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[name]
	return t, ok
}

// QualifiedName returns "pkgpath.Name" for a named type, dereferencing
// pointers. Unnamed and predeclared types return "".
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	t = elem(t)
	if t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	return t.PkgPath() + "." + t.Name()
}

func elem(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
