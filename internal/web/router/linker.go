package router

import (
	"net/url"
	"strings"
)

// PathLinker builds links to the explorer routes. Prefix is prepended to
// every path and may be empty.
type PathLinker struct {
	Prefix string
}

// TypeURL returns the path of a type definition page.
func (l PathLinker) TypeURL(key string) string {
	return l.path("types", key)
}

// EntityURL returns the path of an entity page.
func (l PathLinker) EntityURL(entityType, id string) string {
	return l.path("entity", entityType, id)
}

// FieldURL returns the path of an entity field page.
func (l PathLinker) FieldURL(entityType, id, field string) string {
	return l.path("entity", entityType, id, field)
}

func (l PathLinker) path(segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(l.Prefix, "/"))
	for i, seg := range segments {
		b.WriteByte('/')
		if i == 0 {
			b.WriteString(seg)
			continue
		}
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}
