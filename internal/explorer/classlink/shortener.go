package classlink

import "strings"

// Shortener produces short labels for qualified type names. A label is the
// type name prefixed by the fewest trailing package path segments that no
// other name seen by this Shortener already uses, so labels stay unique
// within one report. When even the full name is taken, the label is the
// full name rooted with a leading slash.
type Shortener struct {
	owners map[string]string // label -> qualified name
	labels map[string]string // qualified name -> label
}

// NewShortener creates a Shortener with no labels assigned.
func NewShortener() *Shortener {
	return &Shortener{
		owners: make(map[string]string),
		labels: make(map[string]string),
	}
}

// Shorten returns the label for pkgPath.name. Repeated calls return the same label.
func (s *Shortener) Shorten(pkgPath, name string) string {
	qualified := pkgPath + "." + name
	if label, ok := s.labels[qualified]; ok {
		return label
	}

	segments := strings.Split(pkgPath, "/")
	// A rooted path is never produced as a candidate, so it is free even when
	// an earlier type already took this type's full name as its label.
	label := "/" + qualified
	for k := 1; k <= len(segments); k++ {
		candidate := strings.Join(segments[len(segments)-k:], "/") + "." + name
		if owner, taken := s.owners[candidate]; !taken || owner == qualified {
			label = candidate
			break
		}
	}

	s.owners[label] = qualified
	s.labels[qualified] = label
	return label
}
