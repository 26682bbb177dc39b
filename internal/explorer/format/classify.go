// Package format reduces arbitrary values to report cells.
package format

import (
	"reflect"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Kind is the display classification of a value.
type Kind int

// Kinds in the order they are checked.
const (
	KindNil Kind = iota
	KindBool
	KindStructure
	KindObject
	KindClassName
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindStructure:
		return "structure"
	case KindObject:
		return "object"
	case KindClassName:
		return "class-name"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ClassNames reports whether a string names a loadable class.
type ClassNames interface {
	IsClassName(name string) bool
}

// Classify returns the kind of v. Booleans come before other scalars,
// structures before objects, and strings are checked against names before
// falling back to plain scalars.
func Classify(v any, names ClassNames) Kind {
	if v == nil {
		return KindNil
	}
	if m, ok := v.(*typeddata.Map); ok {
		if m == nil {
			return KindNil
		}
		return KindStructure
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Map, reflect.Slice, reflect.Array:
		return KindStructure
	case reflect.Pointer:
		if rv.IsNil() {
			return KindNil
		}
		return KindObject
	case reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return KindObject
	case reflect.String:
		if names != nil && names.IsClassName(rv.String()) {
			return KindClassName
		}
		return KindScalar
	default:
		return KindScalar
	}
}
