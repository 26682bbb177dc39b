package classlink

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Location is where a type is declared. File is empty when only the package
// is known. Line is always 0: the declaring line is not tracked.
type Location struct {
	Package string
	File    string
	Line    int
}

// Locator finds the declaring location of a type.
type Locator interface {
	Locate(t reflect.Type) (Location, error)
}

// RuntimeLocator reads the declaring file from the program's own symbol
// table through the type's methods. Types without methods of their own
// resolve to their package.
type RuntimeLocator struct{}

// Locate implements Locator.
func (RuntimeLocator) Locate(t reflect.Type) (Location, error) {
	name := QualifiedName(t)
	if name == "" {
		return Location{}, typeddata.UnresolvableType(typeString(t))
	}
	t = elem(t)
	return Location{Package: t.PkgPath(), File: declaringFile(t)}, nil
}

func declaringFile(t reflect.Type) string {
	if t.Kind() == reflect.Interface {
		return ""
	}
	for _, typ := range []reflect.Type{t, reflect.PointerTo(t)} {
		for i := 0; i < typ.NumMethod(); i++ {
			m := typ.Method(i)
			if !m.Func.IsValid() {
				continue
			}
			fn := runtime.FuncForPC(m.Func.Pointer())
			if fn == nil || !ownsMethod(fn.Name(), t) {
				continue
			}
			file, _ := fn.FileLine(fn.Entry())
			if file == "" || strings.HasPrefix(file, "<") {
				continue
			}
			return file
		}
	}
	return ""
}

// ownsMethod reports whether a symbol like "pkg.T.M" or "pkg.(*T).M" was
// declared on t itself rather than promoted from an embedded field.
func ownsMethod(symbol string, t reflect.Type) bool {
	rest, ok := strings.CutPrefix(symbol, t.PkgPath()+".")
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, t.Name()+".") || strings.HasPrefix(rest, "(*"+t.Name()+").")
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
