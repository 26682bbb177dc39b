package format

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

const dumpIndent = "    "

var objectDumper = spew.ConfigState{
	Indent:                  dumpIndent,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                8,
}

// Dump renders a structure in full:
//
//	Map
//	(
//	    [max] => 5
//	    [tags] => List
//	        (
//	            [0] => news
//	        )
//	)
//
// Sequences and *typeddata.Map keep their order; Go maps are listed in
// sorted key order. Objects nested inside are dumped with go-spew.
func Dump(v any) string {
	var b strings.Builder
	dumpValue(&b, v, "")
	return strings.TrimRight(b.String(), "\n")
}

func dumpValue(b *strings.Builder, v any, indent string) {
	if m, ok := v.(*typeddata.Map); ok && m != nil {
		entries := make([]entry, 0, m.Len())
		for _, k := range m.Keys() {
			value, _ := m.Get(k)
			entries = append(entries, entry{key: k, value: value})
		}
		dumpEntries(b, "Map", entries, indent)
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		entries := make([]entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, entry{key: fmt.Sprint(k.Interface()), value: rv.MapIndex(k).Interface()})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
		dumpEntries(b, "Map", entries, indent)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			dumpEntries(b, "List", nil, indent)
			return
		}
		entries := make([]entry, rv.Len())
		for i := range entries {
			entries[i] = entry{key: fmt.Sprint(i), value: rv.Index(i).Interface()}
		}
		dumpEntries(b, "List", entries, indent)
	default:
		b.WriteString(leafText(v, indent))
		b.WriteString("\n")
	}
}

type entry struct {
	key   string
	value any
}

func dumpEntries(b *strings.Builder, header string, entries []entry, indent string) {
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(indent + "(\n")
	for _, e := range entries {
		fmt.Fprintf(b, "%s%s[%s] => ", indent, dumpIndent, e.key)
		dumpValue(b, e.value, indent+dumpIndent+dumpIndent)
	}
	b.WriteString(indent + ")\n")
}

func leafText(v any, indent string) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return boolText(rv.Bool())
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return spewText(v, indent)
	case reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return spewText(v, indent)
	default:
		return fmt.Sprint(v)
	}
}

func spewText(v any, indent string) string {
	text := strings.TrimRight(objectDumper.Sdump(v), "\n")
	return strings.ReplaceAll(text, "\n", "\n"+indent)
}
