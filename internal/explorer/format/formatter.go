package format

import (
	"fmt"
	"reflect"

	"github.com/conduit-lang/tdexplorer/internal/explorer/classlink"
	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
)

// Formatter turns values into cells. It is bound to one resolution session,
// so class labels stay consistent across a report.
type Formatter struct {
	session *classlink.Session
}

// New creates a Formatter for session.
func New(session *classlink.Session) *Formatter {
	return &Formatter{session: session}
}

// Format reduces v to a cell:
//
//	bool            "True" / "False"
//	map, slice, Map serialized dump of the whole structure
//	object          link to its runtime type
//	class name      link to the named type
//	anything else   its plain textual form
//
// The only error is typeddata.ErrUnresolvableType from link resolution.
func (f *Formatter) Format(v any) (report.Cell, error) {
	switch Classify(v, f.session) {
	case KindNil:
		return report.TextCell(""), nil
	case KindBool:
		return report.TextCell(boolText(reflect.ValueOf(v).Bool())), nil
	case KindStructure:
		return report.DumpCell(Dump(v)), nil
	case KindObject:
		return f.ClassLink(reflect.TypeOf(v))
	case KindClassName:
		link, err := f.session.ResolveName(reflect.ValueOf(v).String())
		if err != nil {
			return report.Cell{}, err
		}
		return linkCell(link), nil
	default:
		return report.TextCell(fmt.Sprint(v)), nil
	}
}

// ClassLink resolves t directly to a link cell.
func (f *Formatter) ClassLink(t reflect.Type) (report.Cell, error) {
	link, err := f.session.ResolveType(t)
	if err != nil {
		return report.Cell{}, err
	}
	return linkCell(link), nil
}

// ClassNameLink resolves a named class directly to a link cell.
func (f *Formatter) ClassNameLink(name string) (report.Cell, error) {
	link, err := f.session.ResolveName(name)
	if err != nil {
		return report.Cell{}, err
	}
	return linkCell(link), nil
}

// Row formats each value in turn. The first failure aborts the row.
func (f *Formatter) Row(values ...any) (report.Row, error) {
	row := make(report.Row, 0, len(values))
	for _, v := range values {
		if c, ok := v.(report.Cell); ok {
			row = append(row, c)
			continue
		}
		c, err := f.Format(v)
		if err != nil {
			return nil, err
		}
		row = append(row, c)
	}
	return row, nil
}

func linkCell(link classlink.ClassLink) report.Cell {
	c := report.LinkCell(link.Text, link.URL)
	c.Title = link.Class
	return c
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
