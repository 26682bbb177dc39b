package explorer

import (
	"context"
	"fmt"

	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
)

// Types builds the catalogue of every type definition: key, class,
// definition class and a link to the definition's detail view.
func (e *Explorer) Types(ctx context.Context) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := e.newRequest()

	definitions := e.types.Definitions()
	rows := make([]report.Row, 0, len(definitions))
	for _, def := range definitions {
		class, err := req.ClassNameLink(def.Class())
		if err != nil {
			return nil, fmt.Errorf("type %s class: %w", def.ID(), err)
		}
		definitionClass, err := req.ClassNameLink(def.DefinitionClass())
		if err != nil {
			return nil, fmt.Errorf("type %s definition class: %w", def.ID(), err)
		}
		rows = append(rows, report.Row{
			report.TextCell(def.ID()),
			class,
			definitionClass,
			report.LinkCell("Explore", e.linker.TypeURL(def.ID())),
		})
	}

	return e.built(&report.Report{
		Title:   "Typed data definitions",
		Headers: []string{"Id", "Class", "Definition class", "Action"},
		Rows:    rows,
	}), nil
}

// Type builds the detail view of one definition. Every metadata field is
// listed generically, in declaration order, through the value formatter.
func (e *Explorer) Type(ctx context.Context, key string) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, err := e.types.Definition(key)
	if err != nil {
		return nil, err
	}
	req := e.newRequest()

	fields := def.Fields()
	rows := make([]report.Row, 0, fields.Len())
	for _, name := range fields.Keys() {
		value, _ := fields.Get(name)
		row, err := req.Row(name, value)
		if err != nil {
			return nil, fmt.Errorf("type %s field %s: %w", key, name, err)
		}
		rows = append(rows, row)
	}

	return e.built(&report.Report{
		Title:    "Typed data definition " + key,
		Preamble: []report.Row{{report.TextCell(key)}},
		Headers:  []string{"Key", "Value"},
		Rows:     rows,
	}), nil
}
