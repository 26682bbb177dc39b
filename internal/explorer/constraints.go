package explorer

import (
	"context"
	"fmt"

	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
)

const placeholder = "-"

// Constraints lists every validation constraint. The class cell goes
// through the generic value formatter, so a class name that is not
// registered in the catalog shows as plain text.
func (e *Explorer) Constraints(ctx context.Context) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := e.newRequest()

	constraints := e.constraints.Constraints()
	rows := make([]report.Row, 0, len(constraints))
	for _, c := range constraints {
		class, err := req.Format(c.Class)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", c.Label, err)
		}
		rows = append(rows, report.Row{
			report.TextCell(c.Label),
			class,
			report.TextCell(orPlaceholder(c.ID)),
			report.TextCell(orPlaceholder(c.Provider)),
		})
	}

	return e.built(&report.Report{
		Title:   "Validation constraints",
		Headers: []string{"Label", "Class", "Id", "Provider"},
		Rows:    rows,
	}), nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
